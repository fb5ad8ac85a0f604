package inputdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextKeys(t *testing.T) {
	keys, err := textKeys("aZ1 !")

	require.NoError(t, err)
	assert.Equal(t, []textKey{
		{Name: "KEY_A"},
		{Name: "KEY_Z", Shift: true},
		{Name: "KEY_1"},
		{Name: "KEY_SPACE"},
		{Name: "KEY_1", Shift: true},
	}, keys)
}

func TestTextKeys_RejectsNonLayoutRunes(t *testing.T) {
	_, err := textKeys("café")
	assert.Error(t, err)
}

func TestSelectDevices(t *testing.T) {
	devices := []DeviceInfo{
		{Path: "/dev/input/event0", Name: "Power Button", Keys: true},
		{Path: "/dev/input/event3", Name: "AT Translated Set 2 keyboard", Keys: true, Keyboard: true},
		{Path: "/dev/input/event7", Name: "Xbox Wireless Controller", Keys: true, Hat: true},
	}

	t.Run("defaults to keyboards", func(t *testing.T) {
		selected, err := SelectDevices(devices, nil)
		require.NoError(t, err)
		require.Len(t, selected, 1)
		assert.Equal(t, "/dev/input/event3", selected[0].Path)
	})

	t.Run("matches path or name", func(t *testing.T) {
		selected, err := SelectDevices(devices, []string{"xbox wireless controller", "/dev/input/event0", "/dev/input/event0"})
		require.NoError(t, err)
		require.Len(t, selected, 2)
		assert.Equal(t, "Xbox Wireless Controller", selected[0].ID())
		assert.Equal(t, "Power Button", selected[1].ID())
	})

	t.Run("reports missing devices", func(t *testing.T) {
		selected, err := SelectDevices(devices, []string{"nope", "/dev/input/event3"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope")
		assert.Len(t, selected, 1)
	})

	t.Run("no keyboard", func(t *testing.T) {
		_, err := SelectDevices(devices[:1], nil)
		assert.Error(t, err)
	})
}
