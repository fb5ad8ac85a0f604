package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine/normalizer"
)

func key(kind entity.RawEventKind, code int, device string, ts int64) entity.RawEvent {
	return entity.RawEvent{Kind: kind, KeyCode: code, DeviceID: device, TimestampNanos: ts}
}

func TestNormalize_SuppressesRepeatsAndDuplicates(t *testing.T) {
	n := normalizer.New()

	down := n.Normalize(key(entity.RawKeyDown, 30, "kbd", 1))
	require.Len(t, down, 1)
	assert.True(t, down[0].IsDown)
	assert.Equal(t, 30, down[0].KeyCode)

	assert.Empty(t, n.Normalize(key(entity.RawKeyRepeat, 30, "kbd", 2)))
	assert.Empty(t, n.Normalize(key(entity.RawKeyDown, 30, "kbd", 3)), "second down while down")
	assert.True(t, n.IsDown("kbd", 30))

	up := n.Normalize(key(entity.RawKeyUp, 30, "kbd", 4))
	require.Len(t, up, 1)
	assert.False(t, up[0].IsDown)
	assert.Equal(t, int64(4), up[0].TimestampNanos)

	assert.Empty(t, n.Normalize(key(entity.RawKeyUp, 30, "kbd", 5)), "up for a key that is not down")
}

func TestNormalize_TracksDevicesSeparately(t *testing.T) {
	n := normalizer.New()

	assert.Len(t, n.Normalize(key(entity.RawKeyDown, 30, "kbd", 1)), 1)
	assert.Len(t, n.Normalize(key(entity.RawKeyDown, 30, "pad", 2)), 1)

	assert.Len(t, n.Normalize(key(entity.RawKeyDown, 17, "kbd", 3)), 1)

	released := n.ReleaseDevice("kbd", 10)
	require.Len(t, released, 2)
	assert.Equal(t, entity.InputEvent{KeyCode: 17, DeviceID: "kbd", TimestampNanos: 10}, released[0])
	assert.Equal(t, 30, released[1].KeyCode)
	assert.False(t, n.IsDown("kbd", 30))
	assert.True(t, n.IsDown("pad", 30))
}

func TestNormalize_HatMotionBecomesDpadKeys(t *testing.T) {
	n := normalizer.New()
	hat := func(axis entity.MotionAxis, v int, ts int64) entity.RawEvent {
		return entity.RawEvent{Kind: entity.RawMotion, DeviceID: "pad", Axis: axis, AxisValue: v, TimestampNanos: ts}
	}

	out := n.Normalize(hat(entity.AxisHatX, -1, 1))
	require.Len(t, out, 1)
	assert.Equal(t, entity.KeyCodeDpadLeft, out[0].KeyCode)
	assert.True(t, out[0].IsDown)

	assert.Empty(t, n.Normalize(hat(entity.AxisHatX, -1, 2)), "same direction again")

	out = n.Normalize(hat(entity.AxisHatX, 1, 3))
	require.Len(t, out, 2)
	assert.Equal(t, entity.InputEvent{KeyCode: entity.KeyCodeDpadLeft, DeviceID: "pad", TimestampNanos: 3}, out[0])
	assert.Equal(t, entity.KeyCodeDpadRight, out[1].KeyCode)
	assert.True(t, out[1].IsDown)

	out = n.Normalize(hat(entity.AxisHatX, 0, 4))
	require.Len(t, out, 1)
	assert.Equal(t, entity.KeyCodeDpadRight, out[0].KeyCode)
	assert.False(t, out[0].IsDown)

	out = n.Normalize(hat(entity.AxisHatY, -1, 5))
	require.Len(t, out, 1)
	assert.Equal(t, entity.KeyCodeDpadUp, out[0].KeyCode)
}
