package entity_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/keymapper/internal/domain/entity"
)

func TestActionPayload_Compare_OrdersByKindThenFields(t *testing.T) {
	payloads := []entity.ActionPayload{
		{Kind: entity.ActionKindSystem, SystemID: "volume_up"},
		{Kind: entity.ActionKindCommand, Command: "notify-send", Args: []string{"b"}},
		{Kind: entity.ActionKindKey, KeyCode: 115},
		{Kind: entity.ActionKindCommand, Command: "notify-send", Args: []string{"a"}},
		{Kind: entity.ActionKindText, Text: "hello"},
		{Kind: entity.ActionKindKey, KeyCode: 114},
	}

	slices.SortFunc(payloads, entity.ActionPayload.Compare)

	assert.Equal(t, entity.ActionKindKey, payloads[0].Kind)
	assert.Equal(t, 114, payloads[0].KeyCode)
	assert.Equal(t, 115, payloads[1].KeyCode)
	assert.Equal(t, entity.ActionKindText, payloads[2].Kind)
	assert.Equal(t, []string{"a"}, payloads[3].Args)
	assert.Equal(t, []string{"b"}, payloads[4].Args)
	assert.Equal(t, entity.ActionKindSystem, payloads[5].Kind)
}

func TestActionPayload_Equal(t *testing.T) {
	a := entity.ActionPayload{Kind: entity.ActionKindKey, KeyCode: 30, MetaState: 1}
	b := entity.ActionPayload{Kind: entity.ActionKindKey, KeyCode: 30, MetaState: 1}
	c := entity.ActionPayload{Kind: entity.ActionKindKey, KeyCode: 30}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestAction_Times(t *testing.T) {
	assert.Equal(t, 1, entity.Action{}.Times())
	assert.Equal(t, 3, entity.Action{Multiplier: 3}.Times())
}

func TestTrigger_SameKeySetAndContains(t *testing.T) {
	ab := entity.Trigger{Mode: entity.TriggerParallel, Keys: []entity.TriggerKey{{KeyCode: 1}, {KeyCode: 2}}}
	ba := entity.Trigger{Mode: entity.TriggerParallel, Keys: []entity.TriggerKey{{KeyCode: 2}, {KeyCode: 1, ClickType: entity.ClickLong}}}
	a := entity.Trigger{Mode: entity.TriggerSingle, Keys: []entity.TriggerKey{{KeyCode: 1}}}
	aDev := entity.Trigger{Mode: entity.TriggerSingle, Keys: []entity.TriggerKey{{KeyCode: 1, DeviceID: "kbd"}}}

	assert.True(t, ab.SameKeySet(ba))
	assert.False(t, ab.SameKeySet(a))
	assert.False(t, a.SameKeySet(aDev))
	assert.True(t, ab.Contains(a))
	assert.False(t, a.Contains(ab))
}

func TestTrigger_OverlapsKeySet(t *testing.T) {
	a := entity.Trigger{Mode: entity.TriggerSingle, Keys: []entity.TriggerKey{{KeyCode: 1}}}
	aKbd := entity.Trigger{Mode: entity.TriggerSingle, Keys: []entity.TriggerKey{{KeyCode: 1, DeviceID: "kbd", ClickType: entity.ClickLong}}}
	aPad := entity.Trigger{Mode: entity.TriggerSingle, Keys: []entity.TriggerKey{{KeyCode: 1, DeviceID: "pad"}}}
	ab := entity.Trigger{Mode: entity.TriggerParallel, Keys: []entity.TriggerKey{{KeyCode: 1}, {KeyCode: 2, DeviceID: "kbd"}}}
	baKbd := entity.Trigger{Mode: entity.TriggerParallel, Keys: []entity.TriggerKey{{KeyCode: 2}, {KeyCode: 1, DeviceID: "kbd"}}}

	assert.True(t, a.OverlapsKeySet(aKbd))
	assert.True(t, aKbd.OverlapsKeySet(a))
	assert.False(t, aKbd.OverlapsKeySet(aPad))
	assert.True(t, ab.OverlapsKeySet(baKbd))
	assert.False(t, a.OverlapsKeySet(ab))
}

func TestTriggerKey_Matches(t *testing.T) {
	anyDevice := entity.TriggerKey{KeyCode: 30}
	kbd := entity.TriggerKey{KeyCode: 30, DeviceID: "kbd"}

	assert.True(t, anyDevice.Matches(entity.InputEvent{KeyCode: 30, DeviceID: "pad"}))
	assert.True(t, kbd.Matches(entity.InputEvent{KeyCode: 30, DeviceID: "kbd"}))
	assert.False(t, kbd.Matches(entity.InputEvent{KeyCode: 30, DeviceID: "pad"}))
	assert.False(t, kbd.Matches(entity.InputEvent{KeyCode: 31, DeviceID: "kbd"}))
}
