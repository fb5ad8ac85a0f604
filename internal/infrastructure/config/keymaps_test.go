package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/domain/entity"
)

func testResolver(name string) (int, bool) {
	codes := map[string]int{"KEY_A": 30, "KEY_VOLUMEUP": 115, "KEY_F1": 59}
	code, ok := codes[name]
	return code, ok
}

func TestResolveKey(t *testing.T) {
	code, err := ResolveKey(testResolver, "key_volumeup")
	require.NoError(t, err)
	assert.Equal(t, 115, code)

	code, err = ResolveKey(testResolver, "272")
	require.NoError(t, err)
	assert.Equal(t, 272, code)

	_, err = ResolveKey(testResolver, "KEY_NOPE")
	assert.Error(t, err)
}

func TestKeyMapConfig_ToEntityAppliesDefaults(t *testing.T) {
	cfg := KeyMapConfig{
		ID:      "vol",
		Trigger: TriggerConfig{Keys: []TriggerKeyConfig{{Key: "KEY_VOLUMEUP"}}},
		Actions: []ActionConfig{
			{Key: "KEY_A", Modifiers: []string{"ctrl", "Shift"}},
			{Command: "notify-send", Args: []string{"hi"}, HoldDown: nil, Repeat: &RepeatConfig{RateMs: 50}},
		},
	}

	km, err := cfg.ToEntity(testResolver)

	require.NoError(t, err)
	assert.True(t, km.Enabled)
	assert.Equal(t, entity.TriggerSingle, km.Trigger.Mode)
	assert.Equal(t, entity.ClickShort, km.Trigger.Keys[0].ClickType)
	assert.Equal(t, entity.ConstraintModeAnd, km.ConstraintMode)

	require.Len(t, km.Actions, 2)
	key := km.Actions[0]
	assert.Equal(t, entity.ActionKindKey, key.Payload.Kind)
	assert.Equal(t, 30, key.Payload.KeyCode)
	assert.Equal(t, entity.MetaCtrl|entity.MetaShift, key.Payload.MetaState)
	assert.Equal(t, 1, key.Multiplier)

	cmd := km.Actions[1]
	assert.Equal(t, entity.ActionKindCommand, cmd.Payload.Kind)
	require.NotNil(t, cmd.Repeat)
	assert.Equal(t, entity.StopTriggerReleased, cmd.Repeat.Stop)
	assert.NotEqual(t, key.ID, cmd.ID)
}

func TestKeyMapConfig_ActionIDsAreStable(t *testing.T) {
	cfg := KeyMapConfig{
		ID:      "stable",
		Trigger: TriggerConfig{Keys: []TriggerKeyConfig{{Key: "KEY_F1"}}},
		Actions: []ActionConfig{{Text: "hello"}},
	}

	first, err := cfg.ToEntity(testResolver)
	require.NoError(t, err)
	second, err := cfg.ToEntity(testResolver)
	require.NoError(t, err)

	assert.Equal(t, first.Actions[0].ID, second.Actions[0].ID)
}

func TestKeyMapConfig_HoldDownStopDefaults(t *testing.T) {
	cfg := KeyMapConfig{
		ID:      "hold",
		Trigger: TriggerConfig{Keys: []TriggerKeyConfig{{Key: "KEY_F1", Click: "long"}}},
		Actions: []ActionConfig{
			{Key: "KEY_A", HoldDown: &HoldDownConfig{}},
			{Key: "KEY_A", HoldDown: &HoldDownConfig{DurationMs: 200}},
		},
	}

	km, err := cfg.ToEntity(testResolver)

	require.NoError(t, err)
	assert.Equal(t, entity.StopTriggerReleased, km.Actions[0].HoldDown.Stop)
	assert.Equal(t, entity.StopNone, km.Actions[1].HoldDown.Stop)
}

func TestKeyMapConfig_ToEntityReportsProblems(t *testing.T) {
	disabled := false
	cfg := KeyMapConfig{
		ID:      "broken",
		Enabled: &disabled,
		Trigger: TriggerConfig{Keys: []TriggerKeyConfig{{Key: "KEY_NOPE"}}},
		Actions: []ActionConfig{{Key: "KEY_A", Modifiers: []string{"hyper"}}},
	}

	_, err := cfg.ToEntity(testResolver)

	var cfgErr *entity.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "broken", cfgErr.KeyMapID)
	assert.Len(t, cfgErr.Problems, 2)
}

func TestKeyMapConfig_ToEntityRunsEntityValidation(t *testing.T) {
	cfg := KeyMapConfig{
		ID:      "parallel",
		Trigger: TriggerConfig{Mode: "parallel", Keys: []TriggerKeyConfig{{Key: "KEY_A"}}},
		Actions: []ActionConfig{{Text: "x"}},
	}

	_, err := cfg.ToEntity(testResolver)

	var cfgErr *entity.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "parallel needs at least two keys")
}

func TestConvertKeyMaps_KeepsValidEntries(t *testing.T) {
	configs := []KeyMapConfig{
		{ID: "ok", Trigger: TriggerConfig{Keys: []TriggerKeyConfig{{Key: "KEY_A"}}}, Actions: []ActionConfig{{Text: "a"}}},
		{ID: "bad", Trigger: TriggerConfig{Keys: []TriggerKeyConfig{{Key: "KEY_A"}}}},
	}

	keyMaps, err := ConvertKeyMaps(configs, testResolver)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "key map bad rejected")
	require.Len(t, keyMaps, 1)
	assert.Equal(t, "ok", keyMaps[0].ID)
}

func TestReadKeyMapsFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := writeFile(t, dir, "maps.yaml", `
keymaps:
  - id: media
    trigger:
      mode: parallel
      keys:
        - key: KEY_VOLUMEUP
        - key: KEY_VOLUMEDOWN
    actions:
      - system: lock_screen
    constraints:
      - kind: screen_unlocked
`)
	tomlPath := writeFile(t, dir, "maps.toml", `
[[keymaps]]
id = "f1"
[keymaps.trigger]
keys = [{ key = "KEY_F1", click = "double" }]
[[keymaps.actions]]
text = "hello"
`)

	fromYAML, err := ReadKeyMapsFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "parallel", fromYAML[0].Trigger.Mode)
	assert.Len(t, fromYAML[0].Trigger.Keys, 2)
	assert.Equal(t, "screen_unlocked", fromYAML[0].Constraints[0].Kind)

	fromTOML, err := ReadKeyMapsFile(tomlPath)
	require.NoError(t, err)
	require.Len(t, fromTOML, 1)
	assert.Equal(t, "double", fromTOML[0].Trigger.Keys[0].Click)

	_, err = ReadKeyMapsFile(writeFile(t, dir, "maps.json", "{}"))
	assert.Error(t, err)
}

func TestReadKeyMapsFile_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()

	yamlPath := writeFile(t, dir, "typo.yaml", `
keymaps:
  - id: media
    trigger:
      keys:
        - key: KEY_VOLUMEUP
          clik: long
    actions:
      - system: lock_screen
`)
	tomlPath := writeFile(t, dir, "typo.toml", `
[[keymaps]]
id = "f1"
enabeld = false
[keymaps.trigger]
keys = [{ key = "KEY_F1" }]
`)

	_, err := ReadKeyMapsFile(yamlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clik")

	_, err = ReadKeyMapsFile(tomlPath)
	require.Error(t, err)

	empty, err := ReadKeyMapsFile(writeFile(t, dir, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestKeyMapSource_LoadKeyMaps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.yaml", `
keymaps:
  - id: extra
    trigger:
      keys:
        - key: KEY_F1
    actions:
      - text: from file
`)
	path := writeFile(t, dir, "config.toml", `
keymaps_files = ["extra.yaml", "missing.yaml"]

[database]
path = "/tmp/j.sqlite"

[logging]
log_dir = "/tmp/logs"

[[keymaps]]
id = "inline"
[keymaps.trigger]
keys = [{ key = "KEY_A" }]
[[keymaps.actions]]
key = "KEY_VOLUMEUP"
`)
	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	keyMaps, err := NewKeyMapSource(mgr, testResolver).LoadKeyMaps(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
	require.Len(t, keyMaps, 2)
	assert.Equal(t, "inline", keyMaps[0].ID)
	assert.Equal(t, "extra", keyMaps[1].ID)
}
