package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/application/port/mocks"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console", nil))
}

func TestRouter_KeyActionCombinesMetaState(t *testing.T) {
	keys := mocks.NewMockKeyEmitter(t)
	keys.EXPECT().
		EmitKey(mock.Anything, 30, entity.MetaCtrl|entity.MetaShift, entity.KeyEventDownUp).
		Return(nil).
		Once()
	r := NewRouter(keys, Config{})

	err := r.Execute(testCtx(), entity.ActionPayload{
		Kind:      entity.ActionKindKey,
		KeyCode:   30,
		MetaState: entity.MetaCtrl,
	}, entity.KeyEventDownUp, entity.MetaShift)

	require.NoError(t, err)
}

func TestRouter_TextTypedOnPressOnly(t *testing.T) {
	keys := mocks.NewMockKeyEmitter(t)
	keys.EXPECT().TypeText(mock.Anything, "hello").Return(nil).Once()
	r := NewRouter(keys, Config{})
	payload := entity.ActionPayload{Kind: entity.ActionKindText, Text: "hello"}

	require.NoError(t, r.Execute(testCtx(), payload, entity.KeyEventDown, 0))
	require.NoError(t, r.Execute(testCtx(), payload, entity.KeyEventUp, 0))
}

func TestRouter_KeyActionsWithoutKeyboard(t *testing.T) {
	r := NewRouter(nil, Config{})

	err := r.Execute(testCtx(), entity.ActionPayload{Kind: entity.ActionKindKey, KeyCode: 30}, entity.KeyEventDownUp, 0)

	assert.ErrorIs(t, err, ErrUnsupportedAction)
}

func TestRouter_CommandRunsWithArgs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "touched")
	r := NewRouter(nil, Config{CommandTimeout: 5 * time.Second})

	err := r.Execute(testCtx(), entity.ActionPayload{
		Kind:    entity.ActionKindCommand,
		Command: "touch",
		Args:    []string{out},
	}, entity.KeyEventDownUp, 0)

	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestRouter_CommandThroughShell(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shell")
	r := NewRouter(nil, Config{})

	err := r.Execute(testCtx(), entity.ActionPayload{
		Kind:    entity.ActionKindCommand,
		Command: "printf ok > " + out,
	}, entity.KeyEventDown, 0)

	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestRouter_CommandFailureCarriesOutput(t *testing.T) {
	r := NewRouter(nil, Config{})

	err := r.Execute(testCtx(), entity.ActionPayload{
		Kind:    entity.ActionKindCommand,
		Command: "echo boom >&2; exit 3",
	}, entity.KeyEventDownUp, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRouter_CommandTimeout(t *testing.T) {
	r := NewRouter(nil, Config{CommandTimeout: 50 * time.Millisecond})

	err := r.Execute(testCtx(), entity.ActionPayload{
		Kind:    entity.ActionKindCommand,
		Command: "sleep 5",
	}, entity.KeyEventDownUp, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRouter_CommandSkippedOnRelease(t *testing.T) {
	r := NewRouter(nil, Config{})

	err := r.Execute(testCtx(), entity.ActionPayload{
		Kind:    entity.ActionKindCommand,
		Command: "exit 1",
	}, entity.KeyEventUp, 0)

	assert.NoError(t, err)
}

func TestRouter_SystemActions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "locked")
	r := NewRouter(nil, Config{SystemCommands: map[string]string{"lock_screen": "touch " + out}})

	require.NoError(t, r.Execute(testCtx(), entity.ActionPayload{Kind: entity.ActionKindSystem, SystemID: "lock_screen"}, entity.KeyEventDownUp, 0))
	assert.FileExists(t, out)

	err := r.Execute(testCtx(), entity.ActionPayload{Kind: entity.ActionKindSystem, SystemID: "reboot"}, entity.KeyEventDownUp, 0)
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}
