package control

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/application/port/mocks"
	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine"
	"github.com/bnema/keymapper/internal/engine/matcher"
	"github.com/bnema/keymapper/internal/engine/scheduler"
	"github.com/bnema/keymapper/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console", nil))
}

func newTestService(t *testing.T, eng *mocks.MockKeyMapEngine) *Service {
	t.Helper()
	return NewService(testCtx(), Handlers{
		Toggle:  usecase.NewToggleKeyMapUseCase(eng),
		Trigger: usecase.NewTriggerKeyMapUseCase(eng),
		Reload: func(context.Context) (usecase.LoadKeyMapsOutput, error) {
			return usecase.LoadKeyMapsOutput{
				Loaded:   2,
				Rejected: []error{&entity.ConfigurationError{KeyMapID: "bad", Problems: []string{"actions cannot be empty"}}},
			}, nil
		},
		Status: func() ([]engine.KeyMapStatus, error) {
			return []engine.KeyMapStatus{{
				ID:          "vol",
				Name:        "Volume",
				Enabled:     true,
				Trigger:     matcher.PhaseIdle,
				Chain:       scheduler.PhaseRepeating,
				ActionIndex: 1,
			}}, nil
		},
	})
}

func TestService_EnableDisable(t *testing.T) {
	eng := mocks.NewMockKeyMapEngine(t)
	eng.EXPECT().EnableKeyMap("vol").Return(nil).Once()
	eng.EXPECT().DisableKeyMap("vol").Return(nil).Once()
	s := newTestService(t, eng)

	assert.Nil(t, s.Enable("vol"))
	assert.Nil(t, s.Disable("vol"))
}

func TestService_ErrorNames(t *testing.T) {
	eng := mocks.NewMockKeyMapEngine(t)
	eng.EXPECT().EnableKeyMap("nope").Return(entity.ErrKeyMapNotFound).Once()
	eng.EXPECT().TriggerKeyMap("off").Return(entity.ErrKeyMapDisabled).Once()
	eng.EXPECT().TriggerKeyMap("boom").Return(errors.New("boom")).Once()
	s := newTestService(t, eng)

	dbusErr := s.Enable("nope")
	require.NotNil(t, dbusErr)
	assert.Equal(t, errNotFound, dbusErr.Name)

	dbusErr = s.Trigger("off")
	require.NotNil(t, dbusErr)
	assert.Equal(t, errDisabled, dbusErr.Name)

	dbusErr = s.Trigger("boom")
	require.NotNil(t, dbusErr)
	assert.Equal(t, errFailed, dbusErr.Name)
}

func TestService_ReloadAndStatus(t *testing.T) {
	s := newTestService(t, mocks.NewMockKeyMapEngine(t))

	res, dbusErr := s.Reload()
	require.Nil(t, dbusErr)
	assert.Equal(t, int32(2), res.Loaded)
	require.Len(t, res.Rejected, 1)
	assert.Contains(t, res.Rejected[0], "key map bad rejected")

	states, dbusErr := s.Status()
	require.Nil(t, dbusErr)
	require.Len(t, states, 1)
	assert.Equal(t, KeyMapState{
		ID:          "vol",
		Name:        "Volume",
		Enabled:     true,
		Trigger:     string(matcher.PhaseIdle),
		Chain:       string(scheduler.PhaseRepeating),
		ActionIndex: 1,
	}, states[0])
}

func TestFromDBusError_RestoresSentinels(t *testing.T) {
	err := fromDBusError(toDBusError(entity.ErrKeyMapNotFound))
	assert.ErrorIs(t, err, entity.ErrKeyMapNotFound)

	err = fromDBusError(toDBusError(entity.ErrKeyMapDisabled))
	assert.ErrorIs(t, err, entity.ErrKeyMapDisabled)

	err = fromDBusError(toDBusError(errors.New("exec failed")))
	assert.EqualError(t, err, "exec failed")
}
