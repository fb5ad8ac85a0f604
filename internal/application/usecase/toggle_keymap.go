package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/logging"
)

// ToggleKeyMapUseCase enables or disables a key map at runtime.
type ToggleKeyMapUseCase struct {
	engine port.KeyMapEngine
}

// NewToggleKeyMapUseCase creates a new ToggleKeyMapUseCase.
func NewToggleKeyMapUseCase(engine port.KeyMapEngine) *ToggleKeyMapUseCase {
	return &ToggleKeyMapUseCase{engine: engine}
}

// Execute enables the key map when enabled is set and disables it otherwise.
// Disabling cancels its pending match and running actions without dispatching.
func (uc *ToggleKeyMapUseCase) Execute(ctx context.Context, id string, enabled bool) error {
	log := logging.FromContext(logging.WithKeyMapID(ctx, id))

	var err error
	if enabled {
		err = uc.engine.EnableKeyMap(id)
	} else {
		err = uc.engine.DisableKeyMap(id)
	}
	if err != nil {
		return fmt.Errorf("toggle key map %s: %w", id, err)
	}

	log.Info().Bool("enabled", enabled).Msg("key map toggled")
	return nil
}

// TriggerKeyMapUseCase runs a key map's actions on demand.
type TriggerKeyMapUseCase struct {
	engine port.KeyMapEngine
}

// NewTriggerKeyMapUseCase creates a new TriggerKeyMapUseCase.
func NewTriggerKeyMapUseCase(engine port.KeyMapEngine) *TriggerKeyMapUseCase {
	return &TriggerKeyMapUseCase{engine: engine}
}

// Execute dispatches the key map as if its trigger had been tapped.
func (uc *TriggerKeyMapUseCase) Execute(ctx context.Context, id string) error {
	if err := uc.engine.TriggerKeyMap(id); err != nil {
		return fmt.Errorf("trigger key map %s: %w", id, err)
	}
	logging.FromContext(logging.WithKeyMapID(ctx, id)).Debug().Msg("key map triggered manually")
	return nil
}
