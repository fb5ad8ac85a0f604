package port

import (
	"context"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// KeyMapEngine is the engine surface used by use cases and the CLI.
type KeyMapEngine interface {
	// SetKeyMaps replaces the configuration. Invalid key maps are rejected
	// with joined *entity.ConfigurationError values; valid ones are active.
	SetKeyMaps(keyMaps []entity.KeyMap) error
	EnableKeyMap(id string) error
	DisableKeyMap(id string) error
	// TriggerKeyMap runs a key map's actions as if its trigger matched.
	TriggerKeyMap(id string) error
}

// KeyMapSource loads the configured key maps.
type KeyMapSource interface {
	LoadKeyMaps(ctx context.Context) ([]entity.KeyMap, error)
}

// DispatchObserver receives one record per executed dispatch.
// OnDispatch is called from dispatch lanes and must not block.
type DispatchObserver interface {
	OnDispatch(record entity.DispatchRecord)
}
