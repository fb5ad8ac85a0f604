package port

import "github.com/bnema/keymapper/internal/domain/entity"

// WorldStateProvider returns the current snapshot of external state.
// Snapshot must not block: adapters poll or subscribe into a cache.
type WorldStateProvider interface {
	Snapshot() entity.WorldState
}
