// Package worldstate caches the external state key map constraints read.
package worldstate

import (
	"maps"
	"sync"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
)

// Store holds the latest world state. Snapshot never blocks on adapters.
type Store struct {
	mu    sync.RWMutex
	state entity.WorldState
	clock port.Clock
}

var _ port.WorldStateProvider = (*Store)(nil)

// NewStore creates a store seeded with flags. The screen starts on and
// unlocked until an adapter says otherwise.
func NewStore(clock port.Clock, flags map[string]bool) *Store {
	return &Store{
		clock: clock,
		state: entity.WorldState{
			ScreenOn: true,
			Flags:    maps.Clone(flags),
		},
	}
}

// Snapshot returns a copy stamped with the current time.
func (s *Store) Snapshot() entity.WorldState {
	s.mu.RLock()
	snap := s.state.Clone()
	s.mu.RUnlock()

	if s.clock != nil {
		snap.CapturedAtNanos = s.clock.NowNanos()
	}
	return snap
}

// Update applies fn to the state under the lock.
func (s *Store) Update(fn func(*entity.WorldState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// SetFlag sets a named flag for flag_set / flag_unset constraints.
func (s *Store) SetFlag(name string, value bool) {
	s.Update(func(w *entity.WorldState) {
		if w.Flags == nil {
			w.Flags = make(map[string]bool)
		}
		w.Flags[name] = value
	})
}

// ReplaceFlags swaps in a new flag set, e.g. after a config reload.
func (s *Store) ReplaceFlags(flags map[string]bool) {
	s.Update(func(w *entity.WorldState) {
		w.Flags = maps.Clone(flags)
	})
}
