package engine

import (
	"github.com/bnema/keymapper/internal/engine/matcher"
	"github.com/bnema/keymapper/internal/engine/scheduler"
)

// KeyMapStatus is a point-in-time view of one key map.
type KeyMapStatus struct {
	ID      string
	Name    string
	Enabled bool
	Trigger matcher.Phase
	// Cursor is the next sequence element to match.
	Cursor int
	// Chain is empty when no actions ever ran.
	Chain       scheduler.Phase
	ActionIndex int
}

// Status returns the key maps in configuration order.
func (e *Engine) Status() ([]KeyMapStatus, error) {
	var out []KeyMapStatus
	err := e.call(func() error {
		out = make([]KeyMapStatus, 0, len(e.order))
		for _, id := range e.order {
			ks := e.keyMaps[id]
			st := KeyMapStatus{
				ID:      id,
				Name:    ks.km.DisplayName(),
				Enabled: ks.enabled,
				Trigger: ks.state.Phase,
				Cursor:  ks.state.Cursor(),
			}
			if ks.chain != nil {
				st.Chain = ks.chain.Phase
				st.ActionIndex = ks.chain.Index
			}
			out = append(out, st)
		}
		return nil
	})
	return out, err
}
