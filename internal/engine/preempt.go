package engine

import "github.com/bnema/keymapper/internal/domain/entity"

// PreemptPolicy reports whether a match of winner cancels the running chain
// of other. It is never asked about a key map and itself.
type PreemptPolicy func(winner, other entity.KeyMap) bool

// MostSpecificWins cancels chains of key maps whose trigger keys are a strict
// subset of the winner's, e.g. Ctrl+Shift+K stops the repeat started by Ctrl+K.
func MostSpecificWins(winner, other entity.KeyMap) bool {
	return len(winner.Trigger.Keys) > len(other.Trigger.Keys) &&
		winner.Trigger.Contains(other.Trigger)
}

// PreemptPolicyByName resolves a configured policy name. Unknown names and
// "none" return nil.
func PreemptPolicyByName(name string) PreemptPolicy {
	switch name {
	case "most_specific":
		return MostSpecificWins
	default:
		return nil
	}
}
