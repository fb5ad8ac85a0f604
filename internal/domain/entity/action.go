package entity

import (
	"cmp"
	"slices"
	"strings"
)

// KeyEventType is the semantic edge an execution represents.
type KeyEventType string

const (
	KeyEventDown   KeyEventType = "down"
	KeyEventUp     KeyEventType = "up"
	KeyEventDownUp KeyEventType = "down_up"
)

// StopCondition ends a repeat or hold-down.
type StopCondition string

const (
	// StopNone releases a hold-down once its duration elapsed. Not valid for repeat.
	StopNone StopCondition = "none"
	// StopTriggerReleased stops when a key of the matched press is released.
	StopTriggerReleased StopCondition = "released"
	// StopTriggerPressedAgain stops on the next match of the same key map.
	StopTriggerPressedAgain StopCondition = "pressed_again"
	// StopLimitReached stops a repeat after Limit dispatches. Not valid for hold-down.
	StopLimitReached StopCondition = "limit"
)

// RepeatPolicy re-dispatches an action: first repeat DelayMs after the initial
// dispatch, then every RateMs until Stop is satisfied.
type RepeatPolicy struct {
	RateMs  int
	DelayMs int
	Stop    StopCondition
	Limit   int
}

// HoldDownPolicy dispatches a down edge, keeps it for at least DurationMs and
// then dispatches the up edge according to Stop.
type HoldDownPolicy struct {
	DurationMs int
	Stop       StopCondition
}

// Action is one entry in a key map's ordered action list.
// Repeat and HoldDown are mutually exclusive; HoldDown wins when both are set.
type Action struct {
	ID                string
	Payload           ActionPayload
	Repeat            *RepeatPolicy
	HoldDown          *HoldDownPolicy
	Multiplier        int
	DelayBeforeNextMs int
}

// Times returns how many executions the initial dispatch performs.
func (a Action) Times() int {
	if a.Multiplier < 1 {
		return 1
	}
	return a.Multiplier
}

// Modifier bits carried in MetaState fields.
const (
	MetaShift = 1 << iota
	MetaCtrl
	MetaAlt
	MetaSuper
)

// ActionKind discriminates the payload variants.
type ActionKind string

const (
	ActionKindKey     ActionKind = "key"
	ActionKindText    ActionKind = "text"
	ActionKindCommand ActionKind = "command"
	ActionKindSystem  ActionKind = "system"
)

var actionKindRank = map[ActionKind]int{
	ActionKindKey:     0,
	ActionKindText:    1,
	ActionKindCommand: 2,
	ActionKindSystem:  3,
}

// IsKnown reports whether the kind is one of the payload variants.
func (k ActionKind) IsKnown() bool {
	_, ok := actionKindRank[k]
	return ok
}

// ActionPayload is what an executor performs. The engine never looks inside.
//
// Fields by kind:
//   - key: KeyCode, MetaState
//   - text: Text
//   - command: Command, Args
//   - system: SystemID
type ActionPayload struct {
	Kind      ActionKind
	KeyCode   int
	MetaState int
	Text      string
	Command   string
	Args      []string
	SystemID  string
}

// Compare orders payloads by kind, then by the kind's own fields.
func (p ActionPayload) Compare(o ActionPayload) int {
	if c := cmp.Compare(kindRank(p.Kind), kindRank(o.Kind)); c != 0 {
		return c
	}
	if p.Kind != o.Kind {
		return strings.Compare(string(p.Kind), string(o.Kind))
	}
	switch p.Kind {
	case ActionKindKey:
		if c := cmp.Compare(p.KeyCode, o.KeyCode); c != 0 {
			return c
		}
		return cmp.Compare(p.MetaState, o.MetaState)
	case ActionKindText:
		return strings.Compare(p.Text, o.Text)
	case ActionKindCommand:
		if c := strings.Compare(p.Command, o.Command); c != 0 {
			return c
		}
		return slices.Compare(p.Args, o.Args)
	case ActionKindSystem:
		return strings.Compare(p.SystemID, o.SystemID)
	default:
		return 0
	}
}

// Equal reports whether both payloads describe the same action.
func (p ActionPayload) Equal(o ActionPayload) bool {
	return p.Compare(o) == 0
}

func kindRank(k ActionKind) int {
	if r, ok := actionKindRank[k]; ok {
		return r
	}
	return len(actionKindRank)
}
