// Package matcher decides when a trigger matches. A Matcher holds only
// configuration; all progress lives in a State owned by the caller, so one
// Matcher value can be rebuilt freely while its State survives.
package matcher

import (
	"time"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// Phase is the externally visible progress of a trigger.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseAwaitingKeys       Phase = "awaiting_keys"
	PhaseLongPressPending   Phase = "long_press_pending"
	PhaseDoublePressPending Phase = "double_press_pending"
	PhaseMatched            Phase = "matched"
	// PhaseFailed holds while the keys of a failed press are still down.
	PhaseFailed Phase = "failed"
)

// Timing holds the resolved windows of one trigger, in nanoseconds.
type Timing struct {
	CoincidenceWindow int64
	LongPressDelay    int64
	// DoublePressTimeout bounds the gap from the first release to the second
	// down. A double press matches on that down; how long the second press is
	// held afterwards does not matter.
	DoublePressTimeout int64
	// SequenceTimeout bounds the gap between sequence elements; 0 disables it.
	SequenceTimeout   int64
	SequenceInterrupt entity.SequenceInterrupt
}

// DefaultTiming returns the engine defaults.
func DefaultTiming() Timing {
	return Timing{
		CoincidenceWindow:  int64(100 * time.Millisecond),
		LongPressDelay:     int64(500 * time.Millisecond),
		DoublePressTimeout: int64(300 * time.Millisecond),
		SequenceTimeout:    int64(time.Second),
		SequenceInterrupt:  entity.SequenceInterruptReset,
	}
}

// Resolve applies the trigger's own overrides on top of t.
func (t Timing) Resolve(tr entity.Trigger) Timing {
	if tr.LongPressDelayMs > 0 {
		t.LongPressDelay = msToNanos(tr.LongPressDelayMs)
	}
	if tr.DoublePressTimeoutMs > 0 {
		t.DoublePressTimeout = msToNanos(tr.DoublePressTimeoutMs)
	}
	if tr.SequenceTimeoutMs > 0 {
		t.SequenceTimeout = msToNanos(tr.SequenceTimeoutMs)
	}
	if tr.SequenceInterrupt != "" {
		t.SequenceInterrupt = tr.SequenceInterrupt
	}
	return t
}

func msToNanos(ms int) int64 {
	return int64(ms) * int64(time.Millisecond)
}

// Shadow records competing key maps that use the same keys with a longer
// click type. A shadowed short press waits until the longer interpretation
// is ruled out.
type Shadow struct {
	Long   bool
	Double bool
}

// Deferred reports whether a short press must wait for its release.
func (s Shadow) Deferred() bool {
	return s.Long || s.Double
}

// State is the mutable progress of one trigger.
type State struct {
	Phase Phase

	// Deadline is valid while Armed. Gen changes every time the deadline is
	// armed or dropped so a stale timer can be recognised.
	Deadline int64
	Armed    bool
	Gen      uint64

	held    []bool
	downAt  []int64
	pressAt int64
	pressed bool
	active  bool
	ignore  bool
	cursor  int
}

// NewState returns an idle state sized for the trigger.
func NewState(tr entity.Trigger) *State {
	return &State{
		Phase:  PhaseIdle,
		held:   make([]bool, len(tr.Keys)),
		downAt: make([]int64, len(tr.Keys)),
	}
}

// Active reports whether a matched press is still down.
func (s *State) Active() bool {
	return s.active
}

// Cursor returns the sequence position.
func (s *State) Cursor() int {
	return s.cursor
}

func (s *State) arm(deadline int64) {
	s.Gen++
	s.Deadline = deadline
	s.Armed = true
}

func (s *State) disarm() {
	if s.Armed {
		s.Gen++
		s.Armed = false
	}
}

func (s *State) allHeld() bool {
	for _, h := range s.held {
		if !h {
			return false
		}
	}
	return len(s.held) > 0
}

func (s *State) anyHeld() bool {
	for _, h := range s.held {
		if h {
			return true
		}
	}
	return false
}

// spread returns the time between the first and the last key down.
func (s *State) spread() int64 {
	lo, hi := s.downAt[0], s.downAt[0]
	for _, t := range s.downAt[1:] {
		lo = min(lo, t)
		hi = max(hi, t)
	}
	return hi - lo
}

// Outcome reports what one Feed or Expire call decided.
type Outcome struct {
	Match   bool
	MatchAt int64
	// Released is set when the press that matched has ended.
	Released   bool
	ReleasedAt int64
	// Failed is set when a press was ruled out. It is not an error.
	Failed bool
}

func (o *Outcome) merge(other Outcome) {
	if other.Match {
		o.Match = true
		o.MatchAt = other.MatchAt
	}
	if other.Released {
		o.Released = true
		o.ReleasedAt = other.ReleasedAt
	}
	o.Failed = o.Failed || other.Failed
}

// Allow reports whether the key map's constraints hold. It is only called
// when a match is about to fire.
type Allow func() bool
