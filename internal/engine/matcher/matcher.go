package matcher

import (
	"github.com/bnema/keymapper/internal/domain/entity"
)

// Matcher is the immutable configuration of one trigger.
type Matcher struct {
	Trigger entity.Trigger
	Timing  Timing
	Shadow  Shadow
}

// New builds a matcher, resolving the trigger's timing overrides against defaults.
func New(tr entity.Trigger, defaults Timing, shadow Shadow) Matcher {
	return Matcher{Trigger: tr, Timing: defaults.Resolve(tr), Shadow: shadow}
}

// Interested reports whether ev must be fed to this matcher. A sequence in
// progress also watches unlisted keys so it can apply its interrupt policy.
func (m Matcher) Interested(st *State, ev entity.InputEvent) bool {
	if m.Trigger.References(ev) {
		return true
	}
	return m.Trigger.Mode == entity.TriggerSequence && ev.IsDown && st.cursor > 0
}

// Feed advances the state with one event.
//
// An event stamped at or after an armed deadline is processed as if the
// deadline fired first, so a release racing a long-press timer resolves the
// same way regardless of which message reached the queue first.
func (m Matcher) Feed(st *State, ev entity.InputEvent, allow Allow) Outcome {
	var out Outcome
	if st.Armed && ev.TimestampNanos >= st.Deadline {
		out = m.expire(st, allow)
	}

	if m.Trigger.Mode == entity.TriggerSequence {
		out.merge(m.feedSequence(st, ev, allow))
		return out
	}

	idx := m.keyIndexes(ev)
	if len(idx) == 0 {
		return out
	}
	if ev.IsDown {
		out.merge(m.keyDown(st, idx, ev.TimestampNanos, allow))
	} else {
		out.merge(m.keyUp(st, idx, ev.TimestampNanos, allow))
	}
	return out
}

// Expire handles a timer message. Stale generations are ignored.
func (m Matcher) Expire(st *State, gen uint64, allow Allow) Outcome {
	if !st.Armed || st.Gen != gen {
		return Outcome{}
	}
	return m.expire(st, allow)
}

// Reset drops all progress, e.g. when the key map is disabled.
func (m Matcher) Reset(st *State) {
	gen := st.Gen
	*st = *NewState(m.Trigger)
	st.Gen = gen + 1
}

func (m Matcher) keyIndexes(ev entity.InputEvent) []int {
	var idx []int
	for i, k := range m.Trigger.Keys {
		if k.Matches(ev) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m Matcher) keyDown(st *State, idx []int, ts int64, allow Allow) Outcome {
	for _, i := range idx {
		st.held[i] = true
		st.downAt[i] = ts
	}

	if st.Phase == PhaseDoublePressPending {
		st.disarm()
		if m.Trigger.ClickType() == entity.ClickDouble {
			return m.fire(st, ts, allow)
		}
		// A second tap belongs to the double-press competitor.
		st.Phase = PhaseFailed
		st.ignore = true
		return Outcome{Failed: true}
	}

	if st.ignore || st.active || st.pressed || st.Phase == PhaseLongPressPending {
		return Outcome{}
	}
	if !st.allHeld() {
		st.Phase = PhaseAwaitingKeys
		return Outcome{}
	}
	if st.spread() > m.Timing.CoincidenceWindow {
		st.Phase = PhaseFailed
		st.ignore = true
		return Outcome{Failed: true}
	}

	switch m.Trigger.ClickType() {
	case entity.ClickLong:
		st.Phase = PhaseLongPressPending
		st.pressAt = ts
		st.arm(ts + m.Timing.LongPressDelay)
		return Outcome{}
	case entity.ClickDouble:
		st.Phase = PhaseAwaitingKeys
		st.pressAt = ts
		st.pressed = true
		return Outcome{}
	default:
		if m.Shadow.Deferred() {
			st.Phase = PhaseAwaitingKeys
			st.pressAt = ts
			st.pressed = true
			return Outcome{}
		}
		return m.fire(st, ts, allow)
	}
}

func (m Matcher) keyUp(st *State, idx []int, ts int64, allow Allow) Outcome {
	for _, i := range idx {
		st.held[i] = false
	}

	var out Outcome
	switch {
	case st.active:
		st.active = false
		st.Phase = PhaseIdle
		out = Outcome{Released: true, ReleasedAt: ts}
	case st.Phase == PhaseLongPressPending:
		st.disarm()
		st.Phase = PhaseIdle
		out = Outcome{Failed: true}
	case st.pressed:
		st.pressed = false
		st.Phase = PhaseIdle
		out = m.tapReleased(st, ts-st.pressAt, ts, allow)
	}

	if !st.anyHeld() {
		st.ignore = false
		if st.Phase == PhaseAwaitingKeys || st.Phase == PhaseFailed {
			st.Phase = PhaseIdle
		}
	} else if out.Released || out.Failed {
		st.ignore = true
	}
	return out
}

// tapReleased decides a press that ended before anything fired: the first
// tap of a double press or a deferred short press.
func (m Matcher) tapReleased(st *State, held, ts int64, allow Allow) Outcome {
	if m.Trigger.ClickType() == entity.ClickDouble {
		if held >= m.Timing.LongPressDelay {
			return Outcome{Failed: true}
		}
		st.Phase = PhaseDoublePressPending
		st.arm(ts + m.Timing.DoublePressTimeout)
		return Outcome{}
	}

	if m.Shadow.Long && held >= m.Timing.LongPressDelay {
		return Outcome{Failed: true}
	}
	if m.Shadow.Double {
		st.Phase = PhaseDoublePressPending
		st.arm(ts + m.Timing.DoublePressTimeout)
		return Outcome{}
	}
	if !allow() {
		return Outcome{Failed: true}
	}
	return Outcome{Match: true, MatchAt: ts, Released: true, ReleasedAt: ts}
}

func (m Matcher) expire(st *State, allow Allow) Outcome {
	at := st.Deadline
	st.disarm()

	switch st.Phase {
	case PhaseLongPressPending:
		if !st.allHeld() {
			st.Phase = PhaseIdle
			return Outcome{Failed: true}
		}
		return m.fire(st, at, allow)
	case PhaseDoublePressPending:
		st.Phase = PhaseIdle
		if m.Trigger.ClickType() == entity.ClickDouble || !allow() {
			return Outcome{Failed: true}
		}
		// Deferred short press: the keys are already up.
		return Outcome{Match: true, MatchAt: at, Released: true, ReleasedAt: at}
	case PhaseAwaitingKeys:
		if m.Trigger.Mode == entity.TriggerSequence {
			st.cursor = 0
			st.Phase = m.restingPhase(st)
			return Outcome{Failed: true}
		}
	}
	return Outcome{}
}

// fire completes a press that is still down.
func (m Matcher) fire(st *State, at int64, allow Allow) Outcome {
	if !allow() {
		st.Phase = PhaseFailed
		st.ignore = true
		return Outcome{Failed: true}
	}
	st.Phase = PhaseMatched
	st.active = true
	return Outcome{Match: true, MatchAt: at}
}

func (m Matcher) feedSequence(st *State, ev entity.InputEvent, allow Allow) Outcome {
	keys := m.Trigger.Keys
	ts := ev.TimestampNanos

	if !ev.IsDown {
		if st.active && keys[len(keys)-1].Matches(ev) {
			st.active = false
			st.Phase = m.restingPhase(st)
			return Outcome{Released: true, ReleasedAt: ts}
		}
		return Outcome{}
	}

	switch {
	case keys[st.cursor].Matches(ev):
		st.cursor++
	case m.Trigger.References(ev):
		// Out of order: the keys matched so far may still hold a shorter attempt.
		st.cursor = m.fallback(st.cursor, ev)
	case m.Timing.SequenceInterrupt == entity.SequenceInterruptIgnore:
		return Outcome{}
	default:
		st.cursor = 0
		st.disarm()
		st.Phase = m.restingPhase(st)
		return Outcome{Failed: true}
	}

	if st.cursor == len(keys) {
		st.cursor = 0
		st.disarm()
		if !allow() {
			st.Phase = m.restingPhase(st)
			return Outcome{Failed: true}
		}
		st.active = true
		st.Phase = PhaseMatched
		return Outcome{Match: true, MatchAt: ts}
	}

	if st.cursor == 0 {
		st.disarm()
		st.Phase = m.restingPhase(st)
		return Outcome{Failed: true}
	}

	st.Phase = PhaseAwaitingKeys
	if m.Timing.SequenceTimeout > 0 {
		st.arm(ts + m.Timing.SequenceTimeout)
	} else {
		st.disarm()
	}
	return Outcome{}
}

// fallback returns the length of the longest sequence prefix that ends with
// ev and whose other keys are the last keys matched before it. With A A B,
// the presses A A A B still match.
func (m Matcher) fallback(cursor int, ev entity.InputEvent) int {
	keys := m.Trigger.Keys
	for k := min(cursor, len(keys)-1); k > 0; k-- {
		if !keys[k-1].Matches(ev) {
			continue
		}
		shift := cursor - k + 1
		ok := true
		for i := 0; i < k-1; i++ {
			if !keys[i].SameKey(keys[shift+i]) {
				ok = false
				break
			}
		}
		if ok {
			return k
		}
	}
	return 0
}

// restingPhase is the phase of a sequence between attempts.
func (m Matcher) restingPhase(st *State) Phase {
	switch {
	case st.cursor > 0:
		return PhaseAwaitingKeys
	case st.active:
		return PhaseMatched
	default:
		return PhaseIdle
	}
}
