// Package scheduler runs the action list of a matched key map. A Chain holds
// all progress; the functions here only move it forward and ask the caller to
// dispatch executions and to arm the chain's single timer.
package scheduler

import (
	"sync/atomic"
	"time"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// Phase is the lifecycle of the running action.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseHeldDown  Phase = "held_down"
	PhaseRepeating Phase = "repeating"
	PhaseDelaying  Phase = "delaying"
	PhaseDone      Phase = "done"
)

// Token is the cancellation flag shared between a chain and the dispatch
// lane executing its jobs.
type Token struct {
	cancelled atomic.Bool
}

// NewToken returns a live token.
func NewToken() *Token {
	return &Token{}
}

// Cancel marks the token cancelled.
func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel was called.
func (t *Token) Cancelled() bool {
	return t.cancelled.Load()
}

// Chain is the progress of one key map's action list after a match.
type Chain struct {
	KeyMapID  string
	Actions   []entity.Action
	MetaState int

	Index int
	Phase Phase
	// Held is true while the press that started the chain is still down.
	Held bool
	// Count is the number of dispatches of the current repeating action.
	Count     int
	StartedAt int64
	// stopRequested records a stop that arrived before the hold-down
	// minimum duration elapsed.
	stopRequested bool

	Deadline int64
	Armed    bool
	Gen      uint64

	Token    *Token
	Failures int
}

// Dispatch submits one execution of action. times > 1 repeats it in
// immediate succession. The dispatch uses c.Token at call time.
type Dispatch func(c *Chain, action entity.Action, eventType entity.KeyEventType, times int)

// New returns a pending chain for the key map.
func New(km entity.KeyMap, metaState int) *Chain {
	return &Chain{
		KeyMapID:  km.ID,
		Actions:   km.Actions,
		MetaState: metaState,
		Phase:     PhasePending,
		Token:     NewToken(),
	}
}

// Current returns the running action.
func (c *Chain) Current() (entity.Action, bool) {
	if c.Phase == PhaseDone || c.Index >= len(c.Actions) {
		return entity.Action{}, false
	}
	return c.Actions[c.Index], true
}

// Done reports whether the chain has finished or was cancelled.
func (c *Chain) Done() bool {
	return c.Phase == PhaseDone
}

func (c *Chain) arm(deadline int64) {
	c.Gen++
	c.Deadline = deadline
	c.Armed = true
}

func (c *Chain) disarm() {
	if c.Armed {
		c.Gen++
		c.Armed = false
	}
}

// Start runs the first action at now. held tells whether the press that
// matched is still down.
func Start(c *Chain, now int64, held bool, dispatch Dispatch) {
	c.Held = held
	c.Index = 0
	begin(c, now, dispatch)
}

// Tick handles the chain's timer. Stale generations are ignored.
func Tick(c *Chain, gen uint64, dispatch Dispatch) {
	if !c.Armed || c.Gen != gen || c.Phase == PhaseDone {
		return
	}
	now := c.Deadline
	c.Armed = false
	c.Gen++

	a := c.Actions[c.Index]
	switch c.Phase {
	case PhaseRepeating:
		if c.Token.Cancelled() {
			stop(c)
			return
		}
		dispatch(c, a, entity.KeyEventDownUp, 1)
		c.Count++
		if a.Repeat.Stop == entity.StopLimitReached && c.Count >= a.Repeat.Limit {
			finish(c, now, dispatch)
			return
		}
		c.arm(now + msToNanos(a.Repeat.RateMs))
	case PhaseHeldDown:
		if holdCanEnd(c, a) {
			dispatch(c, a, entity.KeyEventUp, 1)
			finish(c, now, dispatch)
		}
		// Otherwise the minimum duration is over and the release or the
		// next press will end the hold.
	case PhaseDelaying:
		advance(c, now, dispatch)
	}
}

// Release handles the end of the press that started the chain.
func Release(c *Chain, now int64, dispatch Dispatch) {
	c.Held = false
	if c.Phase == PhaseDone {
		return
	}
	a := c.Actions[c.Index]

	switch c.Phase {
	case PhaseRepeating:
		if a.Repeat.Stop == entity.StopTriggerReleased {
			c.disarm()
			finish(c, now, dispatch)
		}
	case PhaseHeldDown:
		if a.HoldDown.Stop != entity.StopTriggerReleased {
			return
		}
		c.stopRequested = true
		if now >= c.StartedAt+msToNanos(a.HoldDown.DurationMs) {
			c.disarm()
			dispatch(c, a, entity.KeyEventUp, 1)
			finish(c, now, dispatch)
		}
	}
}

// PressAgain offers a new match of the same key map to the running chain.
// It returns true when the chain consumed the match as its stop signal; the
// caller must then not start a new chain.
func PressAgain(c *Chain, now int64, held bool, dispatch Dispatch) bool {
	if c.Phase == PhaseDone {
		return false
	}
	a := c.Actions[c.Index]

	switch c.Phase {
	case PhaseRepeating:
		if a.Repeat.Stop != entity.StopTriggerPressedAgain {
			return false
		}
		c.Held = held
		c.disarm()
		finish(c, now, dispatch)
		return true
	case PhaseHeldDown:
		if a.HoldDown.Stop != entity.StopTriggerPressedAgain {
			return false
		}
		c.Held = held
		c.stopRequested = true
		if now >= c.StartedAt+msToNanos(a.HoldDown.DurationMs) {
			c.disarm()
			dispatch(c, a, entity.KeyEventUp, 1)
			finish(c, now, dispatch)
		}
		return true
	default:
		return false
	}
}

// Preempt stops the chain because another match takes over. A held-down
// action is released first; every queued execution is dropped.
func Preempt(c *Chain, dispatch Dispatch) {
	if c.Phase == PhaseDone {
		return
	}
	held := c.Phase == PhaseHeldDown
	c.Token.Cancel()
	c.Token = NewToken()
	if held {
		dispatch(c, c.Actions[c.Index], entity.KeyEventUp, 1)
	}
	stop(c)
}

// Cancel stops the chain without any further dispatch.
func Cancel(c *Chain) {
	if c.Phase == PhaseDone {
		return
	}
	c.Token.Cancel()
	stop(c)
}

func stop(c *Chain) {
	c.disarm()
	c.Phase = PhaseDone
}

// begin dispatches the action at c.Index.
func begin(c *Chain, now int64, dispatch Dispatch) {
	if c.Token.Cancelled() {
		stop(c)
		return
	}

	a := c.Actions[c.Index]
	c.StartedAt = now
	c.Count = 0
	c.stopRequested = false

	switch {
	case a.HoldDown != nil:
		dispatch(c, a, entity.KeyEventDown, 1)
		c.Phase = PhaseHeldDown
		if !c.Held && a.HoldDown.Stop == entity.StopTriggerReleased {
			// Already released: hold for the minimum duration only.
			c.stopRequested = true
		}
		c.arm(now + msToNanos(a.HoldDown.DurationMs))
	case a.Repeat != nil:
		dispatch(c, a, entity.KeyEventDownUp, a.Times())
		c.Count = 1
		if !repeatContinues(c, a) {
			finish(c, now, dispatch)
			return
		}
		c.Phase = PhaseRepeating
		c.arm(now + firstRepeatDelay(*a.Repeat))
	default:
		dispatch(c, a, entity.KeyEventDownUp, a.Times())
		finish(c, now, dispatch)
	}
}

func repeatContinues(c *Chain, a entity.Action) bool {
	switch a.Repeat.Stop {
	case entity.StopLimitReached:
		return c.Count < a.Repeat.Limit
	case entity.StopTriggerReleased:
		return c.Held
	default:
		return true
	}
}

// holdCanEnd is checked once the minimum hold duration has elapsed.
func holdCanEnd(c *Chain, a entity.Action) bool {
	switch a.HoldDown.Stop {
	case entity.StopTriggerReleased, entity.StopTriggerPressedAgain:
		return c.stopRequested
	default:
		return true
	}
}

// finish completes the current action and moves to the next one, waiting
// DelayBeforeNextMs first when set.
func finish(c *Chain, now int64, dispatch Dispatch) {
	a := c.Actions[c.Index]
	if a.DelayBeforeNextMs > 0 && c.Index+1 < len(c.Actions) {
		c.Phase = PhaseDelaying
		c.arm(now + msToNanos(a.DelayBeforeNextMs))
		return
	}
	advance(c, now, dispatch)
}

func advance(c *Chain, now int64, dispatch Dispatch) {
	c.Index++
	if c.Index >= len(c.Actions) {
		stop(c)
		return
	}
	begin(c, now, dispatch)
}

// firstRepeatDelay is DelayMs, or one period when no delay is configured.
func firstRepeatDelay(r entity.RepeatPolicy) int64 {
	if r.DelayMs > 0 {
		return msToNanos(r.DelayMs)
	}
	return msToNanos(r.RateMs)
}

func msToNanos(ms int) int64 {
	return int64(ms) * int64(time.Millisecond)
}
