package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine/scheduler"
)

const ms = int64(time.Millisecond)

type call struct {
	actionID  string
	eventType entity.KeyEventType
	times     int
	at        int64
}

// recorder dispatches into a slice and drives the chain timer.
type recorder struct {
	calls []call
	now   int64
}

func (r *recorder) dispatch(c *scheduler.Chain, a entity.Action, ev entity.KeyEventType, times int) {
	r.calls = append(r.calls, call{actionID: a.ID, eventType: ev, times: times, at: r.now / ms})
}

// runUntil fires the chain timer while it is due at or before t (ms).
func (r *recorder) runUntil(c *scheduler.Chain, t int64) {
	for c.Armed && c.Deadline <= t*ms {
		r.now = c.Deadline
		scheduler.Tick(c, c.Gen, r.dispatch)
	}
	r.now = t * ms
}

func keyMap(actions ...entity.Action) entity.KeyMap {
	return entity.KeyMap{ID: "km", Actions: actions}
}

func keyAction(id string) entity.Action {
	return entity.Action{ID: id, Payload: entity.ActionPayload{Kind: entity.ActionKindKey, KeyCode: 115}, Multiplier: 1}
}

func TestStart_MultiplierFiresAtOnce(t *testing.T) {
	a := keyAction("vol")
	a.Multiplier = 3
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)

	require.Len(t, r.calls, 1)
	assert.Equal(t, call{actionID: "vol", eventType: entity.KeyEventDownUp, times: 3}, r.calls[0])
	assert.True(t, c.Done())
	assert.False(t, c.Armed)
}

func TestRepeat_UntilLimit(t *testing.T) {
	a := keyAction("vol")
	a.Repeat = &entity.RepeatPolicy{RateMs: 50, Stop: entity.StopLimitReached, Limit: 5}
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	r.runUntil(c, 10_000)

	require.Len(t, r.calls, 5)
	assert.Equal(t, []int64{0, 50, 100, 150, 200}, callTimes(r.calls))
	assert.True(t, c.Done())
}

func TestRepeat_UntilReleased(t *testing.T) {
	a := keyAction("vol")
	a.Repeat = &entity.RepeatPolicy{RateMs: 100, DelayMs: 300, Stop: entity.StopTriggerReleased}
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	r.runUntil(c, 550)
	scheduler.Release(c, 550*ms, r.dispatch)
	r.runUntil(c, 2000)

	assert.Equal(t, []int64{0, 300, 400, 500}, callTimes(r.calls))
	assert.True(t, c.Done())
}

func TestRepeat_ReleasedBeforeStartDoesNotRepeat(t *testing.T) {
	a := keyAction("vol")
	a.Repeat = &entity.RepeatPolicy{RateMs: 100, Stop: entity.StopTriggerReleased}
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, false, r.dispatch)

	assert.Len(t, r.calls, 1)
	assert.True(t, c.Done())
}

func TestRepeat_PressedAgainToggles(t *testing.T) {
	a := keyAction("vol")
	a.Repeat = &entity.RepeatPolicy{RateMs: 100, Stop: entity.StopTriggerPressedAgain}
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	scheduler.Release(c, 50*ms, r.dispatch)
	r.runUntil(c, 250)
	require.Len(t, r.calls, 3, "release does not stop a toggle")

	consumed := scheduler.PressAgain(c, 250*ms, true, r.dispatch)
	r.runUntil(c, 1000)

	assert.True(t, consumed)
	assert.Len(t, r.calls, 3)
	assert.True(t, c.Done())
}

func TestHoldDown_ImplicitDuration(t *testing.T) {
	a := keyAction("shift")
	a.HoldDown = &entity.HoldDownPolicy{DurationMs: 200, Stop: entity.StopNone}
	a.Multiplier = 4
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	assert.Equal(t, scheduler.PhaseHeldDown, c.Phase)
	r.runUntil(c, 1000)

	assert.Equal(t, []call{
		{actionID: "shift", eventType: entity.KeyEventDown, times: 1, at: 0},
		{actionID: "shift", eventType: entity.KeyEventUp, times: 1, at: 200},
	}, r.calls)
	assert.True(t, c.Done())
}

func TestHoldDown_ReleasedNeverBeforeDuration(t *testing.T) {
	a := keyAction("shift")
	a.HoldDown = &entity.HoldDownPolicy{DurationMs: 200, Stop: entity.StopTriggerReleased}

	t.Run("early release waits for duration", func(t *testing.T) {
		c := scheduler.New(keyMap(a), 0)
		r := &recorder{}
		scheduler.Start(c, 0, true, r.dispatch)
		r.now = 50 * ms
		scheduler.Release(c, 50*ms, r.dispatch)
		require.Len(t, r.calls, 1)
		r.runUntil(c, 1000)
		require.Len(t, r.calls, 2)
		assert.Equal(t, int64(200), r.calls[1].at)
	})

	t.Run("late release ends hold immediately", func(t *testing.T) {
		c := scheduler.New(keyMap(a), 0)
		r := &recorder{}
		scheduler.Start(c, 0, true, r.dispatch)
		r.runUntil(c, 700)
		require.Len(t, r.calls, 1, "still held after duration")
		scheduler.Release(c, 700*ms, r.dispatch)
		require.Len(t, r.calls, 2)
		assert.Equal(t, entity.KeyEventUp, r.calls[1].eventType)
		assert.Equal(t, int64(700), r.calls[1].at)
		assert.True(t, c.Done())
	})
}

func TestHoldDown_PressedAgain(t *testing.T) {
	a := keyAction("shift")
	a.HoldDown = &entity.HoldDownPolicy{Stop: entity.StopTriggerPressedAgain}
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	scheduler.Release(c, 10*ms, r.dispatch)
	r.runUntil(c, 500)
	require.Len(t, r.calls, 1)

	r.now = 500 * ms
	assert.True(t, scheduler.PressAgain(c, 500*ms, true, r.dispatch))
	require.Len(t, r.calls, 2)
	assert.Equal(t, entity.KeyEventUp, r.calls[1].eventType)
}

func TestHoldDown_WinsOverRepeat(t *testing.T) {
	a := keyAction("both")
	a.HoldDown = &entity.HoldDownPolicy{DurationMs: 100, Stop: entity.StopNone}
	a.Repeat = &entity.RepeatPolicy{RateMs: 10, Stop: entity.StopLimitReached, Limit: 10}
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	r.runUntil(c, 1000)

	require.Len(t, r.calls, 2)
	assert.Equal(t, entity.KeyEventDown, r.calls[0].eventType)
	assert.Equal(t, entity.KeyEventUp, r.calls[1].eventType)
}

func TestChain_DelayBeforeNextRunsSequentially(t *testing.T) {
	first := keyAction("first")
	first.DelayBeforeNextMs = 250
	second := keyAction("second")
	second.Multiplier = 2
	c := scheduler.New(keyMap(first, second), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	require.Len(t, r.calls, 1)
	assert.Equal(t, scheduler.PhaseDelaying, c.Phase)

	r.runUntil(c, 1000)

	require.Len(t, r.calls, 2)
	assert.Equal(t, call{actionID: "second", eventType: entity.KeyEventDownUp, times: 2, at: 250}, r.calls[1])
	assert.True(t, c.Done())
}

func TestChain_NextActionWaitsForRepeatToStop(t *testing.T) {
	first := keyAction("first")
	first.Repeat = &entity.RepeatPolicy{RateMs: 100, Stop: entity.StopLimitReached, Limit: 3}
	second := keyAction("second")
	c := scheduler.New(keyMap(first, second), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	r.runUntil(c, 1000)

	ids := make([]string, 0, len(r.calls))
	for _, cl := range r.calls {
		ids = append(ids, cl.actionID)
	}
	assert.Equal(t, []string{"first", "first", "first", "second"}, ids)
	assert.Equal(t, int64(200), r.calls[3].at)
}

func TestPreempt_ReleasesHeldDownAndDropsToken(t *testing.T) {
	a := keyAction("shift")
	a.HoldDown = &entity.HoldDownPolicy{Stop: entity.StopTriggerReleased}
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	old := c.Token
	scheduler.Preempt(c, r.dispatch)

	require.Len(t, r.calls, 2)
	assert.Equal(t, entity.KeyEventUp, r.calls[1].eventType)
	assert.True(t, old.Cancelled())
	assert.False(t, c.Token.Cancelled(), "the release must still be executed")
	assert.True(t, c.Done())
}

func TestCancel_NoFurtherDispatch(t *testing.T) {
	a := keyAction("vol")
	a.Repeat = &entity.RepeatPolicy{RateMs: 50, Stop: entity.StopTriggerReleased}
	c := scheduler.New(keyMap(a), 0)
	r := &recorder{}

	scheduler.Start(c, 0, true, r.dispatch)
	r.runUntil(c, 120)
	gen := c.Gen
	scheduler.Cancel(c)
	scheduler.Tick(c, gen, r.dispatch)
	r.runUntil(c, 1000)

	assert.Len(t, r.calls, 3)
	assert.True(t, c.Token.Cancelled())
	assert.True(t, c.Done())
}

func callTimes(calls []call) []int64 {
	out := make([]int64, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.at)
	}
	return out
}
