package matcher_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine/matcher"
)

const ms = int64(time.Millisecond)

const (
	keyA = 30
	keyB = 48
	keyC = 46
	keyX = 45
)

func down(code int, at int64) entity.InputEvent {
	return entity.InputEvent{KeyCode: code, DeviceID: "kbd", IsDown: true, TimestampNanos: at * ms}
}

func up(code int, at int64) entity.InputEvent {
	return entity.InputEvent{KeyCode: code, DeviceID: "kbd", TimestampNanos: at * ms}
}

func allowAll() bool { return true }

func single(code int, click entity.ClickType) entity.Trigger {
	return entity.Trigger{Mode: entity.TriggerSingle, Keys: []entity.TriggerKey{{KeyCode: code, ClickType: click}}}
}

func parallel(click entity.ClickType, codes ...int) entity.Trigger {
	tr := entity.Trigger{Mode: entity.TriggerParallel}
	for _, c := range codes {
		tr.Keys = append(tr.Keys, entity.TriggerKey{KeyCode: c, ClickType: click})
	}
	return tr
}

func sequence(codes ...int) entity.Trigger {
	tr := entity.Trigger{Mode: entity.TriggerSequence}
	for _, c := range codes {
		tr.Keys = append(tr.Keys, entity.TriggerKey{KeyCode: c, ClickType: entity.ClickShort})
	}
	return tr
}

// harness feeds events and fires armed deadlines like the engine does.
type harness struct {
	m     matcher.Matcher
	st    *matcher.State
	allow matcher.Allow
}

func newHarness(tr entity.Trigger, shadow matcher.Shadow) *harness {
	return &harness{
		m:     matcher.New(tr, matcher.DefaultTiming(), shadow),
		st:    matcher.NewState(tr),
		allow: allowAll,
	}
}

func (h *harness) feed(ev entity.InputEvent) matcher.Outcome {
	return h.m.Feed(h.st, ev, h.allow)
}

// advance fires the armed deadline if it is due at or before t (in ms).
func (h *harness) advance(t int64) matcher.Outcome {
	if h.st.Armed && h.st.Deadline <= t*ms {
		return h.m.Expire(h.st, h.st.Gen, h.allow)
	}
	return matcher.Outcome{}
}

func TestShortSingle_MatchesOnDownAndReportsRelease(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickShort), matcher.Shadow{})

	out := h.feed(down(keyA, 10))
	assert.True(t, out.Match)
	assert.Equal(t, 10*ms, out.MatchAt)
	assert.Equal(t, matcher.PhaseMatched, h.st.Phase)
	assert.True(t, h.st.Active())

	out = h.feed(up(keyA, 50))
	assert.False(t, out.Match)
	assert.True(t, out.Released)
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)
}

func TestShortSingle_ConstraintsBlockMatch(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickShort), matcher.Shadow{})
	h.allow = func() bool { return false }

	out := h.feed(down(keyA, 0))
	assert.False(t, out.Match)
	assert.True(t, out.Failed)
	assert.Equal(t, matcher.PhaseFailed, h.st.Phase)

	out = h.feed(up(keyA, 10))
	assert.False(t, out.Released)
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)
}

func TestParallel_MatchesInsideCoincidenceWindowInAnyOrder(t *testing.T) {
	h := newHarness(parallel(entity.ClickShort, keyA, keyB), matcher.Shadow{})

	assert.False(t, h.feed(down(keyB, 0)).Match)
	assert.Equal(t, matcher.PhaseAwaitingKeys, h.st.Phase)

	out := h.feed(down(keyA, 80))
	assert.True(t, out.Match)
	assert.Equal(t, 80*ms, out.MatchAt)

	out = h.feed(up(keyB, 200))
	assert.True(t, out.Released)

	// The remaining key does not re-trigger when pressed again alone.
	assert.False(t, h.feed(down(keyB, 210)).Match)
	h.feed(up(keyA, 220))
	h.feed(up(keyB, 230))
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)
}

func TestParallel_OutsideWindowNeverMatches(t *testing.T) {
	h := newHarness(parallel(entity.ClickShort, keyA, keyB), matcher.Shadow{})

	h.feed(down(keyA, 0))
	out := h.feed(down(keyB, 150))
	assert.False(t, out.Match)
	assert.True(t, out.Failed)

	h.feed(up(keyB, 160))
	assert.False(t, h.feed(down(keyB, 170)).Match, "stale first key still outside the window")
}

func TestParallel_ReleaseBeforeAllDownNeverMatches(t *testing.T) {
	h := newHarness(parallel(entity.ClickShort, keyA, keyB), matcher.Shadow{})

	h.feed(down(keyA, 0))
	h.feed(up(keyA, 20))
	out := h.feed(down(keyB, 40))

	assert.False(t, out.Match)
	assert.Equal(t, matcher.PhaseAwaitingKeys, h.st.Phase)
}

func TestLong_MatchesAtDeadline(t *testing.T) {
	h := newHarness(single(keyX, entity.ClickLong), matcher.Shadow{})

	out := h.feed(down(keyX, 0))
	assert.False(t, out.Match)
	require.True(t, h.st.Armed)
	assert.Equal(t, 500*ms, h.st.Deadline)
	assert.Equal(t, matcher.PhaseLongPressPending, h.st.Phase)

	out = h.advance(500)
	assert.True(t, out.Match)
	assert.Equal(t, 500*ms, out.MatchAt)

	out = h.feed(up(keyX, 600))
	assert.True(t, out.Released)
}

func TestLong_EarlyReleaseFails(t *testing.T) {
	h := newHarness(single(keyX, entity.ClickLong), matcher.Shadow{})

	h.feed(down(keyX, 0))
	gen := h.st.Gen
	out := h.feed(up(keyX, 400))

	assert.False(t, out.Match)
	assert.True(t, out.Failed)
	assert.False(t, h.st.Armed)
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)
	assert.False(t, h.m.Expire(h.st, gen, allowAll).Match, "stale timer is ignored")
}

func TestLong_ReleaseRacingDeadlineMatchesAtDeadline(t *testing.T) {
	h := newHarness(single(keyX, entity.ClickLong), matcher.Shadow{})

	h.feed(down(keyX, 0))
	out := h.feed(up(keyX, 600))

	assert.True(t, out.Match)
	assert.Equal(t, 500*ms, out.MatchAt)
	assert.True(t, out.Released)
	assert.Equal(t, 600*ms, out.ReleasedAt)
}

func TestLong_TriggerOverrideDelay(t *testing.T) {
	tr := single(keyX, entity.ClickLong)
	tr.LongPressDelayMs = 800
	h := newHarness(tr, matcher.Shadow{})

	h.feed(down(keyX, 0))
	assert.Equal(t, 800*ms, h.st.Deadline)
}

func TestDouble_TwoQuickTapsMatch(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickDouble), matcher.Shadow{})

	h.feed(down(keyA, 0))
	h.feed(up(keyA, 50))
	require.Equal(t, matcher.PhaseDoublePressPending, h.st.Phase)
	assert.Equal(t, 350*ms, h.st.Deadline)

	out := h.feed(down(keyA, 200))
	assert.True(t, out.Match)
	assert.Equal(t, 200*ms, out.MatchAt)

	out = h.feed(up(keyA, 250))
	assert.True(t, out.Released)
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)
}

func TestDouble_MatchesOnSecondDownHowEverLongItIsHeld(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickDouble), matcher.Shadow{})

	h.feed(down(keyA, 0))
	h.feed(up(keyA, 50))
	out := h.feed(down(keyA, 200))
	require.True(t, out.Match)
	assert.Equal(t, 200*ms, out.MatchAt)
	assert.False(t, h.st.Armed)

	assert.False(t, h.advance(2000).Failed)
	out = h.feed(up(keyA, 2000))
	assert.True(t, out.Released)
	assert.Equal(t, 2000*ms, out.ReleasedAt)
}

func TestDouble_SlowSecondTapFails(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickDouble), matcher.Shadow{})

	h.feed(down(keyA, 0))
	h.feed(up(keyA, 50))
	out := h.advance(350)
	assert.True(t, out.Failed)
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)

	assert.False(t, h.feed(down(keyA, 400)).Match, "starts a new first tap")
	assert.Equal(t, matcher.PhaseAwaitingKeys, h.st.Phase)
}

func TestDouble_SecondTapAfterDeadlineBeforeTimerStartsOver(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickDouble), matcher.Shadow{})

	h.feed(down(keyA, 0))
	h.feed(up(keyA, 50))
	out := h.feed(down(keyA, 360))

	assert.False(t, out.Match)
	assert.Equal(t, matcher.PhaseAwaitingKeys, h.st.Phase)
}

func TestDouble_LongFirstTapIsNotATap(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickDouble), matcher.Shadow{})

	h.feed(down(keyA, 0))
	out := h.feed(up(keyA, 700))

	assert.True(t, out.Failed)
	assert.False(t, h.st.Armed)
}

func TestShadowedShort_FiresOnReleaseWhenLongCompetes(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickShort), matcher.Shadow{Long: true})

	assert.False(t, h.feed(down(keyA, 0)).Match)
	out := h.feed(up(keyA, 100))

	assert.True(t, out.Match)
	assert.True(t, out.Released)
	assert.Equal(t, 100*ms, out.MatchAt)
}

func TestShadowedShort_HeldPastLongDelayDoesNotFire(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickShort), matcher.Shadow{Long: true})

	h.feed(down(keyA, 0))
	out := h.feed(up(keyA, 600))

	assert.False(t, out.Match)
	assert.True(t, out.Failed)
}

func TestShadowedShort_WaitsForDoubleWindow(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickShort), matcher.Shadow{Double: true})

	h.feed(down(keyA, 0))
	out := h.feed(up(keyA, 50))
	assert.False(t, out.Match)
	require.True(t, h.st.Armed)

	out = h.advance(350)
	assert.True(t, out.Match)
	assert.Equal(t, 350*ms, out.MatchAt)
	assert.True(t, out.Released)
}

func TestShadowedShort_SecondTapYieldsToDouble(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickShort), matcher.Shadow{Double: true})

	h.feed(down(keyA, 0))
	h.feed(up(keyA, 50))
	out := h.feed(down(keyA, 150))
	assert.True(t, out.Failed)
	assert.False(t, h.st.Armed)

	out = h.feed(up(keyA, 200))
	assert.False(t, out.Match)
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)
}

func TestSequence_MatchesInOrder(t *testing.T) {
	h := newHarness(sequence(keyA, keyB, keyC), matcher.Shadow{})

	h.feed(down(keyA, 0))
	h.feed(up(keyA, 10))
	assert.Equal(t, 1, h.st.Cursor())
	h.feed(down(keyB, 100))
	h.feed(up(keyB, 110))
	out := h.feed(down(keyC, 200))

	assert.True(t, out.Match)
	assert.Equal(t, 200*ms, out.MatchAt)
	assert.Equal(t, 0, h.st.Cursor())
	assert.False(t, h.st.Armed)

	out = h.feed(up(keyC, 250))
	assert.True(t, out.Released)
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)
}

func TestSequence_OutOfOrderResets(t *testing.T) {
	h := newHarness(sequence(keyA, keyB, keyC), matcher.Shadow{})

	h.feed(down(keyA, 0))
	h.feed(down(keyC, 10))
	assert.Equal(t, 0, h.st.Cursor())

	h.feed(down(keyA, 20))
	h.feed(down(keyA, 30))
	assert.Equal(t, 1, h.st.Cursor(), "first key restarts the sequence")
}

func TestSequence_OverlappingAttemptsSurvive(t *testing.T) {
	t.Run("repeated first key", func(t *testing.T) {
		h := newHarness(sequence(keyA, keyA, keyB), matcher.Shadow{})
		h.feed(down(keyA, 0))
		h.feed(down(keyA, 10))
		h.feed(down(keyA, 20))
		assert.Equal(t, 2, h.st.Cursor())
		assert.True(t, h.feed(down(keyB, 30)).Match)
	})

	t.Run("repeated pair", func(t *testing.T) {
		h := newHarness(sequence(keyA, keyB, keyA, keyC), matcher.Shadow{})
		for i, code := range []int{keyA, keyB, keyA, keyB, keyA} {
			assert.False(t, h.feed(down(code, int64(i*10))).Match)
		}
		assert.Equal(t, 3, h.st.Cursor())
		assert.True(t, h.feed(down(keyC, 50)).Match)
	})

	t.Run("no shorter attempt", func(t *testing.T) {
		h := newHarness(sequence(keyA, keyB, keyC), matcher.Shadow{})
		h.feed(down(keyA, 0))
		h.feed(down(keyB, 10))
		out := h.feed(down(keyB, 20))
		assert.True(t, out.Failed)
		assert.Equal(t, 0, h.st.Cursor())
	})
}

func TestSequence_InterruptPolicy(t *testing.T) {
	t.Run("reset", func(t *testing.T) {
		h := newHarness(sequence(keyA, keyB), matcher.Shadow{})
		h.feed(down(keyA, 0))
		require.True(t, h.m.Interested(h.st, down(keyX, 10)))
		h.feed(down(keyX, 10))
		assert.False(t, h.feed(down(keyB, 20)).Match)
	})

	t.Run("ignore", func(t *testing.T) {
		tr := sequence(keyA, keyB)
		tr.SequenceInterrupt = entity.SequenceInterruptIgnore
		h := newHarness(tr, matcher.Shadow{})
		h.feed(down(keyA, 0))
		h.feed(down(keyX, 10))
		assert.True(t, h.feed(down(keyB, 20)).Match)
	})
}

func TestSequence_TimeoutResets(t *testing.T) {
	h := newHarness(sequence(keyA, keyB), matcher.Shadow{})

	h.feed(down(keyA, 0))
	assert.Equal(t, 1000*ms, h.st.Deadline)
	h.advance(1000)
	assert.Equal(t, 0, h.st.Cursor())
	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)

	h.feed(down(keyA, 2000))
	out := h.feed(down(keyB, 3500))
	assert.False(t, out.Match, "gap longer than the timeout")
}

func TestMatcher_ResetInvalidatesTimers(t *testing.T) {
	h := newHarness(single(keyX, entity.ClickLong), matcher.Shadow{})

	h.feed(down(keyX, 0))
	gen := h.st.Gen
	h.m.Reset(h.st)

	assert.Equal(t, matcher.PhaseIdle, h.st.Phase)
	assert.False(t, h.m.Expire(h.st, gen, allowAll).Match)
}

func TestMatcher_InterestedOnlyInReferencedKeys(t *testing.T) {
	h := newHarness(single(keyA, entity.ClickShort), matcher.Shadow{})

	assert.True(t, h.m.Interested(h.st, down(keyA, 0)))
	assert.False(t, h.m.Interested(h.st, down(keyB, 0)))

	anyDevice := entity.InputEvent{KeyCode: keyA, DeviceID: "pad", IsDown: true}
	assert.True(t, h.m.Interested(h.st, anyDevice))
}
