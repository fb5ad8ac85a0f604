// Package engine turns input events into action executions. It owns the
// normalizer, one trigger matcher and one action chain per key map, and
// serialises every change to them through a single message queue.
package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine/constraint"
	"github.com/bnema/keymapper/internal/engine/matcher"
	"github.com/bnema/keymapper/internal/engine/normalizer"
	"github.com/bnema/keymapper/internal/engine/scheduler"
	"github.com/bnema/keymapper/internal/logging"
)

var _ port.KeyMapEngine = (*Engine)(nil)

// Engine is the dispatch coordinator.
//
// Public methods block until their message has been processed. Timer
// callbacks and execution results are posted without waiting. An executor,
// observer or error handler must not call back into the Engine synchronously
// when a SyncDispatcher is used: the call would wait on the message that is
// running it.
type Engine struct {
	ctx      context.Context
	executor port.ActionExecutor
	world    port.WorldStateProvider
	ts       port.TimeSource

	dispatcher    Dispatcher
	laneQueueSize int
	observer      port.DispatchObserver
	onError       func(*entity.ExecutionError)
	timing        matcher.Timing
	maxFailures   int
	preempt       PreemptPolicy

	queue  queue
	closed atomic.Bool

	// Owned by whoever drains the queue.
	normalizer *normalizer.Normalizer
	order      []string
	keyMaps    map[string]*keyMapState
}

type keyMapState struct {
	km      entity.KeyMap
	enabled bool

	matcher matcher.Matcher
	state   *matcher.State
	// metaState of the last key down fed to the matcher.
	metaState int

	matchTimer port.TimerHandle
	matchGen   uint64
	timedState *matcher.State

	chain      *scheduler.Chain
	chainTimer port.TimerHandle
	chainGen   uint64
	timedChain *scheduler.Chain
}

// New creates an engine with no key maps.
func New(ctx context.Context, executor port.ActionExecutor, world port.WorldStateProvider, ts port.TimeSource, opts ...Option) *Engine {
	e := &Engine{
		ctx:           logging.WithComponent(ctx, "engine"),
		executor:      executor,
		world:         world,
		ts:            ts,
		laneQueueSize: defaultLaneQueueSize,
		timing:        matcher.DefaultTiming(),
		normalizer:    normalizer.New(),
		keyMaps:       make(map[string]*keyMapState),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dispatcher == nil {
		e.dispatcher = NewAsyncDispatcher(e.ctx, e.laneQueueSize)
	}
	return e
}

// OnInputEvent feeds one raw device event.
func (e *Engine) OnInputEvent(raw entity.RawEvent) error {
	return e.call(func() error {
		for _, ev := range e.normalizer.Normalize(raw) {
			e.handleEvent(ev)
		}
		return nil
	})
}

// DeviceRemoved releases every key still down on a device that went away.
func (e *Engine) DeviceRemoved(deviceID string) error {
	return e.call(func() error {
		for _, ev := range e.normalizer.ReleaseDevice(deviceID, e.ts.NowNanos()) {
			e.handleEvent(ev)
		}
		return nil
	})
}

// SetKeyMaps replaces the configuration. Key maps that did not change keep
// their progress; removed or changed ones are cancelled without dispatching.
// Invalid key maps are skipped and reported as joined *entity.ConfigurationError
// values while the valid ones become active.
func (e *Engine) SetKeyMaps(keyMaps []entity.KeyMap) error {
	return e.call(func() error {
		var errs []error
		next := make(map[string]*keyMapState, len(keyMaps))
		order := make([]string, 0, len(keyMaps))

		for _, km := range keyMaps {
			if err := km.Validate(); err != nil {
				errs = append(errs, err)
				continue
			}
			if _, dup := next[km.ID]; dup {
				errs = append(errs, &entity.ConfigurationError{
					KeyMapID: km.ID,
					Problems: []string{"id duplicates an earlier key map"},
				})
				continue
			}
			if old, ok := e.keyMaps[km.ID]; ok && reflect.DeepEqual(old.km, km) {
				next[km.ID] = old
			} else {
				next[km.ID] = e.newKeyMapState(km)
			}
			order = append(order, km.ID)
		}

		for id, old := range e.keyMaps {
			if next[id] != old {
				e.retire(old)
			}
			if _, kept := next[id]; !kept {
				e.dispatcher.Retire(id)
			}
		}
		e.keyMaps = next
		e.order = order
		e.refreshShadows()

		logging.FromContext(e.ctx).Info().
			Int("active", len(order)).
			Int("rejected", len(errs)).
			Msg("key maps loaded")
		return errors.Join(errs...)
	})
}

// EnableKeyMap starts matching a key map from an idle state.
func (e *Engine) EnableKeyMap(id string) error {
	return e.call(func() error {
		ks, ok := e.keyMaps[id]
		if !ok {
			return fmt.Errorf("enable %s: %w", id, entity.ErrKeyMapNotFound)
		}
		if ks.enabled {
			return nil
		}
		ks.enabled = true
		ks.matcher.Reset(ks.state)
		e.syncMatchTimer(ks)
		e.refreshShadows()
		logging.FromContext(e.ctx).Info().Str("keymap_id", id).Msg("key map enabled")
		return nil
	})
}

// DisableKeyMap stops matching a key map and cancels its running actions.
// Nothing is dispatched on cancellation.
func (e *Engine) DisableKeyMap(id string) error {
	return e.call(func() error {
		ks, ok := e.keyMaps[id]
		if !ok {
			return fmt.Errorf("disable %s: %w", id, entity.ErrKeyMapNotFound)
		}
		if !ks.enabled {
			return nil
		}
		e.retire(ks)
		ks.enabled = false
		e.refreshShadows()
		logging.FromContext(e.ctx).Info().Str("keymap_id", id).Msg("key map disabled")
		return nil
	})
}

// TriggerKeyMap runs a key map's actions as if its trigger had been tapped
// now. Constraints still apply; when they do not hold nothing happens.
func (e *Engine) TriggerKeyMap(id string) error {
	return e.call(func() error {
		ks, ok := e.keyMaps[id]
		if !ok {
			return fmt.Errorf("trigger %s: %w", id, entity.ErrKeyMapNotFound)
		}
		if !ks.enabled {
			return fmt.Errorf("trigger %s: %w", id, entity.ErrKeyMapDisabled)
		}
		if !newGate(e.world).allow(ks.km)() {
			logging.FromContext(e.ctx).Debug().Str("keymap_id", id).Msg("virtual trigger blocked by constraints")
			return nil
		}
		ks.metaState = 0
		e.onMatch(ks, e.ts.NowNanos(), false)
		return nil
	})
}

// Close cancels every running chain and waits for queued executions.
func (e *Engine) Close() error {
	err := e.call(func() error {
		for _, id := range e.order {
			e.retire(e.keyMaps[id])
		}
		e.closed.Store(true)
		return nil
	})
	if err != nil {
		return err
	}
	e.dispatcher.Close()
	return nil
}

func (e *Engine) call(fn func() error) error {
	if e.closed.Load() {
		return entity.ErrEngineClosed
	}
	done := make(chan error, 1)
	e.queue.post(func() {
		if e.closed.Load() {
			done <- entity.ErrEngineClosed
			return
		}
		done <- fn()
	})
	return <-done
}

func (e *Engine) post(fn func()) {
	e.queue.post(func() {
		if e.closed.Load() {
			return
		}
		fn()
	})
}

func (e *Engine) newKeyMapState(km entity.KeyMap) *keyMapState {
	return &keyMapState{
		km:      km,
		enabled: km.Enabled,
		matcher: matcher.New(km.Trigger, e.timing, matcher.Shadow{}),
		state:   matcher.NewState(km.Trigger),
	}
}

// retire drops all progress of a key map without dispatching.
func (e *Engine) retire(ks *keyMapState) {
	ks.matcher.Reset(ks.state)
	e.syncMatchTimer(ks)
	if ks.chain != nil {
		scheduler.Cancel(ks.chain)
		e.syncChainTimer(ks)
	}
}

// refreshShadows rebuilds the matchers of short presses that compete with a
// long or double press on the same keys.
func (e *Engine) refreshShadows() {
	for _, id := range e.order {
		ks := e.keyMaps[id]
		shadow := e.shadowOf(ks)
		if shadow == ks.matcher.Shadow {
			continue
		}
		ks.matcher = matcher.New(ks.km.Trigger, e.timing, shadow)
		ks.matcher.Reset(ks.state)
		e.syncMatchTimer(ks)
	}
}

func (e *Engine) shadowOf(ks *keyMapState) matcher.Shadow {
	var shadow matcher.Shadow
	tr := ks.km.Trigger
	if !ks.enabled || tr.Mode == entity.TriggerSequence || tr.ClickType() != entity.ClickShort {
		return shadow
	}
	for _, id := range e.order {
		other := e.keyMaps[id]
		if other == ks || !other.enabled || other.km.Trigger.Mode == entity.TriggerSequence {
			continue
		}
		if !tr.OverlapsKeySet(other.km.Trigger) {
			continue
		}
		switch other.km.Trigger.ClickType() {
		case entity.ClickLong:
			shadow.Long = true
		case entity.ClickDouble:
			shadow.Double = true
		}
	}
	return shadow
}

type hit struct {
	ks  *keyMapState
	out matcher.Outcome
}

// handleEvent feeds one normalized event to every interested matcher, then
// applies the outcomes in key map order.
func (e *Engine) handleEvent(ev entity.InputEvent) {
	g := newGate(e.world)
	var hits []hit

	for _, id := range e.order {
		ks := e.keyMaps[id]
		if !ks.enabled || !ks.matcher.Interested(ks.state, ev) {
			continue
		}
		if ev.IsDown {
			ks.metaState = ev.MetaState
		}
		out := ks.matcher.Feed(ks.state, ev, g.allow(ks.km))
		e.syncMatchTimer(ks)
		if out != (matcher.Outcome{}) {
			hits = append(hits, hit{ks: ks, out: out})
		}
	}

	for _, h := range hits {
		e.apply(h.ks, h.out)
	}
}

func (e *Engine) apply(ks *keyMapState, out matcher.Outcome) {
	if out.Failed {
		logging.FromContext(e.ctx).Trace().Str("keymap_id", ks.km.ID).Msg("trigger press ruled out")
	}

	switch {
	case out.Match && out.Released && out.ReleasedAt < out.MatchAt:
		// The release belongs to an earlier press.
		e.onRelease(ks, out.ReleasedAt)
		e.onMatch(ks, out.MatchAt, true)
	case out.Match:
		e.onMatch(ks, out.MatchAt, !out.Released)
		if out.Released {
			e.onRelease(ks, out.ReleasedAt)
		}
	case out.Released:
		e.onRelease(ks, out.ReleasedAt)
	}
}

func (e *Engine) onMatch(ks *keyMapState, at int64, held bool) {
	log := logging.FromContext(e.ctx)
	log.Debug().Str("keymap_id", ks.km.ID).Bool("held", held).Msg("trigger matched")

	if c := ks.chain; c != nil && !c.Done() {
		if scheduler.PressAgain(c, at, held, e.dispatch) {
			e.syncChainTimer(ks)
			return
		}
		scheduler.Preempt(c, e.dispatch)
		e.syncChainTimer(ks)
	}

	if e.preempt != nil {
		for _, id := range e.order {
			other := e.keyMaps[id]
			if other == ks || other.chain == nil || other.chain.Done() {
				continue
			}
			if e.preempt(ks.km, other.km) {
				log.Debug().
					Str("keymap_id", ks.km.ID).
					Str("preempted", other.km.ID).
					Msg("preempting running actions")
				scheduler.Preempt(other.chain, e.dispatch)
				e.syncChainTimer(other)
			}
		}
	}

	ks.chain = scheduler.New(ks.km, ks.metaState)
	scheduler.Start(ks.chain, at, held, e.dispatch)
	e.syncChainTimer(ks)
}

func (e *Engine) onRelease(ks *keyMapState, at int64) {
	if ks.chain == nil || ks.chain.Done() {
		return
	}
	scheduler.Release(ks.chain, at, e.dispatch)
	e.syncChainTimer(ks)
}

// syncMatchTimer makes the pending timer follow the matcher's deadline.
func (e *Engine) syncMatchTimer(ks *keyMapState) {
	st := ks.state
	if !st.Armed {
		if ks.matchTimer != nil {
			ks.matchTimer.Cancel()
			ks.matchTimer = nil
		}
		return
	}
	if ks.matchTimer != nil && ks.timedState == st && ks.matchGen == st.Gen {
		return
	}
	if ks.matchTimer != nil {
		ks.matchTimer.Cancel()
	}

	gen := st.Gen
	ks.matchGen = gen
	ks.timedState = st
	ks.matchTimer = e.ts.ScheduleAt(st.Deadline, func() {
		e.post(func() { e.expireMatch(ks, gen) })
	})
}

func (e *Engine) expireMatch(ks *keyMapState, gen uint64) {
	if e.keyMaps[ks.km.ID] != ks || !ks.enabled {
		return
	}
	if ks.matchGen == gen {
		ks.matchTimer = nil
	}
	out := ks.matcher.Expire(ks.state, gen, newGate(e.world).allow(ks.km))
	e.syncMatchTimer(ks)
	e.apply(ks, out)
}

// syncChainTimer makes the pending timer follow the chain's deadline.
func (e *Engine) syncChainTimer(ks *keyMapState) {
	c := ks.chain
	if c == nil || !c.Armed {
		if ks.chainTimer != nil {
			ks.chainTimer.Cancel()
			ks.chainTimer = nil
		}
		return
	}
	if ks.chainTimer != nil && ks.timedChain == c && ks.chainGen == c.Gen {
		return
	}
	if ks.chainTimer != nil {
		ks.chainTimer.Cancel()
	}

	gen := c.Gen
	ks.chainGen = gen
	ks.timedChain = c
	ks.chainTimer = e.ts.ScheduleAt(c.Deadline, func() {
		e.post(func() { e.tickChain(ks, c, gen) })
	})
}

func (e *Engine) tickChain(ks *keyMapState, c *scheduler.Chain, gen uint64) {
	if e.keyMaps[ks.km.ID] != ks || ks.chain != c {
		return
	}
	if ks.timedChain == c && ks.chainGen == gen {
		ks.chainTimer = nil
	}
	scheduler.Tick(c, gen, e.dispatch)
	e.syncChainTimer(ks)
}

// dispatch hands executions to the key map's lane. The token is captured now
// so a later cancel drops them.
func (e *Engine) dispatch(c *scheduler.Chain, action entity.Action, eventType entity.KeyEventType, times int) {
	token := c.Token
	keyMapID := c.KeyMapID
	metaState := c.MetaState
	e.dispatcher.Submit(keyMapID, func() {
		e.execute(token, keyMapID, action, eventType, metaState, times)
	})
}

func (e *Engine) execute(token *scheduler.Token, keyMapID string, action entity.Action, eventType entity.KeyEventType, metaState, times int) {
	for range times {
		if token.Cancelled() {
			return
		}
		err := e.executor.Execute(e.ctx, action.Payload, eventType, metaState)
		if e.observer != nil {
			at := time.Unix(0, e.ts.NowNanos())
			e.observer.OnDispatch(entity.NewDispatchRecord(keyMapID, action, eventType, metaState, err, at))
		}
		if err != nil {
			e.reportError(&entity.ExecutionError{
				KeyMapID:  keyMapID,
				ActionID:  action.ID,
				EventType: eventType,
				Err:       err,
			})
		}
		if e.maxFailures > 0 {
			ok := err == nil
			e.post(func() { e.recordResult(keyMapID, token, ok) })
		}
	}
}

func (e *Engine) reportError(execErr *entity.ExecutionError) {
	logging.FromContext(e.ctx).Error().
		Err(execErr.Err).
		Str("keymap_id", execErr.KeyMapID).
		Str("action_id", execErr.ActionID).
		Str("event_type", string(execErr.EventType)).
		Msg("action execution failed")
	if e.onError != nil {
		e.onError(execErr)
	}
}

// recordResult cancels a chain after too many failed executions in a row.
func (e *Engine) recordResult(keyMapID string, token *scheduler.Token, ok bool) {
	ks, found := e.keyMaps[keyMapID]
	if !found || ks.chain == nil || ks.chain.Token != token || ks.chain.Done() {
		return
	}
	if ok {
		ks.chain.Failures = 0
		return
	}
	ks.chain.Failures++
	if ks.chain.Failures < e.maxFailures {
		return
	}
	logging.FromContext(e.ctx).Warn().
		Str("keymap_id", keyMapID).
		Int("failures", ks.chain.Failures).
		Msg("cancelling actions after consecutive failures")
	scheduler.Cancel(ks.chain)
	e.syncChainTimer(ks)
}

// gate memoises one world snapshot and each key map's verdict for the
// duration of a single message.
type gate struct {
	world    port.WorldStateProvider
	snapshot *entity.WorldState
	verdicts map[string]bool
}

func newGate(world port.WorldStateProvider) *gate {
	return &gate{world: world, verdicts: make(map[string]bool)}
}

func (g *gate) allow(km entity.KeyMap) matcher.Allow {
	return func() bool {
		if len(km.Constraints) == 0 {
			return true
		}
		if v, ok := g.verdicts[km.ID]; ok {
			return v
		}
		if g.snapshot == nil {
			var s entity.WorldState
			if g.world != nil {
				s = g.world.Snapshot()
			}
			g.snapshot = &s
		}
		v := constraint.Evaluate(km.Constraints, km.ConstraintMode, *g.snapshot)
		g.verdicts[km.ID] = v
		return v
	}
}
