package replay

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine"
	"github.com/bnema/keymapper/internal/infrastructure/clock"
	"github.com/bnema/keymapper/internal/infrastructure/worldstate"
	"github.com/bnema/keymapper/internal/logging"
)

const nanosPerMs = int64(1_000_000)

// Dispatch is one dry-run execution.
type Dispatch struct {
	AtMs      int64
	KeyMapID  string
	ActionID  string
	Payload   entity.ActionPayload
	EventType entity.KeyEventType
	MetaState int
}

// Report is the outcome of a replay.
type Report struct {
	Dispatches []Dispatch
	// Rejected holds key maps the engine refused to load.
	Rejected []error
	// Errors holds engine calls the script made that failed.
	Errors []error
	Final  []engine.KeyMapStatus
}

// recorder is a dry-run executor. Every payload succeeds.
type recorder struct {
	mu      sync.Mutex
	clock   *clock.Manual
	pending []Dispatch
	out     []Dispatch
}

func (r *recorder) Execute(_ context.Context, p entity.ActionPayload, ev entity.KeyEventType, metaState int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, Dispatch{
		AtMs:      r.clock.NowNanos() / nanosPerMs,
		Payload:   p,
		EventType: ev,
		MetaState: metaState,
	})
	return nil
}

// OnDispatch attaches the key map and action ids to the execution that
// produced the record. Both run on the same lane, back to back.
func (r *recorder) OnDispatch(rec entity.DispatchRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return
	}
	d := r.pending[0]
	r.pending = r.pending[1:]
	d.KeyMapID = rec.KeyMapID
	d.ActionID = rec.ActionID
	r.out = append(r.out, d)
}

// Run replays script against keyMaps and returns what would have been
// executed. opts are applied before the replay's own dispatcher and observer.
func Run(ctx context.Context, keyMaps []entity.KeyMap, script *Script, opts ...engine.Option) (*Report, error) {
	log := logging.FromContext(ctx)

	clk := clock.NewManual(0)
	world := worldstate.NewStore(clk, nil)
	if script.Seed != nil {
		world.Update(script.Seed)
	}
	rec := &recorder{clock: clk}

	opts = append(opts,
		engine.WithDispatcher(engine.NewSyncDispatcher()),
		engine.WithObserver(rec),
	)
	eng := engine.New(ctx, rec, world, clk, opts...)
	defer eng.Close()

	report := &Report{}
	if err := eng.SetKeyMaps(keyMaps); err != nil {
		report.Rejected = flatten(err)
	}

	for _, step := range script.Steps {
		clk.AdvanceTo(step.AtMs * nanosPerMs)
		if step.World != nil {
			world.Update(step.World)
		}
		for _, call := range []struct {
			id string
			fn func(string) error
		}{
			{step.Disable, eng.DisableKeyMap},
			{step.Enable, eng.EnableKeyMap},
			{step.Trigger, eng.TriggerKeyMap},
		} {
			if call.id == "" {
				continue
			}
			if err := call.fn(call.id); err != nil {
				report.Errors = append(report.Errors, fmt.Errorf("at %dms: %w", step.AtMs, err))
			}
		}
		for _, ev := range step.Events {
			if err := eng.OnInputEvent(ev); err != nil {
				return nil, fmt.Errorf("at %dms: %w", step.AtMs, err)
			}
		}
		if step.Unplug != "" {
			if err := eng.DeviceRemoved(step.Unplug); err != nil {
				return nil, fmt.Errorf("at %dms: %w", step.AtMs, err)
			}
		}
	}
	clk.AdvanceTo(script.UntilMs * nanosPerMs)

	final, err := eng.Status()
	if err != nil {
		return nil, err
	}
	report.Final = final
	report.Dispatches = rec.out

	log.Debug().
		Int("steps", len(script.Steps)).
		Int("dispatches", len(report.Dispatches)).
		Int64("until_ms", script.UntilMs).
		Msg("replay finished")
	return report, nil
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
