// Package bootstrap assembles the keymapper daemon from its configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine"
	"github.com/bnema/keymapper/internal/engine/matcher"
	"github.com/bnema/keymapper/internal/infrastructure/clock"
	"github.com/bnema/keymapper/internal/infrastructure/config"
	"github.com/bnema/keymapper/internal/infrastructure/control"
	"github.com/bnema/keymapper/internal/infrastructure/executor"
	"github.com/bnema/keymapper/internal/infrastructure/inputdev"
	"github.com/bnema/keymapper/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/keymapper/internal/infrastructure/worldstate"
	"github.com/bnema/keymapper/internal/logging"
)

// EngineOptions maps the engine section of the configuration.
func EngineOptions(cfg config.EngineConfig) []engine.Option {
	timing := matcher.Timing{
		CoincidenceWindow:  msToNanos(cfg.CoincidenceWindowMs),
		LongPressDelay:     msToNanos(cfg.LongPressDelayMs),
		DoublePressTimeout: msToNanos(cfg.DoublePressTimeoutMs),
		SequenceTimeout:    msToNanos(cfg.SequenceTimeoutMs),
		SequenceInterrupt:  entity.SequenceInterrupt(cfg.SequenceInterrupt),
	}
	opts := []engine.Option{
		engine.WithTiming(timing),
		engine.WithLaneQueueSize(cfg.LaneQueueSize),
		engine.WithMaxConsecutiveFailures(cfg.MaxConsecutiveFailures),
	}
	if policy := engine.PreemptPolicyByName(cfg.PreemptPolicy); policy != nil {
		opts = append(opts, engine.WithPreemptPolicy(policy))
	}
	return opts
}

func msToNanos(ms int) int64 {
	return int64(time.Duration(ms) * time.Millisecond)
}

// Daemon owns every long-running part of a keymapper process.
type Daemon struct {
	mgr *config.Manager
	cfg *config.Config

	sources  []*inputdev.Source
	keyboard *inputdev.VirtualKeyboard
	world    *worldstate.Store
	watcher  *worldstate.DBusWatcher
	db       *sqlite.LazyDB
	journal  *usecase.JournalDispatchesUseCase
	prune    *usecase.PruneDispatchHistoryUseCase
	engine   *engine.Engine
	load     *usecase.LoadKeyMapsUseCase
	control  *control.Service

	mu       sync.Mutex
	lastLoad usecase.LoadKeyMapsOutput
	lastErr  error
}

// NewDaemon opens the input devices, the virtual keyboard and the journal
// and builds the engine. Nothing runs until Run.
func NewDaemon(ctx context.Context, mgr *config.Manager) (*Daemon, error) {
	ctx = logging.WithComponent(ctx, "daemon")
	log := logging.FromContext(ctx)
	timer := NewStartupTimer()
	cfg := mgr.Get()

	d := &Daemon{mgr: mgr, cfg: cfg}

	if err := d.openSources(ctx); err != nil {
		return nil, err
	}
	timer.Mark("devices")

	var keys port.KeyEmitter
	kb, err := inputdev.NewVirtualKeyboard(cfg.Executor.VirtualDeviceName, time.Duration(cfg.Executor.KeyDelayMs)*time.Millisecond)
	if err != nil {
		log.Warn().Err(err).Msg("virtual keyboard unavailable, key and text actions will fail")
	} else {
		d.keyboard = kb
		keys = kb
	}
	timer.Mark("virtual_keyboard")

	router := executor.NewRouter(keys, executor.Config{
		Shell:          cfg.Executor.Shell,
		CommandTimeout: time.Duration(cfg.Executor.CommandTimeoutMs) * time.Millisecond,
		SystemCommands: cfg.Executor.SystemCommands,
	})

	clk := clock.NewSystem()
	d.world = worldstate.NewStore(clk, cfg.WorldState.Flags)
	if cfg.WorldState.DBus {
		interval := time.Duration(cfg.WorldState.PollIntervalMs) * time.Millisecond
		d.watcher = worldstate.NewDBusWatcher(ctx, d.world, interval)
	}
	timer.Mark("world_state")

	opts := EngineOptions(cfg.Engine)
	opts = append(opts, engine.WithErrorHandler(func(execErr *entity.ExecutionError) {
		if errors.Is(execErr.Err, executor.ErrUnsupportedAction) {
			log.Debug().Str("keymap_id", execErr.KeyMapID).Msg("action skipped")
		}
	}))
	if cfg.Database.Journal {
		d.db = sqlite.NewLazyDB(cfg.Database.Path)
		repo := sqlite.NewLazyDispatchLogRepository(d.db)
		d.journal = usecase.NewJournalDispatchesUseCase(repo)
		d.prune = usecase.NewPruneDispatchHistoryUseCase(repo)
		opts = append(opts, engine.WithObserver(d.journal))
	}

	d.engine = engine.New(ctx, router, d.world, clk, opts...)
	d.load = usecase.NewLoadKeyMapsUseCase(config.NewKeyMapSource(mgr, inputdev.ResolveKey), d.engine)
	d.control = control.NewService(ctx, control.Handlers{
		Toggle:  usecase.NewToggleKeyMapUseCase(d.engine),
		Trigger: usecase.NewTriggerKeyMapUseCase(d.engine),
		Reload:  d.reloadConfig,
		Status:  d.engine.Status,
	})
	timer.Mark("engine")

	timer.Log(ctx, zerolog.DebugLevel)
	return d, nil
}

func (d *Daemon) openSources(ctx context.Context) error {
	log := logging.FromContext(ctx)

	devices, err := inputdev.ListDevices()
	if err != nil {
		return fmt.Errorf("list input devices: %w", err)
	}
	selected, err := inputdev.SelectDevices(devices, d.cfg.Input.Devices)
	if err != nil {
		if len(selected) == 0 {
			return err
		}
		log.Warn().Err(err).Msg("some configured input devices are missing")
	}

	for _, info := range selected {
		src, err := inputdev.Open(info.Path, d.cfg.Input.Grab)
		if err != nil {
			log.Warn().Err(err).Str("path", info.Path).Msg("failed to open input device")
			continue
		}
		d.sources = append(d.sources, src)
	}
	if len(d.sources) == 0 {
		return errors.New("no input device could be opened (check permissions on /dev/input)")
	}
	return nil
}

// Run loads the key maps and serves input until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)

	if _, err := d.reload(ctx); err != nil {
		return err
	}

	d.mgr.OnConfigChange(func(cfg *config.Config) {
		d.world.ReplaceFlags(cfg.WorldState.Flags)
		if cfg.Engine != d.cfg.Engine || !slices.Equal(cfg.Input.Devices, d.cfg.Input.Devices) {
			log.Warn().Msg("engine and input settings change on restart only")
		}
		if _, err := d.reload(ctx); err != nil {
			log.Error().Err(err).Msg("failed to apply reloaded key maps")
		}
	})
	if err := d.mgr.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watching disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range d.sources {
		g.Go(func() error { return d.runSource(gctx, src) })
	}
	if d.journal != nil {
		g.Go(func() error { return d.journal.Run(gctx) })
		g.Go(func() error {
			if _, err := d.prune.Execute(gctx, d.cfg.Database.RetentionDays); err != nil {
				log.Warn().Err(err).Msg("failed to prune dispatch journal")
			}
			return nil
		})
	}
	if d.watcher != nil {
		g.Go(func() error { return d.watcher.Run(gctx) })
	}
	g.Go(func() error {
		err := d.control.Run(gctx)
		if err == nil || errors.Is(err, control.ErrAlreadyRunning) {
			return err
		}
		log.Warn().Err(err).Msg("control service unavailable, enable/disable/trigger commands will not reach this daemon")
		return nil
	})

	log.Info().Int("devices", len(d.sources)).Msg("keymapper running")
	return g.Wait()
}

func (d *Daemon) runSource(ctx context.Context, src *inputdev.Source) error {
	log := logging.FromContext(logging.WithDevice(ctx, src.Name()))

	err := src.Run(ctx, func(ev entity.RawEvent) {
		if err := d.engine.OnInputEvent(ev); err != nil && !errors.Is(err, entity.ErrEngineClosed) {
			log.Error().Err(err).Msg("failed to handle input event")
		}
	})
	if errors.Is(err, inputdev.ErrDeviceGone) {
		log.Warn().Err(err).Msg("input device removed")
		if rmErr := d.engine.DeviceRemoved(src.Name()); rmErr != nil && !errors.Is(rmErr, entity.ErrEngineClosed) {
			log.Error().Err(rmErr).Msg("failed to release keys of removed device")
		}
		return nil
	}
	return err
}

func (d *Daemon) reload(ctx context.Context) (usecase.LoadKeyMapsOutput, error) {
	out, err := d.load.Execute(ctx)
	d.mu.Lock()
	d.lastLoad, d.lastErr = out, err
	d.mu.Unlock()
	return out, err
}

// reloadConfig re-reads the config file. The change callback applies the
// key maps; the result of that load is returned.
func (d *Daemon) reloadConfig(context.Context) (usecase.LoadKeyMapsOutput, error) {
	if err := d.mgr.Reload(); err != nil {
		return usecase.LoadKeyMapsOutput{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastLoad, d.lastErr
}

// Close stops the engine and releases devices and the journal.
func (d *Daemon) Close() error {
	var errs []error
	if d.engine != nil {
		if err := d.engine.Close(); err != nil && !errors.Is(err, entity.ErrEngineClosed) {
			errs = append(errs, err)
		}
	}
	for _, src := range d.sources {
		errs = append(errs, src.Close())
	}
	if d.keyboard != nil {
		errs = append(errs, d.keyboard.Close())
	}
	if d.watcher != nil {
		errs = append(errs, d.watcher.Close())
	}
	if d.db != nil {
		errs = append(errs, d.db.Close())
	}
	return errors.Join(errs...)
}
