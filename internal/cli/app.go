// Package cli wires the keymapper command line: configuration, logging,
// the dispatch journal and the control client.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/domain/build"
	"github.com/bnema/keymapper/internal/infrastructure/config"
	"github.com/bnema/keymapper/internal/infrastructure/control"
	"github.com/bnema/keymapper/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/keymapper/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// Use cases
	ListHistoryUC  *usecase.ListDispatchHistoryUseCase
	PruneHistoryUC *usecase.PruneDispatchHistoryUseCase

	db      *sqlite.LazyDB
	client  *control.Client
	logFile *logging.LogRotator
	ctx     context.Context
}

// NewApp loads the configuration and sets up logging. The journal database
// is opened on first use.
func NewApp(configFile string) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	var file io.Writer
	var rotator *logging.LogRotator
	if cfg.Logging.EnableFileLog {
		rotator, err = logging.NewLogRotator(logging.RotatorConfig{
			Dir:        cfg.Logging.LogDir,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAge,
			Compress:   cfg.Logging.Compress,
		})
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = rotator
	}
	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format, file)
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	journal := sqlite.NewLazyDispatchLogRepository(db)

	logger.Debug().
		Str("config", mgr.GetConfigFile()).
		Str("db_path", cfg.Database.Path).
		Msg("cli initialized")

	return &App{
		Config:         cfg,
		Manager:        mgr,
		Theme:          styles.NewTheme(),
		ListHistoryUC:  usecase.NewListDispatchHistoryUseCase(journal),
		PruneHistoryUC: usecase.NewPruneDispatchHistoryUseCase(journal),
		db:             db,
		logFile:        rotator,
		ctx:            ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// WithContext replaces the application context, e.g. with a signal-aware one.
func (a *App) WithContext(ctx context.Context) {
	a.ctx = ctx
}

// Control returns a client for the running daemon.
func (a *App) Control() (*control.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	client, err := control.Dial()
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
