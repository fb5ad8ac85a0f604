package sqlite

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/domain/repository"
)

// LazyDispatchLogRepository opens the journal database on first use, so the
// daemon starts reading input before the WASM SQLite build is compiled.
type LazyDispatchLogRepository struct {
	provider port.DatabaseProvider
	repo     repository.DispatchLogRepository
	once     sync.Once
	initErr  error
}

var _ repository.DispatchLogRepository = (*LazyDispatchLogRepository)(nil)

// NewLazyDispatchLogRepository creates a lazy-loading dispatch journal.
func NewLazyDispatchLogRepository(provider port.DatabaseProvider) *LazyDispatchLogRepository {
	return &LazyDispatchLogRepository{provider: provider}
}

func (r *LazyDispatchLogRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewDispatchLogRepository(db)
	})
	return r.initErr
}

func (r *LazyDispatchLogRepository) Save(ctx context.Context, records []entity.DispatchRecord) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, records)
}

func (r *LazyDispatchLogRepository) Recent(ctx context.Context, keyMapID string, limit int) ([]entity.DispatchRecord, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Recent(ctx, keyMapID, limit)
}

func (r *LazyDispatchLogRepository) Stats(ctx context.Context) ([]entity.DispatchStat, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Stats(ctx)
}

func (r *LazyDispatchLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	if err := r.init(ctx); err != nil {
		return 0, err
	}
	return r.repo.DeleteOlderThan(ctx, before)
}
