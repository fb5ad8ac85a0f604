package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/domain/repository"
	"github.com/bnema/keymapper/internal/logging"
)

const (
	defaultJournalBuffer    = 256
	defaultJournalBatchSize = 32
	defaultJournalFlush     = 2 * time.Second
)

// JournalDispatchesUseCase records dispatches to the journal in batches.
// It is the engine's DispatchObserver; OnDispatch never blocks.
type JournalDispatchesUseCase struct {
	repo          repository.DispatchLogRepository
	records       chan entity.DispatchRecord
	batchSize     int
	flushInterval time.Duration
	dropped       atomic.Uint64
}

var _ port.DispatchObserver = (*JournalDispatchesUseCase)(nil)

// NewJournalDispatchesUseCase creates a journal with default batching.
func NewJournalDispatchesUseCase(repo repository.DispatchLogRepository) *JournalDispatchesUseCase {
	return &JournalDispatchesUseCase{
		repo:          repo,
		records:       make(chan entity.DispatchRecord, defaultJournalBuffer),
		batchSize:     defaultJournalBatchSize,
		flushInterval: defaultJournalFlush,
	}
}

// OnDispatch queues a record. Records are dropped while the buffer is full.
func (uc *JournalDispatchesUseCase) OnDispatch(record entity.DispatchRecord) {
	select {
	case uc.records <- record:
	default:
		uc.dropped.Add(1)
	}
}

// Dropped returns how many records did not fit the buffer.
func (uc *JournalDispatchesUseCase) Dropped() uint64 {
	return uc.dropped.Load()
}

// Run writes queued records until ctx is done, then flushes what is left.
func (uc *JournalDispatchesUseCase) Run(ctx context.Context) error {
	log := logging.FromContext(logging.WithComponent(ctx, "journal"))

	ticker := time.NewTicker(uc.flushInterval)
	defer ticker.Stop()

	batch := make([]entity.DispatchRecord, 0, uc.batchSize)
	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := uc.repo.Save(ctx, batch); err != nil {
			log.Warn().Err(err).Int("records", len(batch)).Msg("failed to journal dispatches")
		}
		batch = batch[:0]
	}

	for {
		select {
		case rec := <-uc.records:
			batch = append(batch, rec)
			if len(batch) >= uc.batchSize {
				flush(ctx)
			}
		case <-ticker.C:
			flush(ctx)
		case <-ctx.Done():
			// Drain with a fresh context so the last records still land.
			drainCtx := context.WithoutCancel(ctx)
			for {
				select {
				case rec := <-uc.records:
					batch = append(batch, rec)
				default:
					flush(drainCtx)
					if n := uc.Dropped(); n > 0 {
						log.Warn().Uint64("dropped", n).Msg("journal buffer overflowed")
					}
					return nil
				}
			}
		}
	}
}
