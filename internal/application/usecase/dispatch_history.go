package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/domain/repository"
	"github.com/bnema/keymapper/internal/logging"
)

const defaultHistoryLimit = 50

// ListDispatchHistoryUseCase reads the dispatch journal.
type ListDispatchHistoryUseCase struct {
	repo repository.DispatchLogRepository
}

// NewListDispatchHistoryUseCase creates a new ListDispatchHistoryUseCase.
func NewListDispatchHistoryUseCase(repo repository.DispatchLogRepository) *ListDispatchHistoryUseCase {
	return &ListDispatchHistoryUseCase{repo: repo}
}

// ListDispatchHistoryInput filters the history.
type ListDispatchHistoryInput struct {
	// KeyMapID limits records to one key map; empty lists all.
	KeyMapID string
	// Limit defaults to 50.
	Limit int
}

// ListDispatchHistoryOutput holds the newest records and per key map totals.
type ListDispatchHistoryOutput struct {
	Records []entity.DispatchRecord
	Stats   []entity.DispatchStat
}

// Execute returns recent records and aggregate stats.
func (uc *ListDispatchHistoryUseCase) Execute(ctx context.Context, input ListDispatchHistoryInput) (ListDispatchHistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := uc.repo.Recent(ctx, input.KeyMapID, limit)
	if err != nil {
		return ListDispatchHistoryOutput{}, fmt.Errorf("list dispatch history: %w", err)
	}
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return ListDispatchHistoryOutput{}, fmt.Errorf("dispatch stats: %w", err)
	}
	return ListDispatchHistoryOutput{Records: records, Stats: stats}, nil
}

// PruneDispatchHistoryUseCase deletes old journal records.
type PruneDispatchHistoryUseCase struct {
	repo repository.DispatchLogRepository
	now  func() time.Time
}

// NewPruneDispatchHistoryUseCase creates a new PruneDispatchHistoryUseCase.
func NewPruneDispatchHistoryUseCase(repo repository.DispatchLogRepository) *PruneDispatchHistoryUseCase {
	return &PruneDispatchHistoryUseCase{repo: repo, now: time.Now}
}

// Execute removes records older than retentionDays. Zero keeps everything.
func (uc *PruneDispatchHistoryUseCase) Execute(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := uc.now().AddDate(0, 0, -retentionDays)
	deleted, err := uc.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune dispatch history: %w", err)
	}
	if deleted > 0 {
		logging.FromContext(ctx).Info().
			Int64("deleted", deleted).
			Int("retention_days", retentionDays).
			Msg("pruned dispatch journal")
	}
	return deleted, nil
}
