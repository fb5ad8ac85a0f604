package repository

import (
	"context"
	"time"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// DispatchLogRepository persists the journal of executed dispatches.
type DispatchLogRepository interface {
	// Save appends records in one transaction.
	Save(ctx context.Context, records []entity.DispatchRecord) error

	// Recent returns the newest records first, optionally filtered by key map.
	Recent(ctx context.Context, keyMapID string, limit int) ([]entity.DispatchRecord, error)

	// Stats aggregates dispatch counts per key map.
	Stats(ctx context.Context) ([]entity.DispatchStat, error)

	// DeleteOlderThan removes records dispatched before the given time and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}
