package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/domain/repository"
	"github.com/bnema/keymapper/internal/logging"
)

const defaultRecentLimit = 50

type dispatchLogRepo struct {
	db *sql.DB
}

// NewDispatchLogRepository creates a new SQLite-backed dispatch journal.
func NewDispatchLogRepository(db *sql.DB) repository.DispatchLogRepository {
	return &dispatchLogRepo{db: db}
}

func (r *dispatchLogRepo) Save(ctx context.Context, records []entity.DispatchRecord) (err error) {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO dispatch_log (keymap_id, action_id, kind, event_type, meta_state, success, error, dispatched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		_, err = stmt.ExecContext(ctx,
			rec.KeyMapID,
			rec.ActionID,
			string(rec.Kind),
			string(rec.EventType),
			rec.MetaState,
			rec.Success,
			sql.NullString{String: rec.Error, Valid: rec.Error != ""},
			rec.DispatchedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert dispatch record: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dispatch records: %w", err)
	}

	logging.FromContext(ctx).Trace().Int("count", len(records)).Msg("dispatch records saved")
	return nil
}

func (r *dispatchLogRepo) Recent(ctx context.Context, keyMapID string, limit int) ([]entity.DispatchRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	query := `
		SELECT id, keymap_id, action_id, kind, event_type, meta_state, success, error, dispatched_at
		FROM dispatch_log`
	args := []any{}
	if keyMapID != "" {
		query += ` WHERE keymap_id = ?`
		args = append(args, keyMapID)
	}
	query += ` ORDER BY dispatched_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatch log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []entity.DispatchRecord
	for rows.Next() {
		var (
			rec        entity.DispatchRecord
			kind, ev   string
			errMsg     sql.NullString
			dispatched int64
		)
		if err := rows.Scan(&rec.ID, &rec.KeyMapID, &rec.ActionID, &kind, &ev, &rec.MetaState, &rec.Success, &errMsg, &dispatched); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch record: %w", err)
		}
		rec.Kind = entity.ActionKind(kind)
		rec.EventType = entity.KeyEventType(ev)
		rec.Error = errMsg.String
		rec.DispatchedAt = time.UnixMilli(dispatched).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *dispatchLogRepo) Stats(ctx context.Context) ([]entity.DispatchStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT keymap_id, COUNT(*), SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), MAX(dispatched_at)
		FROM dispatch_log
		GROUP BY keymap_id
		ORDER BY COUNT(*) DESC, keymap_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatch stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []entity.DispatchStat
	for rows.Next() {
		var (
			stat entity.DispatchStat
			last int64
		)
		if err := rows.Scan(&stat.KeyMapID, &stat.Total, &stat.Failed, &last); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch stat: %w", err)
		}
		stat.LastDispatched = time.UnixMilli(last).UTC()
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *dispatchLogRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dispatch_log WHERE dispatched_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune dispatch log: %w", err)
	}
	return res.RowsAffected()
}
