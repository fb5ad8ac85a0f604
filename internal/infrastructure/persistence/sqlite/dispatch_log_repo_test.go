package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/infrastructure/persistence/sqlite"
)

func TestDispatchLogRepository_SaveRecentStatsPrune(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewDispatchLogRepository(db)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []entity.DispatchRecord{
		{KeyMapID: "volume", ActionID: "up", Kind: entity.ActionKindKey, EventType: entity.KeyEventDownUp, Success: true, DispatchedAt: base},
		{KeyMapID: "volume", ActionID: "up", Kind: entity.ActionKindKey, EventType: entity.KeyEventDownUp, Success: false, Error: "uinput closed", DispatchedAt: base.Add(time.Second)},
		{KeyMapID: "launcher", ActionID: "term", Kind: entity.ActionKindCommand, EventType: entity.KeyEventDownUp, Success: true, DispatchedAt: base.Add(2 * time.Second)},
	}
	require.NoError(t, repo.Save(ctx, records))

	t.Run("recent newest first", func(t *testing.T) {
		got, err := repo.Recent(ctx, "", 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "launcher", got[0].KeyMapID)
		assert.Equal(t, entity.ActionKindCommand, got[0].Kind)
		assert.True(t, got[0].DispatchedAt.Equal(base.Add(2*time.Second)))
		assert.Equal(t, "uinput closed", got[1].Error)
		assert.False(t, got[1].Success)
	})

	t.Run("recent filtered by key map", func(t *testing.T) {
		got, err := repo.Recent(ctx, "volume", 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "volume", got[0].KeyMapID)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, "volume", stats[0].KeyMapID)
		assert.Equal(t, int64(2), stats[0].Total)
		assert.Equal(t, int64(1), stats[0].Failed)
		assert.True(t, stats[0].LastDispatched.Equal(base.Add(time.Second)))
	})

	t.Run("prune", func(t *testing.T) {
		n, err := repo.DeleteOlderThan(ctx, base.Add(1500*time.Millisecond))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		got, err := repo.Recent(ctx, "", 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestDispatchLogRepository_SaveEmptyIsNoop(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.NewDispatchLogRepository(db).Save(ctx, nil))

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
