package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/keymapper/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console", nil)
	return logging.WithContext(context.Background(), logger)
}

func TestLazyDB_NotInitializedByDefault(t *testing.T) {
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "journal.db"))

	assert.False(t, lazy.IsInitialized())
	assert.NoError(t, lazy.Close())
}

func TestLazyDB_ConcurrentAccessReturnsSameConnection(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "journal.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const goroutines = 8
	dbs := make([]*sql.DB, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := lazy.DB(ctx)
			assert.NoError(t, err)
			dbs[i] = db
		}()
	}
	wg.Wait()

	require.NotNil(t, dbs[0])
	for _, db := range dbs[1:] {
		assert.Same(t, dbs[0], db)
	}
	assert.True(t, lazy.IsInitialized())
}

func TestLazyDispatchLogRepository_InitializesOnFirstSave(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "journal.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	repo := sqlite.NewLazyDispatchLogRepository(lazy)
	require.False(t, lazy.IsInitialized())

	rec := entity.DispatchRecord{
		KeyMapID:     "km",
		ActionID:     "a",
		Kind:         entity.ActionKindKey,
		EventType:    entity.KeyEventDownUp,
		Success:      true,
		DispatchedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, []entity.DispatchRecord{rec}))
	assert.True(t, lazy.IsInitialized())

	got, err := repo.Recent(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
