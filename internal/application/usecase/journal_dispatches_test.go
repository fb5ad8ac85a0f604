package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/domain/entity"
	repomocks "github.com/bnema/keymapper/internal/domain/repository/mocks"
)

func TestJournalDispatchesUseCase_FlushesOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	repo := repomocks.NewMockDispatchLogRepository(t)

	var saved []entity.DispatchRecord
	repo.EXPECT().
		Save(mock.Anything, mock.Anything).
		Run(func(_ context.Context, records []entity.DispatchRecord) {
			saved = append(saved, records...)
		}).
		Return(nil)

	uc := usecase.NewJournalDispatchesUseCase(repo)
	uc.OnDispatch(entity.DispatchRecord{KeyMapID: "a", Success: true})
	uc.OnDispatch(entity.DispatchRecord{KeyMapID: "b", Success: false, Error: "boom"})

	done := make(chan error, 1)
	go func() { done <- uc.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("journal did not stop")
	}

	require.Len(t, saved, 2)
	assert.Equal(t, "a", saved[0].KeyMapID)
	assert.Equal(t, "boom", saved[1].Error)
	assert.Zero(t, uc.Dropped())
}

func TestJournalDispatchesUseCase_DropsWhenFull(t *testing.T) {
	repo := repomocks.NewMockDispatchLogRepository(t)
	uc := usecase.NewJournalDispatchesUseCase(repo)

	for range 300 {
		uc.OnDispatch(entity.DispatchRecord{KeyMapID: "spam"})
	}

	assert.Equal(t, uint64(44), uc.Dropped())
}

func TestListDispatchHistoryUseCase_Execute(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockDispatchLogRepository(t)
	records := []entity.DispatchRecord{{ID: 2, KeyMapID: "vol"}, {ID: 1, KeyMapID: "vol"}}
	stats := []entity.DispatchStat{{KeyMapID: "vol", Total: 2}}
	repo.EXPECT().Recent(ctx, "vol", 50).Return(records, nil)
	repo.EXPECT().Stats(ctx).Return(stats, nil)

	out, err := usecase.NewListDispatchHistoryUseCase(repo).Execute(ctx, usecase.ListDispatchHistoryInput{KeyMapID: "vol"})

	require.NoError(t, err)
	assert.Equal(t, records, out.Records)
	assert.Equal(t, stats, out.Stats)
}

func TestPruneDispatchHistoryUseCase_Execute(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockDispatchLogRepository(t)
	repo.EXPECT().
		DeleteOlderThan(ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().AddDate(0, 0, -30)
			diff := expected.Sub(cutoff)
			return diff > -time.Minute && diff < time.Minute
		})).
		Return(int64(7), nil)

	uc := usecase.NewPruneDispatchHistoryUseCase(repo)

	deleted, err := uc.Execute(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)

	deleted, err = uc.Execute(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
