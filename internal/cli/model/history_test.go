package model

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/domain/repository/mocks"
)

func newTestHistoryModel(t *testing.T, records []entity.DispatchRecord, stats []entity.DispatchStat, err error) HistoryModel {
	t.Helper()
	repo := mocks.NewMockDispatchLogRepository(t)
	repo.EXPECT().Recent(mock.Anything, "vol", 20).Return(records, err).Maybe()
	repo.EXPECT().Stats(mock.Anything).Return(stats, nil).Maybe()

	uc := usecase.NewListDispatchHistoryUseCase(repo)
	return NewHistoryModel(context.Background(), styles.NewTheme(), uc, usecase.ListDispatchHistoryInput{KeyMapID: "vol", Limit: 20})
}

func loaded(t *testing.T, m HistoryModel) HistoryModel {
	t.Helper()
	next, _ := m.Update(m.Init()())
	return next.(HistoryModel)
}

func press(m HistoryModel, k string) HistoryModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(HistoryModel)
}

func TestHistoryModel_LoadsAndFiltersFailures(t *testing.T) {
	now := time.Now()
	records := []entity.DispatchRecord{
		{KeyMapID: "vol", ActionID: "a", Kind: entity.ActionKindKey, EventType: entity.KeyEventDownUp, Success: true, DispatchedAt: now},
		{KeyMapID: "vol", ActionID: "b", Kind: entity.ActionKindCommand, EventType: entity.KeyEventDown, Error: "exit status 1", DispatchedAt: now},
	}
	stats := []entity.DispatchStat{{KeyMapID: "vol", Total: 2, Failed: 1, LastDispatched: now}}

	m := loaded(t, newTestHistoryModel(t, records, stats, nil))
	require.NoError(t, m.err)
	assert.False(t, m.loading)
	assert.Len(t, m.Records(), 2)
	assert.Len(t, m.table.Rows(), 2)

	m = press(m, "f")
	require.Len(t, m.Records(), 1)
	assert.Equal(t, "b", m.Records()[0].ActionID)
	assert.Equal(t, "exit status 1", m.table.Rows()[0][5])

	m = press(m, "l")
	assert.Equal(t, tabStats, m.tab)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "vol", m.table.Rows()[0][0])

	assert.Contains(t, m.View(), "Dispatch history")
}

func TestHistoryModel_ShowsLoadError(t *testing.T) {
	m := loaded(t, newTestHistoryModel(t, nil, nil, errors.New("database is locked")))

	assert.Contains(t, m.View(), "database is locked")
}

func TestHistoryModel_QuitKey(t *testing.T) {
	m := loaded(t, newTestHistoryModel(t, nil, nil, nil))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDispatchRow_ShortensIDs(t *testing.T) {
	row := DispatchRow(entity.DispatchRecord{ActionID: "6f1c3f9e-52a4-4b57-9d0e-6b1c1f4f7a10", Success: true})

	assert.Equal(t, "6f1c3f9e-52a…", row[2])
	assert.Equal(t, "ok", row[5])
}
