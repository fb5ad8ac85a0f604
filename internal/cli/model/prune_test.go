package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/domain/repository/mocks"
)

func TestPruneModel_ConfirmDeletes(t *testing.T) {
	repo := mocks.NewMockDispatchLogRepository(t)
	repo.EXPECT().DeleteOlderThan(mock.Anything, mock.Anything).Return(int64(7), nil).Once()

	m := NewPruneModel(context.Background(), styles.NewTheme(), usecase.NewPruneDispatchHistoryUseCase(repo), 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	next, cmd = next.Update(cmd())
	require.NotNil(t, cmd)
	pm := next.(PruneModel)
	require.NoError(t, pm.Err())
	assert.Equal(t, int64(7), pm.Deleted())
	assert.Contains(t, pm.View(), "Deleted 7 records")
}

func TestPruneModel_DefaultsToNo(t *testing.T) {
	repo := mocks.NewMockDispatchLogRepository(t)

	m := NewPruneModel(context.Background(), styles.NewTheme(), usecase.NewPruneDispatchHistoryUseCase(repo), 30)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Contains(t, next.View(), "Canceled")
}
