package model

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/cli/styles"
)

// PruneModel asks for confirmation, then deletes old journal records.
type PruneModel struct {
	confirm styles.ConfirmModel
	uc      *usecase.PruneDispatchHistoryUseCase
	days    int

	pruning bool
	done    bool
	deleted int64
	err     error

	theme *styles.Theme
	ctx   context.Context
}

// NewPruneModel creates the prune dialog for records older than days.
func NewPruneModel(ctx context.Context, theme *styles.Theme, uc *usecase.PruneDispatchHistoryUseCase, days int) PruneModel {
	return PruneModel{
		confirm: styles.NewConfirm(theme, fmt.Sprintf("Delete dispatch records older than %d days?", days)),
		uc:      uc,
		days:    days,
		theme:   theme,
		ctx:     ctx,
	}
}

type pruneDoneMsg struct {
	deleted int64
	err     error
}

// Init implements tea.Model.
func (m PruneModel) Init() tea.Cmd {
	return nil
}

func (m PruneModel) prune() tea.Msg {
	deleted, err := m.uc.Execute(m.ctx, m.days)
	return pruneDoneMsg{deleted: deleted, err: err}
}

// Update implements tea.Model.
func (m PruneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(pruneDoneMsg); ok {
		m.pruning = false
		m.done = true
		m.deleted = done.deleted
		m.err = done.err
		return m, tea.Quit
	}
	if m.pruning || m.done {
		return m, nil
	}

	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	if !m.confirm.Done() {
		return m, cmd
	}
	if !m.confirm.Result() {
		m.done = true
		return m, tea.Quit
	}
	m.pruning = true
	return m, m.prune
}

// View implements tea.Model.
func (m PruneModel) View() string {
	t := m.theme
	switch {
	case m.pruning:
		return styles.NewLoading(t, "Pruning dispatch journal...").View()
	case m.done && m.err != nil:
		return t.ErrorStyle.Render("Error: "+m.err.Error()) + "\n"
	case m.done && !m.confirm.Result():
		return t.Subtle.Render("Canceled") + "\n"
	case m.done:
		return t.SuccessStyle.Render(fmt.Sprintf("%s Deleted %d records", styles.IconTrash, m.deleted)) + "\n"
	}
	return m.confirm.View()
}

// Deleted returns the number of pruned records.
func (m PruneModel) Deleted() int64 {
	return m.deleted
}

// Err returns the prune error, if any.
func (m PruneModel) Err() error {
	return m.err
}
