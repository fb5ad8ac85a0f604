// Package model holds the bubbletea models of the interactive commands.
package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/domain/entity"
)

type historyTab int

const (
	tabRecent historyTab = iota
	tabStats
	tabCount
)

// HistoryModel browses the dispatch journal.
type HistoryModel struct {
	ctx   context.Context
	uc    *usecase.ListDispatchHistoryUseCase
	input usecase.ListDispatchHistoryInput
	theme *styles.Theme
	keys  styles.HistoryKeyMap
	help  help.Model

	tab        historyTab
	failedOnly bool
	data       usecase.ListDispatchHistoryOutput
	table      table.Model
	loading    bool
	err        error
	width      int
	height     int
}

// NewHistoryModel creates the history browser.
func NewHistoryModel(ctx context.Context, theme *styles.Theme, uc *usecase.ListDispatchHistoryUseCase, input usecase.ListDispatchHistoryInput) HistoryModel {
	return HistoryModel{
		ctx:     ctx,
		uc:      uc,
		input:   input,
		theme:   theme,
		keys:    styles.DefaultHistoryKeyMap(),
		help:    styles.NewHelp(theme),
		loading: true,
		width:   100,
		height:  24,
	}
}

// historyLoadedMsg is sent when the journal was read.
type historyLoadedMsg struct {
	data usecase.ListDispatchHistoryOutput
	err  error
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return m.load
}

func (m HistoryModel) load() tea.Msg {
	data, err := m.uc.Execute(m.ctx, m.input)
	return historyLoadedMsg{data: data, err: err}
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()

	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.data = msg.data
			m.rebuildTable()
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.rebuildTable()
		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.rebuildTable()
		case key.Matches(msg, m.keys.Failed):
			m.failedOnly = !m.failedOnly
			m.rebuildTable()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// Records returns the loaded records after the failed-only filter.
func (m HistoryModel) Records() []entity.DispatchRecord {
	if !m.failedOnly {
		return m.data.Records
	}
	var out []entity.DispatchRecord
	for _, r := range m.data.Records {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

func (m *HistoryModel) rebuildTable() {
	var columns []table.Column
	var rows []table.Row

	switch m.tab {
	case tabRecent:
		columns = styles.DispatchTableColumns()
		for _, r := range m.Records() {
			rows = append(rows, DispatchRow(r))
		}
	case tabStats:
		columns = styles.StatsTableColumns()
		for _, s := range m.data.Stats {
			rows = append(rows, table.Row{
				s.KeyMapID,
				styles.FormatCount(s.Total),
				styles.FormatCount(s.Failed),
				styles.RelativeTime(s.LastDispatched),
			})
		}
	}

	height := min(max(len(rows), 3), max(m.height-10, 3))
	m.table = styles.NewStyledTable(m.theme, columns, rows, m.width-4, height)
}

// DispatchRow converts a record to a dispatch table row.
func DispatchRow(r entity.DispatchRecord) table.Row {
	result := "ok"
	if !r.Success {
		result = r.Error
	}
	return table.Row{
		styles.RelativeTime(r.DispatchedAt),
		r.KeyMapID,
		shortID(r.ActionID),
		string(r.Kind),
		string(r.EventType),
		result,
	}
}

func shortID(id string) string {
	if len(id) > 13 {
		return id[:12] + "…"
	}
	return id
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	t := m.theme

	if m.loading {
		return t.Box.Render(styles.NewLoading(t, "Loading dispatch journal...").View())
	}
	if m.err != nil {
		return t.Box.Render(t.ErrorStyle.Render("Error: " + m.err.Error()))
	}

	var total, failed int64
	for _, s := range m.data.Stats {
		total += s.Total
		failed += s.Failed
	}

	tabs := []string{"Recent", "Per key map"}
	rendered := make([]string, len(tabs))
	for i, name := range tabs {
		style := t.InactiveTab
		if historyTab(i) == m.tab {
			style = t.ActiveTab
		}
		rendered[i] = style.Render(name)
	}

	filter := ""
	if m.failedOnly && m.tab == tabRecent {
		filter = t.WarningStyle.Render("  failed only")
	}

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		t.Title.Render("Dispatch history"),
		"",
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			t.CountBadge(total, "dispatches"),
			" ",
			t.BadgeMuted.Render(fmt.Sprintf("%d failed", failed)),
		),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, append(rendered, filter)...),
	)

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = t.Subtle.Render("Nothing recorded yet")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", m.help.View(m.keys))
}
