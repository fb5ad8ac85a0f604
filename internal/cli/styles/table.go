package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// RenderTable renders rows once, without focus, for non-interactive output.
func RenderTable(theme *Theme, columns []table.Column, rows []table.Row) string {
	width := 0
	for _, c := range columns {
		width += c.Width + 2
	}
	t := NewStyledTable(theme, columns, rows, width, len(rows)+1)
	t.Blur()
	return t.View()
}

// DispatchTableColumns returns columns for the dispatch journal.
func DispatchTableColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 10},
		{Title: "Key map", Width: 20},
		{Title: "Action", Width: 14},
		{Title: "Kind", Width: 8},
		{Title: "Event", Width: 8},
		{Title: "Result", Width: 30},
	}
}

// StatsTableColumns returns columns for per key map journal totals.
func StatsTableColumns() []table.Column {
	return []table.Column{
		{Title: "Key map", Width: 24},
		{Title: "Total", Width: 8},
		{Title: "Failed", Width: 8},
		{Title: "Last", Width: 12},
	}
}

// StatusTableColumns returns columns for the daemon status.
func StatusTableColumns() []table.Column {
	return []table.Column{
		{Title: "Key map", Width: 20},
		{Title: "Name", Width: 24},
		{Title: "State", Width: 9},
		{Title: "Trigger", Width: 20},
		{Title: "Actions", Width: 14},
	}
}

// DeviceTableColumns returns columns for the input device list.
func DeviceTableColumns() []table.Column {
	return []table.Column{
		{Title: "Path", Width: 20},
		{Title: "Name", Width: 36},
		{Title: "Keyboard", Width: 9},
		{Title: "Hat", Width: 5},
	}
}

// ReplayTableColumns returns columns for replayed dispatches.
func ReplayTableColumns() []table.Column {
	return []table.Column{
		{Title: "At (ms)", Width: 8},
		{Title: "Key map", Width: 20},
		{Title: "Action", Width: 14},
		{Title: "Payload", Width: 24},
		{Title: "Event", Width: 8},
	}
}

// FormatCount shortens large counts (1.2K, 3M).
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return formatFloat(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return formatFloat(float64(n)/1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func formatFloat(f float64) string {
	i := int64(f * 10)
	if i%10 == 0 {
		return strconv.FormatInt(i/10, 10)
	}
	return strconv.FormatInt(i/10, 10) + "." + strconv.FormatInt(i%10, 10)
}

// YesNo renders a boolean table cell.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
