package styles

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a yes/no dialog. It defaults to "No".
type ConfirmModel struct {
	Message   string
	Yes       bool
	Confirmed bool
	Canceled  bool
	keys      ConfirmKeyMap
	theme     *Theme
}

// ConfirmKeyMap defines keybindings for the confirm dialog.
type ConfirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeyMap returns the default keybindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes:     key.NewBinding(key.WithKeys("y", "right", "l"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "left", "h"), key.WithHelp("n", "no")),
		Toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// NewConfirm creates a new confirmation dialog.
func NewConfirm(theme *Theme, message string) ConfirmModel {
	return ConfirmModel{Message: message, keys: DefaultConfirmKeyMap(), theme: theme}
}

// Update handles selection keys. The parent model decides when to quit.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.Yes = true
	case key.Matches(keyMsg, m.keys.No):
		m.Yes = false
	case key.Matches(keyMsg, m.keys.Toggle):
		m.Yes = !m.Yes
	case key.Matches(keyMsg, m.keys.Confirm):
		m.Confirmed = true
	case key.Matches(keyMsg, m.keys.Cancel):
		m.Canceled = true
	}
	return m, nil
}

// View renders the dialog.
func (m ConfirmModel) View() string {
	t := m.theme

	yesStyle, noStyle := t.InactiveTab, t.ActiveTab
	if m.Yes {
		yesStyle, noStyle = t.ActiveTab, t.InactiveTab
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, noStyle.Render(" No "), "  ", yesStyle.Render(" Yes "))

	return t.Box.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		t.Title.Render(m.Message),
		"",
		buttons,
		"",
		t.Subtle.Render("y/n to select • enter to confirm • esc to cancel"),
	))
}

// Done reports whether the dialog was answered or dismissed.
func (m ConfirmModel) Done() bool {
	return m.Confirmed || m.Canceled
}

// Result reports whether the user confirmed "Yes".
func (m ConfirmModel) Result() bool {
	return m.Confirmed && m.Yes
}
