package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config command output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPath renders the path of the active config file.
func (r *ConfigRenderer) RenderPath(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("\n  %s Config %s\n", iconStyle.Render(IconConfig), r.theme.Subtle.Render(path))
}

// RenderSchemaWritten renders the path of a generated JSON schema.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf(
		"\n  %s Schema written to %s\n  %s\n",
		iconStyle.Render(IconSchema),
		r.theme.Subtle.Render(path),
		r.theme.Subtle.Render("Point your editor's TOML language server at it for completion."),
	)
}

// RenderValidation renders the outcome of loading the key maps.
func (r *ConfigRenderer) RenderValidation(path string, loaded int, rejected []error) string {
	okStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	badStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	var sb strings.Builder
	sb.WriteString(r.RenderPath(path))
	fmt.Fprintf(&sb, "  %s %s key maps valid\n", okStyle.Render(IconCheck), r.theme.Highlight.Render(fmt.Sprint(loaded)))
	if len(rejected) == 0 {
		return sb.String()
	}

	fmt.Fprintf(&sb, "  %s %s rejected:\n", badStyle.Render(IconX), r.theme.ErrorStyle.Render(fmt.Sprint(len(rejected))))
	for _, err := range rejected {
		lines := strings.Split(err.Error(), "\n")
		fmt.Fprintf(&sb, "    %s %s\n", badStyle.Render(IconCursor), lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(&sb, "      %s\n", r.theme.Subtle.Render(strings.TrimSpace(line)))
		}
	}
	return sb.String()
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s Config error: %v\n", iconStyle.Render(IconX), err)
}
