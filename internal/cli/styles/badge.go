package styles

import (
	"fmt"
	"time"
)

// StateBadge renders a key map's enabled state.
func (t *Theme) StateBadge(enabled bool) string {
	if enabled {
		return t.Badge.Render("enabled")
	}
	return t.BadgeMuted.Render("disabled")
}

// ResultBadge renders a dispatch result.
func (t *Theme) ResultBadge(success bool) string {
	if success {
		return t.SuccessStyle.Render(IconCheck)
	}
	return t.ErrorStyle.Render(IconX)
}

// CountBadge renders "n label" in the accent badge.
func (t *Theme) CountBadge(n int64, label string) string {
	return t.Badge.Render(fmt.Sprintf("%s %s", FormatCount(n), label))
}

// RelativeTime formats a time relative to now.
func RelativeTime(tm time.Time) string {
	return relativeTime(time.Now(), tm)
}

func relativeTime(now, tm time.Time) string {
	if tm.IsZero() {
		return "never"
	}
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
