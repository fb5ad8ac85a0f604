package styles

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keymapper/internal/domain/build"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{14 * 24 * time.Hour, "2w ago"},
		{60 * 24 * time.Hour, "2mo ago"},
		{800 * 24 * time.Hour, "2y ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeTime(now, now.Add(-tt.ago)))
	}
	assert.Equal(t, "never", relativeTime(now, time.Time{}))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1K", FormatCount(1000))
	assert.Equal(t, "1.5K", FormatCount(1500))
	assert.Equal(t, "2.3M", FormatCount(2_300_000))
}

func TestConfigRenderer_RenderValidation(t *testing.T) {
	r := NewConfigRenderer(NewTheme())

	out := r.RenderValidation("/tmp/keymapper/config.toml", 3, []error{
		errors.New("key map vol rejected:\n  - actions cannot be empty"),
	})

	require.Contains(t, out, "config.toml")
	require.Contains(t, out, "key maps valid")
	require.Contains(t, out, "key map vol rejected:")
	require.Contains(t, out, "- actions cannot be empty")
}

func TestAboutRenderer_Render(t *testing.T) {
	out := NewAboutRenderer(NewTheme()).Render(build.Info{Version: "v1.2.3", Commit: "abc123"})

	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, build.RepoURL())
}
