package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestWithKeyMapID_AddsField(t *testing.T) {
	var sb strings.Builder
	logger := zerolog.New(&sb)
	ctx := WithContext(context.Background(), logger)

	ctx = WithComponent(WithKeyMapID(ctx, "km-1"), "engine")
	FromContext(ctx).Info().Msg("hello")

	assert.Contains(t, sb.String(), `"keymap_id":"km-1"`)
	assert.Contains(t, sb.String(), `"component":"engine"`)
}

func TestFromContext_WithoutLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestLogRotator_RotatesAndKeepsBackups(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorConfig{Dir: dir, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	chunk := []byte(strings.Repeat("x", 700*1024))
	for i := 0; i < 3; i++ {
		_, err := r.Write(chunk)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "keymapper.log.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)

	info, err := os.Stat(filepath.Join(dir, "keymapper.log"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), info.Size())
}
