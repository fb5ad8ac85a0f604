package cmd

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/keymapper/internal/domain/entity"
)

func TestStatusRow(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		trigger  string
		cursor   int
		chain    string
		index    int
		expected table.Row
	}{
		{
			name:     "idle",
			enabled:  true,
			trigger:  "idle",
			expected: table.Row{"vol", "Volume", "enabled", "idle", "-"},
		},
		{
			name:     "sequence in progress",
			enabled:  true,
			trigger:  "awaiting_keys",
			cursor:   2,
			chain:    "repeating",
			index:    1,
			expected: table.Row{"vol", "Volume", "enabled", "awaiting_keys @2", "repeating #1"},
		},
		{
			name:     "disabled",
			trigger:  "idle",
			expected: table.Row{"vol", "Volume", "disabled", "idle", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := statusRow("vol", "Volume", tt.enabled, tt.trigger, tt.cursor, tt.chain, tt.index)
			assert.Equal(t, tt.expected, row)
		})
	}
}

func TestDescribePayload(t *testing.T) {
	assert.Equal(t, `"hi"`, describePayload(entity.ActionPayload{Kind: entity.ActionKindText, Text: "hi"}))
	assert.Equal(t, "notify-send done", describePayload(entity.ActionPayload{
		Kind:    entity.ActionKindCommand,
		Command: "notify-send",
		Args:    []string{"done"},
	}))
	assert.Equal(t, "lock_screen", describePayload(entity.ActionPayload{Kind: entity.ActionKindSystem, SystemID: "lock_screen"}))
}

func TestUnjoin(t *testing.T) {
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")

	assert.Nil(t, unjoin(nil))
	assert.Equal(t, []error{a}, unjoin(a))
	assert.Equal(t, []error{a, b, c}, unjoin(errors.Join(a, errors.Join(b, c))))
}
