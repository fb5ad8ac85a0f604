package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/keymapper/internal/infrastructure/config"
)

func TestEngineOptions(t *testing.T) {
	cfg := config.DefaultConfig().Engine

	assert.Len(t, EngineOptions(cfg), 3)

	cfg.PreemptPolicy = config.PreemptPolicyMostSpecific
	assert.Len(t, EngineOptions(cfg), 4)
}

func TestMsToNanos(t *testing.T) {
	assert.Equal(t, int64(250_000_000), msToNanos(250))
	assert.Equal(t, int64(0), msToNanos(0))
}
