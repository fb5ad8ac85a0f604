package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig_PreemptPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		wantErr bool
	}{
		{name: "none", policy: PreemptPolicyNone, wantErr: false},
		{name: "most_specific", policy: PreemptPolicyMostSpecific, wantErr: false},
		{name: "invalid", policy: "loudest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Engine.PreemptPolicy = tt.policy

			err := validateConfig(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "engine.preempt_policy")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateConfig_EngineWindowsMustBePositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.LongPressDelayMs = 0
	cfg.Engine.CoincidenceWindowMs = -5

	err := validateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.long_press_delay_ms must be positive")
	assert.Contains(t, err.Error(), "engine.coincidence_window_ms must be positive")
}

func TestValidateConfig_ListsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"
	cfg.Database.RetentionDays = -1
	cfg.Executor.SystemCommands["reboot"] = "  "

	err := validateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "database.retention_days")
	assert.Contains(t, err.Error(), "executor.system_commands.reboot")
}
