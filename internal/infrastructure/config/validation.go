package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values.
// Key map entries are checked when they are converted to entities.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateDatabase(config)...)
	validationErrors = append(validationErrors, validateEngine(config)...)
	validationErrors = append(validationErrors, validateExecutor(config)...)
	validationErrors = append(validationErrors, validateWorldState(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.EnableFileLog && config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1 when file logging is enabled")
	}
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error, fatal (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "text", "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: text, json, console (got: %s)",
			config.Logging.Format,
		))
	}
	return validationErrors
}

func validateDatabase(config *Config) []string {
	if config.Database.RetentionDays < 0 {
		return []string{"database.retention_days must be non-negative"}
	}
	return nil
}

func validateEngine(config *Config) []string {
	var validationErrors []string
	e := config.Engine

	windows := []struct {
		key   string
		value int
	}{
		{"engine.coincidence_window_ms", e.CoincidenceWindowMs},
		{"engine.long_press_delay_ms", e.LongPressDelayMs},
		{"engine.double_press_timeout_ms", e.DoublePressTimeoutMs},
		{"engine.sequence_timeout_ms", e.SequenceTimeoutMs},
	}
	for _, w := range windows {
		if w.value <= 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("%s must be positive (got: %d)", w.key, w.value))
		}
	}

	switch e.SequenceInterrupt {
	case "reset", "ignore":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"engine.sequence_interrupt must be one of: reset, ignore (got: %s)",
			e.SequenceInterrupt,
		))
	}
	if e.MaxConsecutiveFailures < 0 {
		validationErrors = append(validationErrors, "engine.max_consecutive_failures must be non-negative")
	}
	if e.LaneQueueSize < 1 {
		validationErrors = append(validationErrors, "engine.lane_queue_size must be at least 1")
	}
	switch e.PreemptPolicy {
	case PreemptPolicyNone, PreemptPolicyMostSpecific:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"engine.preempt_policy must be one of: none, most_specific (got: %s)",
			e.PreemptPolicy,
		))
	}
	return validationErrors
}

func validateExecutor(config *Config) []string {
	var validationErrors []string
	if config.Executor.CommandTimeoutMs < 0 {
		validationErrors = append(validationErrors, "executor.command_timeout_ms must be non-negative")
	}
	if config.Executor.KeyDelayMs < 0 {
		validationErrors = append(validationErrors, "executor.key_delay_ms must be non-negative")
	}
	for id, cmd := range config.Executor.SystemCommands {
		if strings.TrimSpace(cmd) == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("executor.system_commands.%s cannot be empty", id))
		}
	}
	return validationErrors
}

func validateWorldState(config *Config) []string {
	if config.WorldState.PollIntervalMs < 0 {
		return []string{"world_state.poll_interval_ms must be non-negative"}
	}
	return nil
}
