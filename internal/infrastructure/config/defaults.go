package config

// Default configuration constants
const (
	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultMaxLogSizeMB  = 10 // megabytes
	defaultMaxLogBackups = 3
	defaultMaxLogAgeDays = 7 // days

	// Journal defaults
	defaultRetentionDays = 30 // days

	// Engine defaults
	defaultCoincidenceWindowMs  = 100
	defaultLongPressDelayMs     = 500
	defaultDoublePressTimeoutMs = 300
	defaultSequenceTimeoutMs    = 1000
	defaultSequenceInterrupt    = "reset"
	defaultLaneQueueSize        = 64
	defaultPreemptPolicy        = PreemptPolicyNone

	// Executor defaults
	defaultShell             = "/bin/sh"
	defaultCommandTimeoutMs  = 5000
	defaultVirtualDeviceName = "keymapper virtual keyboard"
	defaultKeyDelayMs        = 5

	// World state defaults
	defaultPollIntervalMs = 2000
)

// Preempt policy names.
const (
	PreemptPolicyNone         = "none"
	PreemptPolicyMostSpecific = "most_specific"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			EnableFileLog: false,
			MaxSizeMB:     defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxLogBackups,
			MaxAge:        defaultMaxLogAgeDays,
			Compress:      true,
		},
		Database: DatabaseConfig{
			Journal:       true,
			RetentionDays: defaultRetentionDays,
		},
		Engine: EngineConfig{
			CoincidenceWindowMs:    defaultCoincidenceWindowMs,
			LongPressDelayMs:       defaultLongPressDelayMs,
			DoublePressTimeoutMs:   defaultDoublePressTimeoutMs,
			SequenceTimeoutMs:      defaultSequenceTimeoutMs,
			SequenceInterrupt:      defaultSequenceInterrupt,
			MaxConsecutiveFailures: 0,
			LaneQueueSize:          defaultLaneQueueSize,
			PreemptPolicy:          defaultPreemptPolicy,
		},
		Input: InputConfig{
			Devices: []string{},
			Grab:    false,
		},
		Executor: ExecutorConfig{
			Shell:             defaultShell,
			CommandTimeoutMs:  defaultCommandTimeoutMs,
			VirtualDeviceName: defaultVirtualDeviceName,
			KeyDelayMs:        defaultKeyDelayMs,
			SystemCommands: map[string]string{
				"lock_screen": "loginctl lock-session",
				"suspend":     "systemctl suspend",
			},
		},
		WorldState: WorldStateConfig{
			DBus:           true,
			PollIntervalMs: defaultPollIntervalMs,
			Flags:          map[string]bool{},
		},
		KeyMapsFiles: []string{},
		KeyMaps:      []KeyMapConfig{},
	}
}
