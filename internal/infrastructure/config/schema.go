package config

// Config represents the complete configuration for keymapper.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" toml:"logging"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database" toml:"database"`
	// Engine holds the default trigger windows and dispatch tuning.
	Engine EngineConfig `mapstructure:"engine" yaml:"engine" toml:"engine"`
	// Input selects the evdev devices to read.
	Input InputConfig `mapstructure:"input" yaml:"input" toml:"input"`
	// Executor configures how actions are performed.
	Executor   ExecutorConfig   `mapstructure:"executor" yaml:"executor" toml:"executor"`
	WorldState WorldStateConfig `mapstructure:"world_state" yaml:"world_state" toml:"world_state"`
	// KeyMapsFiles lists extra YAML or TOML files holding more key maps.
	// Relative paths are resolved against the config directory.
	KeyMapsFiles []string       `mapstructure:"keymaps_files" yaml:"keymaps_files" toml:"keymaps_files"`
	KeyMaps      []KeyMapConfig `mapstructure:"keymaps" yaml:"keymaps" toml:"keymaps"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level" toml:"level"`
	Format        string `mapstructure:"format" yaml:"format" toml:"format"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log"`
	// LogDir defaults to $XDG_STATE_HOME/keymapper/logs.
	LogDir     string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age" toml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress" toml:"compress"`
}

// DatabaseConfig holds the dispatch journal settings.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/keymapper/keymapper.sqlite.
	Path string `mapstructure:"path" yaml:"path" toml:"path"`
	// Journal records every execution when enabled.
	Journal       bool `mapstructure:"journal" yaml:"journal" toml:"journal"`
	RetentionDays int  `mapstructure:"retention_days" yaml:"retention_days" toml:"retention_days"`
}

// EngineConfig holds engine-wide defaults. Triggers may override the windows.
type EngineConfig struct {
	CoincidenceWindowMs  int    `mapstructure:"coincidence_window_ms" yaml:"coincidence_window_ms" toml:"coincidence_window_ms"`
	LongPressDelayMs     int    `mapstructure:"long_press_delay_ms" yaml:"long_press_delay_ms" toml:"long_press_delay_ms"`
	DoublePressTimeoutMs int    `mapstructure:"double_press_timeout_ms" yaml:"double_press_timeout_ms" toml:"double_press_timeout_ms"`
	SequenceTimeoutMs    int    `mapstructure:"sequence_timeout_ms" yaml:"sequence_timeout_ms" toml:"sequence_timeout_ms"`
	SequenceInterrupt    string `mapstructure:"sequence_interrupt" yaml:"sequence_interrupt" toml:"sequence_interrupt"`
	// MaxConsecutiveFailures cancels a running action chain after that many
	// failed executions in a row (0 = never).
	MaxConsecutiveFailures int `mapstructure:"max_consecutive_failures" yaml:"max_consecutive_failures" toml:"max_consecutive_failures"`
	LaneQueueSize          int `mapstructure:"lane_queue_size" yaml:"lane_queue_size" toml:"lane_queue_size"`
	// PreemptPolicy is "none" or "most_specific".
	PreemptPolicy string `mapstructure:"preempt_policy" yaml:"preempt_policy" toml:"preempt_policy"`
}

// InputConfig selects input devices.
type InputConfig struct {
	// Devices lists device paths or names; empty means every keyboard.
	Devices []string `mapstructure:"devices" yaml:"devices" toml:"devices"`
	// Grab takes exclusive access so mapped keys do not reach other clients.
	Grab bool `mapstructure:"grab" yaml:"grab" toml:"grab"`
}

// ExecutorConfig configures action execution.
type ExecutorConfig struct {
	Shell             string `mapstructure:"shell" yaml:"shell" toml:"shell"`
	CommandTimeoutMs  int    `mapstructure:"command_timeout_ms" yaml:"command_timeout_ms" toml:"command_timeout_ms"`
	VirtualDeviceName string `mapstructure:"virtual_device_name" yaml:"virtual_device_name" toml:"virtual_device_name"`
	// KeyDelayMs is the pause between down and up of a tapped key.
	KeyDelayMs int `mapstructure:"key_delay_ms" yaml:"key_delay_ms" toml:"key_delay_ms"`
	// SystemCommands maps system action ids to shell commands.
	SystemCommands map[string]string `mapstructure:"system_commands" yaml:"system_commands" toml:"system_commands"`
}

// WorldStateConfig configures the constraint inputs.
type WorldStateConfig struct {
	DBus           bool `mapstructure:"dbus" yaml:"dbus" toml:"dbus"`
	PollIntervalMs int  `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms" toml:"poll_interval_ms"`
	// Flags seeds the flag_set / flag_unset constraints.
	Flags map[string]bool `mapstructure:"flags" yaml:"flags" toml:"flags"`
}

// KeyMapConfig is one [[keymaps]] entry.
type KeyMapConfig struct {
	ID   string `mapstructure:"id" yaml:"id" toml:"id"`
	Name string `mapstructure:"name" yaml:"name" toml:"name,omitempty"`
	// Enabled defaults to true.
	Enabled        *bool              `mapstructure:"enabled" yaml:"enabled" toml:"enabled,omitempty"`
	Trigger        TriggerConfig      `mapstructure:"trigger" yaml:"trigger" toml:"trigger"`
	Actions        []ActionConfig     `mapstructure:"actions" yaml:"actions" toml:"actions"`
	Constraints    []ConstraintConfig `mapstructure:"constraints" yaml:"constraints" toml:"constraints,omitempty"`
	ConstraintMode string             `mapstructure:"constraint_mode" yaml:"constraint_mode" toml:"constraint_mode,omitempty"`
}

// TriggerConfig describes what must be pressed.
type TriggerConfig struct {
	// Mode is single, parallel or sequence (default single).
	Mode                 string             `mapstructure:"mode" yaml:"mode" toml:"mode,omitempty"`
	Keys                 []TriggerKeyConfig `mapstructure:"keys" yaml:"keys" toml:"keys"`
	LongPressDelayMs     int                `mapstructure:"long_press_delay_ms" yaml:"long_press_delay_ms" toml:"long_press_delay_ms,omitempty"`
	DoublePressTimeoutMs int                `mapstructure:"double_press_timeout_ms" yaml:"double_press_timeout_ms" toml:"double_press_timeout_ms,omitempty"`
	SequenceTimeoutMs    int                `mapstructure:"sequence_timeout_ms" yaml:"sequence_timeout_ms" toml:"sequence_timeout_ms,omitempty"`
	SequenceInterrupt    string             `mapstructure:"sequence_interrupt" yaml:"sequence_interrupt" toml:"sequence_interrupt,omitempty"`
}

// TriggerKeyConfig is one key of a trigger.
type TriggerKeyConfig struct {
	// Key is an evdev name such as KEY_VOLUMEUP, or a numeric code.
	Key string `mapstructure:"key" yaml:"key" toml:"key"`
	// Click is short, long or double (default short).
	Click string `mapstructure:"click" yaml:"click" toml:"click,omitempty"`
	// Device restricts the key to one device; empty matches any device.
	Device string `mapstructure:"device" yaml:"device" toml:"device,omitempty"`
}

// ActionConfig is one entry of a key map's action list.
type ActionConfig struct {
	// ID defaults to a stable id derived from the key map id and position.
	ID string `mapstructure:"id" yaml:"id" toml:"id,omitempty"`
	// Kind is key, text, command or system. It is inferred when empty.
	Kind      string   `mapstructure:"kind" yaml:"kind" toml:"kind,omitempty"`
	Key       string   `mapstructure:"key" yaml:"key" toml:"key,omitempty"`
	Modifiers []string `mapstructure:"modifiers" yaml:"modifiers" toml:"modifiers,omitempty"`
	Text      string   `mapstructure:"text" yaml:"text" toml:"text,omitempty"`
	Command   string   `mapstructure:"command" yaml:"command" toml:"command,omitempty"`
	Args      []string `mapstructure:"args" yaml:"args" toml:"args,omitempty"`
	System    string   `mapstructure:"system" yaml:"system" toml:"system,omitempty"`

	Multiplier        int             `mapstructure:"multiplier" yaml:"multiplier" toml:"multiplier,omitempty"`
	DelayBeforeNextMs int             `mapstructure:"delay_before_next_ms" yaml:"delay_before_next_ms" toml:"delay_before_next_ms,omitempty"`
	Repeat            *RepeatConfig   `mapstructure:"repeat" yaml:"repeat" toml:"repeat,omitempty"`
	HoldDown          *HoldDownConfig `mapstructure:"hold_down" yaml:"hold_down" toml:"hold_down,omitempty"`
}

// RepeatConfig re-dispatches an action.
type RepeatConfig struct {
	RateMs  int    `mapstructure:"rate_ms" yaml:"rate_ms" toml:"rate_ms"`
	DelayMs int    `mapstructure:"delay_ms" yaml:"delay_ms" toml:"delay_ms,omitempty"`
	Stop    string `mapstructure:"stop" yaml:"stop" toml:"stop"`
	Limit   int    `mapstructure:"limit" yaml:"limit" toml:"limit,omitempty"`
}

// HoldDownConfig keeps an action's key down.
type HoldDownConfig struct {
	DurationMs int    `mapstructure:"duration_ms" yaml:"duration_ms" toml:"duration_ms,omitempty"`
	Stop       string `mapstructure:"stop" yaml:"stop" toml:"stop"`
}

// ConstraintConfig is one condition over the world state.
type ConstraintConfig struct {
	Kind  string `mapstructure:"kind" yaml:"kind" toml:"kind"`
	Value string `mapstructure:"value" yaml:"value" toml:"value,omitempty"`
}

// keyMapsFile is the layout of a file listed in keymaps_files.
type keyMapsFile struct {
	KeyMaps []KeyMapConfig `yaml:"keymaps" toml:"keymaps"`
}
