package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
}

// NewManager creates a new configuration manager. An empty configFile
// searches the XDG config directory and the working directory.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// KEYMAPPER_ENGINE_LONG_PRESS_DELAY_MS overrides engine.long_press_delay_ms, etc.
	v.SetEnvPrefix("KEYMAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "KEYMAPPER_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind KEYMAPPER_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "KEYMAPPER_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind KEYMAPPER_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		callbacks:  make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.configFile == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := m.finishConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if m.configFile == "" && errors.As(err, &configFileNotFoundError) {
		if createErr := m.createDefaultConfig(); createErr != nil {
			configDir, _ := GetConfigDir()
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
		return nil
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		configFile = m.configFile
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

// finishConfig fills derived paths, normalizes and validates.
func (m *Manager) finishConfig(config *Config) error {
	if err := ensurePaths(config, m.configDir()); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func (m *Manager) configDir() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return filepath.Dir(used)
	}
	if m.configFile != "" {
		return filepath.Dir(m.configFile)
	}
	dir, _ := GetConfigDir()
	return dir
}

func ensurePaths(config *Config, configDir string) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	for i, file := range config.KeyMapsFiles {
		if file != "" && !filepath.IsAbs(file) {
			config.KeyMapsFiles[i] = filepath.Join(configDir, file)
		}
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}

	switch strings.ToLower(config.Engine.SequenceInterrupt) {
	case "", "reset":
		config.Engine.SequenceInterrupt = "reset"
	case "ignore":
		config.Engine.SequenceInterrupt = "ignore"
	}

	switch strings.ToLower(config.Engine.PreemptPolicy) {
	case "", PreemptPolicyNone:
		config.Engine.PreemptPolicy = PreemptPolicyNone
	case PreemptPolicyMostSpecific:
		config.Engine.PreemptPolicy = PreemptPolicyMostSpecific
	}

	config.Executor.Shell = strings.TrimSpace(config.Executor.Shell)
	if config.Executor.Shell == "" {
		config.Executor.Shell = defaultShell
	}

	devices := config.Input.Devices[:0]
	for _, d := range config.Input.Devices {
		if d = strings.TrimSpace(d); d != "" {
			devices = append(devices, d)
		}
	}
	config.Input.Devices = devices
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.configFile
}

// createDefaultConfig writes the default configuration file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Database.Path and Logging.LogDir are derived in Load.
	m.setLoggingDefaults(defaults)
	m.setDatabaseDefaults(defaults)
	m.setEngineDefaults(defaults)
	m.setInputDefaults(defaults)
	m.setExecutorDefaults(defaults)
	m.setWorldStateDefaults(defaults)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setDatabaseDefaults(defaults *Config) {
	m.viper.SetDefault("database.journal", defaults.Database.Journal)
	m.viper.SetDefault("database.retention_days", defaults.Database.RetentionDays)
}

func (m *Manager) setEngineDefaults(defaults *Config) {
	m.viper.SetDefault("engine.coincidence_window_ms", defaults.Engine.CoincidenceWindowMs)
	m.viper.SetDefault("engine.long_press_delay_ms", defaults.Engine.LongPressDelayMs)
	m.viper.SetDefault("engine.double_press_timeout_ms", defaults.Engine.DoublePressTimeoutMs)
	m.viper.SetDefault("engine.sequence_timeout_ms", defaults.Engine.SequenceTimeoutMs)
	m.viper.SetDefault("engine.sequence_interrupt", defaults.Engine.SequenceInterrupt)
	m.viper.SetDefault("engine.max_consecutive_failures", defaults.Engine.MaxConsecutiveFailures)
	m.viper.SetDefault("engine.lane_queue_size", defaults.Engine.LaneQueueSize)
	m.viper.SetDefault("engine.preempt_policy", defaults.Engine.PreemptPolicy)
}

func (m *Manager) setInputDefaults(defaults *Config) {
	m.viper.SetDefault("input.devices", defaults.Input.Devices)
	m.viper.SetDefault("input.grab", defaults.Input.Grab)
}

func (m *Manager) setExecutorDefaults(defaults *Config) {
	m.viper.SetDefault("executor.shell", defaults.Executor.Shell)
	m.viper.SetDefault("executor.command_timeout_ms", defaults.Executor.CommandTimeoutMs)
	m.viper.SetDefault("executor.virtual_device_name", defaults.Executor.VirtualDeviceName)
	m.viper.SetDefault("executor.key_delay_ms", defaults.Executor.KeyDelayMs)
	m.viper.SetDefault("executor.system_commands", defaults.Executor.SystemCommands)
}

func (m *Manager) setWorldStateDefaults(defaults *Config) {
	m.viper.SetDefault("world_state.dbus", defaults.WorldState.DBus)
	m.viper.SetDefault("world_state.poll_interval_ms", defaults.WorldState.PollIntervalMs)
	m.viper.SetDefault("world_state.flags", defaults.WorldState.Flags)
}
