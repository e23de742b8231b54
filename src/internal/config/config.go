package config

import (
	"asfmlog/src/asfmlog"
)

// Config is the on-disk configuration of the demo binary.
type Config struct {
	Application string        `toml:"application"`
	Process     string        `toml:"process"`
	Capacity    int           `toml:"capacity"`
	Logger      LoggerConfig  `toml:"logger"`
	Monitor     MonitorConfig `toml:"monitor"`
	Export      ExportConfig  `toml:"export"`
}

type LoggerConfig struct {
	EnableDatabase     bool   `toml:"enable_database"`
	DatabaseConnection string `toml:"database_connection"`
	EnableSharedMemory bool   `toml:"enable_shared_memory"`
	SharedMemoryName   string `toml:"shared_memory_name"`
	ConsoleOutput      bool   `toml:"console_output"`
	LogFile            string `toml:"log_file"`
	MaxFileSizeBytes   int64  `toml:"max_file_size_bytes"`
	MaxFiles           int    `toml:"max_files"`
	MinLogLevel        string `toml:"min_log_level"`

	BackendAuthSecret         string  `toml:"backend_auth_secret"`
	BackendMaxEventsPerSecond float64 `toml:"backend_max_events_per_second"`
}

type MonitorConfig struct {
	Enabled         bool    `toml:"enabled"`
	IntervalSeconds float64 `toml:"interval_seconds"`
}

type ExportConfig struct {
	// Path, when set, exports the buffer there on shutdown
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// LoggerOptions converts the file representation to the library config.
func (c *Config) LoggerOptions() asfmlog.Config {
	return asfmlog.Config{
		EnableDatabase:            c.Logger.EnableDatabase,
		DatabaseConnection:        c.Logger.DatabaseConnection,
		EnableSharedMemory:        c.Logger.EnableSharedMemory,
		SharedMemoryName:          c.Logger.SharedMemoryName,
		ConsoleOutput:             c.Logger.ConsoleOutput,
		LogFile:                   c.Logger.LogFile,
		MaxFileSizeBytes:          c.Logger.MaxFileSizeBytes,
		MaxFiles:                  c.Logger.MaxFiles,
		MinLogLevel:               c.Logger.MinLogLevel,
		BackendAuthSecret:         c.Logger.BackendAuthSecret,
		BackendMaxEventsPerSecond: c.Logger.BackendMaxEventsPerSecond,
	}
}
