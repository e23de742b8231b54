package asfmlog

import (
	"strings"

	"asfmlog/src/internal/core"
)

// Config enumerates every recognized logger option. Invalid values never
// fail configuration; each is validated field by field and degrades the
// affected feature to disabled.
type Config struct {
	// EnableDatabase forwards entries to the remote backend named by
	// DatabaseConnection
	EnableDatabase     bool
	DatabaseConnection string

	// EnableSharedMemory is accepted for compatibility; no shared-memory
	// transport exists in this build, so it degrades to a disabled sink
	EnableSharedMemory bool
	SharedMemoryName   string

	// ConsoleOutput mirrors entries to stdout/stderr
	ConsoleOutput bool

	// LogFile enables rotating file output when non-empty
	LogFile          string
	MaxFileSizeBytes int64
	MaxFiles         int

	// MinLogLevel gates sink forwarding; the buffer itself records every
	// level. Unknown names fall back to INFO.
	MinLogLevel string

	// BackendAuthSecret, when set, has the backend sink sign a bearer
	// token per request
	BackendAuthSecret string

	// BackendMaxEventsPerSecond caps backend forwarding; zero means
	// unlimited
	BackendMaxEventsPerSecond float64
}

// DefaultConfig returns the configuration applied to a fresh logger:
// console only, INFO threshold.
func DefaultConfig() Config {
	return Config{
		ConsoleOutput:    true,
		MaxFileSizeBytes: 10 * 1024 * 1024,
		MaxFiles:         5,
		MinLogLevel:      "INFO",
	}
}

// minLevel resolves the forwarding threshold, defaulting to INFO for
// unknown names.
func (c Config) minLevel() core.Level {
	level, ok := core.ParseLevel(c.MinLogLevel)
	if !ok {
		return core.LevelInfo
	}
	return level
}

// fileSinkUsable reports whether the file options are complete enough to
// build a file sink; anything less degrades to disabled.
func (c Config) fileSinkUsable() bool {
	return strings.TrimSpace(c.LogFile) != "" && c.MaxFileSizeBytes > 0 && c.MaxFiles > 0
}

// backendUsable reports whether the database options name a reachable
// looking backend endpoint.
func (c Config) backendUsable() bool {
	conn := strings.TrimSpace(c.DatabaseConnection)
	return c.EnableDatabase &&
		(strings.HasPrefix(conn, "http://") || strings.HasPrefix(conn, "https://"))
}
