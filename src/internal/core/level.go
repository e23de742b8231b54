package core

import "strings"

// Level is the ordered severity of a log entry
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
)

// Pre-computed strings, indexed by level value
var levelNames = [...]string{
	"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "CRITICAL",
}

// String returns the canonical upper-case name of the level
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLevel converts a level name to a Level, case-insensitively.
// The second return value reports whether the name was recognized.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, true
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	case "CRITICAL":
		return LevelCritical, true
	default:
		return LevelInfo, false
	}
}
