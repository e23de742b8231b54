package core

import (
	"fmt"
	"time"
)

// LogEntry represents a single log record held by the buffer.
// Entries are immutable once created; Formatted is rendered exactly once
// at creation so readers never pay for re-rendering.
type LogEntry struct {
	Time      time.Time `json:"time"`
	Level     Level     `json:"level"`
	Component string    `json:"component"`
	Function  string    `json:"function,omitempty"`
	Message   string    `json:"message"`
	Formatted string    `json:"formatted"`
}

// NewEntry captures a log entry at the current wall-clock time.
// An empty component falls back to the sentinel DefaultComponent.
func NewEntry(level Level, message, component, function string) LogEntry {
	if component == "" {
		component = DefaultComponent
	}
	now := time.Now()
	return LogEntry{
		Time:      now,
		Level:     level,
		Component: component,
		Function:  function,
		Message:   message,
		Formatted: fmt.Sprintf("[%s] [%s] %s", now.Format(TimestampLayout), component, message),
	}
}
