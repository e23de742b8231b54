package filter

import (
	"sync/atomic"

	"asfmlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Filter matches log entries against an optional component and an optional
// level. An empty criterion matches everything; component comparison is
// exact, level comparison is case-insensitive on the name.
type Filter struct {
	component string
	level     core.Level
	hasLevel  bool
	matchNone bool
	logger    *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalMatched   atomic.Uint64
}

// New creates a filter from string criteria. An unrecognized level name
// is a criterion no entry can satisfy: the filter matches nothing and
// yields an empty result, never an error.
func New(component, level string, logger *log.Logger) *Filter {
	f := &Filter{
		component: component,
		logger:    logger,
	}

	if level != "" {
		parsed, ok := core.ParseLevel(level)
		if ok {
			f.level = parsed
			f.hasLevel = true
		} else {
			f.matchNone = true
			logger.Warn("msg", "Unknown level in filter, matches nothing",
				"component", "filter",
				"level", level)
		}
	}

	return f
}

// Apply reports whether the entry passes every supplied criterion.
func (f *Filter) Apply(entry core.LogEntry) bool {
	f.totalProcessed.Add(1)

	if f.matchNone {
		return false
	}
	if f.component != "" && entry.Component != f.component {
		return false
	}
	if f.hasLevel && entry.Level != f.level {
		return false
	}

	f.totalMatched.Add(1)
	return true
}

// GetStats returns filter statistics
func (f *Filter) GetStats() map[string]any {
	stats := map[string]any{
		"component":       f.component,
		"total_processed": f.totalProcessed.Load(),
		"total_matched":   f.totalMatched.Load(),
	}
	if f.hasLevel {
		stats["level"] = f.level.String()
	}
	return stats
}
