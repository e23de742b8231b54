package filter

import (
	"sync/atomic"

	"asfmlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Chain applies a sequence of filters conjunctively: an entry passes only
// if every filter in the chain matches it.
type Chain struct {
	filters []*Filter
	logger  *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalPassed    atomic.Uint64
}

// NewChain creates a chain from already-constructed filters.
func NewChain(logger *log.Logger, filters ...*Filter) *Chain {
	return &Chain{
		filters: filters,
		logger:  logger,
	}
}

// Apply runs an entry through all filters in order.
func (c *Chain) Apply(entry core.LogEntry) bool {
	c.totalProcessed.Add(1)

	// No filters means pass everything
	for _, f := range c.filters {
		if !f.Apply(entry) {
			return false
		}
	}

	c.totalPassed.Add(1)
	return true
}

// Select returns the entries of a snapshot that pass the chain, then
// truncates to the most recent limit entries. A non-positive limit uses
// the default. Order is preserved.
func (c *Chain) Select(entries []core.LogEntry, limit int) []core.LogEntry {
	if limit <= 0 {
		limit = core.DefaultQueryLimit
	}

	matched := make([]core.LogEntry, 0, len(entries))
	for _, e := range entries {
		if c.Apply(e) {
			matched = append(matched, e)
		}
	}

	if len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched
}

// GetStats returns aggregated statistics for the chain.
func (c *Chain) GetStats() map[string]any {
	filterStats := make([]map[string]any, len(c.filters))
	for i, f := range c.filters {
		filterStats[i] = f.GetStats()
	}

	return map[string]any{
		"filter_count":    len(c.filters),
		"total_processed": c.totalProcessed.Load(),
		"total_passed":    c.totalPassed.Load(),
		"filters":         filterStats,
	}
}
