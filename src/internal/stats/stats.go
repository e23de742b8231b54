package stats

import (
	"asfmlog/src/internal/core"
)

// Statistics summarizes one buffer snapshot.
type Statistics struct {
	TotalMessages         int            `json:"total_messages"`
	LevelDistribution     map[string]int `json:"level_distribution,omitempty"`
	ComponentDistribution map[string]int `json:"component_distribution,omitempty"`
	TimeRangeSeconds      float64        `json:"time_range_seconds"`
	MessagesPerSecond     float64        `json:"messages_per_second"`
}

// Collect computes statistics over a snapshot. An empty snapshot yields
// TotalMessages 0 with no distributions; it never fails.
func Collect(entries []core.LogEntry) Statistics {
	if len(entries) == 0 {
		return Statistics{}
	}

	levels := make(map[string]int)
	components := make(map[string]int)
	for _, e := range entries {
		levels[e.Level.String()]++
		components[e.Component]++
	}

	var timeRange float64
	if len(entries) >= 2 {
		timeRange = entries[len(entries)-1].Time.Sub(entries[0].Time).Seconds()
	}
	// Concurrent producers capture timestamps before the buffer lock,
	// so insertion order can disagree with capture order by a hair
	if timeRange < 0 {
		timeRange = 0
	}

	// Floor the range at one second so burst traffic within the same
	// second does not report an explosive rate
	divisor := timeRange
	if divisor < 1 {
		divisor = 1
	}

	return Statistics{
		TotalMessages:         len(entries),
		LevelDistribution:     levels,
		ComponentDistribution: components,
		TimeRangeSeconds:      timeRange,
		MessagesPerSecond:     float64(len(entries)) / divisor,
	}
}
