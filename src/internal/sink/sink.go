package sink

import (
	"context"
	"time"

	"asfmlog/src/internal/core"
)

// Sink represents an output destination for log entries. Delivery is
// best effort: a sink failure never reaches the producer that recorded
// the entry.
type Sink interface {
	// Input returns the channel for sending log entries to this sink
	Input() chan<- core.LogEntry

	// Start begins processing log entries
	Start(ctx context.Context) error

	// Stop gracefully shuts down the sink
	Stop()

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type           string
	TotalProcessed uint64
	TotalDropped   uint64
	TotalFailed    uint64
	StartTime      time.Time
	LastProcessed  time.Time
	Details        map[string]any
}

// Offer performs a non-blocking send to a sink's input channel and
// reports whether the entry was accepted. Recording must never block on
// a slow sink, so a full channel drops the entry.
func Offer(s Sink, entry core.LogEntry) bool {
	select {
	case s.Input() <- entry:
		return true
	default:
		return false
	}
}
