package sink

import (
	"context"
	"sync/atomic"
	"time"

	"asfmlog/src/internal/core"
)

// NoopSink is the disabled sink variant. Configuration that names a
// capability this build cannot provide degrades to a noop sink instead
// of failing, so the rest of the forwarder never special-cases absence.
type NoopSink struct {
	input     chan core.LogEntry
	done      chan struct{}
	startTime time.Time
	reason    string

	totalProcessed atomic.Uint64
}

// NewNoopSink creates a disabled sink. The reason is surfaced in stats.
func NewNoopSink(reason string) *NoopSink {
	return &NoopSink{
		input:     make(chan core.LogEntry, 1),
		done:      make(chan struct{}),
		startTime: time.Now(),
		reason:    reason,
	}
}

func (n *NoopSink) Input() chan<- core.LogEntry {
	return n.input
}

func (n *NoopSink) Start(ctx context.Context) error {
	go func() {
		for {
			select {
			case _, ok := <-n.input:
				if !ok {
					return
				}
				n.totalProcessed.Add(1)
			case <-ctx.Done():
				return
			case <-n.done:
				return
			}
		}
	}()
	return nil
}

func (n *NoopSink) Stop() {
	close(n.done)
}

func (n *NoopSink) GetStats() SinkStats {
	return SinkStats{
		Type:           "noop",
		TotalProcessed: n.totalProcessed.Load(),
		StartTime:      n.startTime,
		Details: map[string]any{
			"reason": n.reason,
		},
	}
}
