package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"asfmlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// stopGrace bounds how long Stop waits for an in-flight callback
const stopGrace = 2 * time.Second

// Callback receives newly observed entries in insertion order.
type Callback func([]core.LogEntry)

// SnapshotFunc supplies a consistent copy of the buffer contents.
type SnapshotFunc func() []core.LogEntry

// Poller periodically diffs buffer snapshots and delivers newly observed
// entries to a callback. Detection is by capture timestamp against a
// watermark, so entries both inserted and evicted between two wake-ups
// are silently missed: an accepted best-effort property of polling a
// bounded buffer, not a defect.
//
// The poll loop never invokes the callback itself; batches travel over a
// channel to a dispatch goroutine, so a slow observer can delay or drop
// later batches but cannot stall polling or Stop.
type Poller struct {
	snapshot SnapshotFunc
	callback Callback
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	loopWG  sync.WaitGroup

	dispatcherIdle atomic.Bool

	// Statistics
	totalPolls     atomic.Uint64
	totalDelivered atomic.Uint64
	totalDropped   atomic.Uint64
}

// New creates a poller. A non-positive interval uses the default.
func New(snapshot SnapshotFunc, callback Callback, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = core.DefaultPollInterval
	}
	return &Poller{
		snapshot: snapshot,
		callback: callback,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the poll loop. It is idempotent while running: a second
// Start does not spawn a duplicate poller.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.logger.Debug("msg", "Poller already running, start ignored",
			"component", "monitor")
		return
	}

	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true

	// Small batch backlog; a stuck callback drops batches rather than
	// blocking the poll loop
	batches := make(chan []core.LogEntry, 4)

	// Watermark: entries at or before this instant were already seen.
	// Seeded before Start returns so a record that races the loop
	// startup is still picked up.
	watermark := time.Now()

	p.dispatcherIdle.Store(true)
	p.loopWG.Add(1)
	go p.pollLoop(pollCtx, batches, watermark)
	go p.dispatchLoop(pollCtx, batches)

	p.logger.Info("msg", "Monitoring poller started",
		"component", "monitor",
		"interval", p.interval.String())
}

// Stop halts polling. After it returns no new callback invocation will
// start; an invocation already in flight is given a bounded grace period
// and then abandoned.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	p.mu.Unlock()

	cancel()

	// Wait for the poll loop; it never blocks on the callback so this
	// returns within one interval
	p.loopWG.Wait()

	// Give the dispatcher a bounded window to finish an in-flight
	// callback, then abandon it
	deadline := time.Now().Add(stopGrace)
	for time.Now().Before(deadline) {
		if p.dispatcherIdle.Load() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	p.logger.Info("msg", "Monitoring poller stopped",
		"component", "monitor",
		"total_polls", p.totalPolls.Load(),
		"total_delivered", p.totalDelivered.Load())
}

// Running reports whether the poller is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// GetStats returns poller statistics
func (p *Poller) GetStats() map[string]any {
	return map[string]any{
		"running":         p.Running(),
		"interval":        p.interval.String(),
		"total_polls":     p.totalPolls.Load(),
		"total_delivered": p.totalDelivered.Load(),
		"total_dropped":   p.totalDropped.Load(),
	}
}

func (p *Poller) pollLoop(ctx context.Context, batches chan<- []core.LogEntry, watermark time.Time) {
	defer p.loopWG.Done()
	defer close(batches)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.totalPolls.Add(1)

			fresh := newerThan(p.snapshot(), watermark)
			if len(fresh) == 0 {
				continue
			}
			watermark = fresh[len(fresh)-1].Time

			select {
			case batches <- fresh:
				p.totalDelivered.Add(uint64(len(fresh)))
			default:
				p.totalDropped.Add(uint64(len(fresh)))
				p.logger.Warn("msg", "Observer backlog full, batch dropped",
					"component", "monitor",
					"batch_size", len(fresh))
			}
		}
	}
}

func (p *Poller) dispatchLoop(ctx context.Context, batches <-chan []core.LogEntry) {
	for batch := range batches {
		// Mark busy before the cancellation check. Stop cancels first
		// and scans idleness second, so a dispatcher that passes the
		// check here is either observed as busy by Stop or has already
		// seen the cancellation; a callback can never start after Stop
		// returned.
		p.dispatcherIdle.Store(false)
		if ctx.Err() == nil {
			p.invoke(batch)
		}
		p.dispatcherIdle.Store(true)
	}
}

// invoke shields the poller from a panicking observer
func (p *Poller) invoke(batch []core.LogEntry) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("msg", "Monitoring callback panicked",
				"component", "monitor",
				"panic", r)
		}
	}()
	p.callback(batch)
}

// newerThan returns the suffix of entries with capture time strictly
// after the watermark, preserving insertion order.
func newerThan(entries []core.LogEntry, watermark time.Time) []core.LogEntry {
	// Entries are insertion-ordered and timestamps are capture-ordered,
	// so scan from the tail for the boundary
	i := len(entries)
	for i > 0 && entries[i-1].Time.After(watermark) {
		i--
	}
	if i == len(entries) {
		return nil
	}
	out := make([]core.LogEntry, len(entries)-i)
	copy(out, entries[i:])
	return out
}
