// Package asfmlog provides an application-embedded log buffer: bounded
// recent history with filtering, statistics, file export, best-effort
// sink forwarding, and near-real-time change notification.
package asfmlog

import (
	"context"
	"sync"
	"time"

	"asfmlog/src/internal/buffer"
	"asfmlog/src/internal/core"
	"asfmlog/src/internal/export"
	"asfmlog/src/internal/filter"
	"asfmlog/src/internal/monitor"
	"asfmlog/src/internal/sink"
	"asfmlog/src/internal/stats"

	"github.com/lixenwraith/log"
)

// LogEntry is the view type returned by queries.
type LogEntry = core.LogEntry

// Statistics summarizes the current buffer contents.
type Statistics = stats.Statistics

// MonitorCallback receives newly observed entries in insertion order.
type MonitorCallback = monitor.Callback

// Logger owns one bounded event buffer plus its sink set and optional
// monitoring poller. The ingestion methods are crash-proof: no sink or
// internal failure ever propagates to the caller.
type Logger struct {
	application string
	process     string
	capacity    int
	buf         *buffer.Buffer
	diag        *log.Logger

	mu       sync.RWMutex
	sinks    []sink.Sink
	minLevel core.Level
	poller   *monitor.Poller
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a logger identified by application and process name. The
// fresh logger runs with DefaultConfig (console output only) until
// Configure is called.
func New(application, process string, opts ...Option) *Logger {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Logger{
		application: application,
		process:     process,
		capacity:    core.DefaultCapacity,
		diag:        log.NewLogger(),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.buf = buffer.New(l.capacity)
	l.Configure(DefaultConfig())
	return l
}

// Application returns the owning application name.
func (l *Logger) Application() string { return l.application }

// Process returns the owning process name.
func (l *Logger) Process() string { return l.process }

// Trace logs a trace-level message.
func (l *Logger) Trace(message string, opts ...EntryOption) {
	l.record(core.LevelTrace, message, opts)
}

// Debug logs a debug-level message.
func (l *Logger) Debug(message string, opts ...EntryOption) {
	l.record(core.LevelDebug, message, opts)
}

// Info logs an info-level message.
func (l *Logger) Info(message string, opts ...EntryOption) {
	l.record(core.LevelInfo, message, opts)
}

// Warn logs a warn-level message.
func (l *Logger) Warn(message string, opts ...EntryOption) {
	l.record(core.LevelWarn, message, opts)
}

// Error logs an error-level message.
func (l *Logger) Error(message string, opts ...EntryOption) {
	l.record(core.LevelError, message, opts)
}

// Critical logs a critical-level message.
func (l *Logger) Critical(message string, opts ...EntryOption) {
	l.record(core.LevelCritical, message, opts)
}

// record is the hot ingestion path: capture, buffer, forward. Forwarding
// happens outside the buffer lock and is non-blocking per sink.
func (l *Logger) record(level core.Level, message string, opts []EntryOption) {
	defer func() {
		if r := recover(); r != nil {
			l.diag.Error("msg", "Recovered panic on record path",
				"component", "logger",
				"panic", r)
		}
	}()

	var eo entryOptions
	for _, opt := range opts {
		opt(&eo)
	}

	entry := core.NewEntry(level, message, eo.component, eo.function)
	l.buf.Record(entry)
	l.forward(entry)
}

// forward offers the entry to every configured sink. A full sink drops
// the entry; nothing here blocks or fails the caller.
func (l *Logger) forward(entry core.LogEntry) {
	l.mu.RLock()
	sinks := l.sinks
	minLevel := l.minLevel
	l.mu.RUnlock()

	if entry.Level < minLevel {
		return
	}
	for _, s := range sinks {
		sink.Offer(s, entry)
	}
}

// Configure rebuilds the sink set from the given options. Invalid values
// degrade the affected sink to disabled; Configure itself never fails.
// The buffer and any running poller are unaffected.
func (l *Logger) Configure(cfg Config) {
	sinks := l.buildSinks(cfg)

	l.mu.Lock()
	old := l.sinks
	l.sinks = sinks
	l.minLevel = cfg.minLevel()
	l.mu.Unlock()

	for _, s := range old {
		s.Stop()
	}

	l.diag.Info("msg", "Logger configured",
		"component", "logger",
		"application", l.application,
		"sink_count", len(sinks),
		"min_level", cfg.minLevel().String())
}

func (l *Logger) buildSinks(cfg Config) []sink.Sink {
	var sinks []sink.Sink

	add := func(s sink.Sink) {
		if err := s.Start(l.ctx); err != nil {
			l.diag.Warn("msg", "Sink failed to start, disabled",
				"component", "logger",
				"sink", s.GetStats().Type,
				"error", err)
			return
		}
		sinks = append(sinks, s)
	}

	if cfg.ConsoleOutput {
		add(sink.NewConsoleSink(l.diag))
	}

	if cfg.LogFile != "" {
		if cfg.fileSinkUsable() {
			fs, err := sink.NewFileSink(sink.FileConfig{
				Path:         cfg.LogFile,
				MaxSizeBytes: cfg.MaxFileSizeBytes,
				MaxFiles:     cfg.MaxFiles,
			}, l.diag)
			if err != nil {
				l.diag.Warn("msg", "File sink unavailable, disabled",
					"component", "logger",
					"path", cfg.LogFile,
					"error", err)
				add(sink.NewNoopSink("file sink failed to initialize"))
			} else {
				add(fs)
			}
		} else {
			l.diag.Warn("msg", "Invalid file sink options, disabled",
				"component", "logger",
				"path", cfg.LogFile,
				"max_size_bytes", cfg.MaxFileSizeBytes,
				"max_files", cfg.MaxFiles)
			add(sink.NewNoopSink("invalid file sink options"))
		}
	}

	if cfg.EnableDatabase {
		if cfg.backendUsable() {
			bs, err := sink.NewBackendSink(sink.BackendConfig{
				URL:                cfg.DatabaseConnection,
				AuthSecret:         cfg.BackendAuthSecret,
				MaxEventsPerSecond: cfg.BackendMaxEventsPerSecond,
			}, l.diag)
			if err != nil {
				add(sink.NewNoopSink("backend sink failed to initialize"))
			} else {
				add(bs)
			}
		} else {
			l.diag.Warn("msg", "Invalid backend connection, disabled",
				"component", "logger",
				"connection", cfg.DatabaseConnection)
			add(sink.NewNoopSink("invalid backend connection"))
		}
	}

	if cfg.EnableSharedMemory {
		l.diag.Debug("msg", "Shared memory transport not available, disabled",
			"component", "logger",
			"name", cfg.SharedMemoryName)
		add(sink.NewNoopSink("shared memory transport unavailable"))
	}

	return sinks
}

// GetLogs returns a filtered view of the buffer: entries matching the
// component (exact) and level (case-insensitive), truncated to the most
// recent limit entries. Non-positive limit uses the default of 100. A
// filter matching nothing yields an empty slice, never an error.
func (l *Logger) GetLogs(component, level string, limit int) []LogEntry {
	chain := filter.NewChain(l.diag, filter.New(component, level, l.diag))
	return chain.Select(l.buf.Snapshot(), limit)
}

// GetStatistics summarizes the current buffer contents.
func (l *Logger) GetStatistics() Statistics {
	return stats.Collect(l.buf.Snapshot())
}

// ClearLogs atomically empties the buffer.
func (l *Logger) ClearLogs() {
	l.buf.Clear()
}

// ExportToFile serializes the full current snapshot to path in the named
// format: "json" (structured), "csv" (tabular) or "txt" (plain text).
// On failure the destination is left untouched and the buffer state is
// unaffected.
func (l *Logger) ExportToFile(path, formatName string) error {
	return export.ToFile(l.buf.Snapshot(), path, formatName)
}

// EnableMonitoring starts a background poller that delivers newly
// recorded entries to the callback roughly every interval. Calling it
// while monitoring is already enabled is a no-op. Entries inserted and
// evicted between two wake-ups are missed; that is an accepted property
// of polling a bounded buffer.
func (l *Logger) EnableMonitoring(callback MonitorCallback, interval time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.poller != nil && l.poller.Running() {
		return
	}
	l.poller = monitor.New(l.buf.Snapshot, callback, interval, l.diag)
	l.poller.Start(l.ctx)
}

// DisableMonitoring stops the background poller. After it returns the
// callback will not be invoked again.
func (l *Logger) DisableMonitoring() {
	l.mu.Lock()
	poller := l.poller
	l.mu.Unlock()

	if poller != nil {
		poller.Stop()
	}
}

// SinkStats returns per-sink delivery statistics.
func (l *Logger) SinkStats() []sink.SinkStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]sink.SinkStats, len(l.sinks))
	for i, s := range l.sinks {
		out[i] = s.GetStats()
	}
	return out
}

// Shutdown stops the poller and all sinks. The buffer remains readable.
func (l *Logger) Shutdown() {
	l.DisableMonitoring()

	l.mu.Lock()
	sinks := l.sinks
	l.sinks = nil
	l.mu.Unlock()

	for _, s := range sinks {
		s.Stop()
	}
	l.cancel()
}
