package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"asfmlog/src/internal/core"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

// ANSI color per level, used only when writing to a terminal
var levelColors = map[core.Level]string{
	core.LevelTrace:    "\x1b[90m",
	core.LevelDebug:    "\x1b[36m",
	core.LevelInfo:     "\x1b[32m",
	core.LevelWarn:     "\x1b[33m",
	core.LevelError:    "\x1b[31m",
	core.LevelCritical: "\x1b[35m",
}

const colorReset = "\x1b[0m"

// ConsoleSink writes entries to stdout, routing ERROR and above to
// stderr. Output is the pre-rendered Formatted field prefixed with the
// level name, colorized when the target is a terminal.
type ConsoleSink struct {
	input     chan core.LogEntry
	stdout    io.Writer
	stderr    io.Writer
	color     bool
	done      chan struct{}
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewConsoleSink creates a console sink bound to the process stdout and
// stderr.
func NewConsoleSink(logger *log.Logger) *ConsoleSink {
	s := newConsoleSink(os.Stdout, os.Stderr, logger)
	s.color = term.IsTerminal(int(os.Stdout.Fd()))
	return s
}

// newConsoleSink allows tests to inject writers.
func newConsoleSink(stdout, stderr io.Writer, logger *log.Logger) *ConsoleSink {
	s := &ConsoleSink{
		input:     make(chan core.LogEntry, core.DefaultSinkBuffer),
		stdout:    stdout,
		stderr:    stderr,
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
	}
	s.lastProcessed.Store(time.Time{})
	return s
}

func (s *ConsoleSink) Input() chan<- core.LogEntry {
	return s.input
}

func (s *ConsoleSink) Start(ctx context.Context) error {
	go s.processLoop(ctx)
	s.logger.Info("msg", "Console sink started",
		"component", "console_sink",
		"color", s.color)
	return nil
}

func (s *ConsoleSink) Stop() {
	close(s.done)
	s.logger.Info("msg", "Console sink stopped")
}

func (s *ConsoleSink) GetStats() SinkStats {
	lastProc, _ := s.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "console",
		TotalProcessed: s.totalProcessed.Load(),
		StartTime:      s.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"color": s.color,
		},
	}
}

func (s *ConsoleSink) processLoop(ctx context.Context) {
	for {
		select {
		case entry, ok := <-s.input:
			if !ok {
				return
			}
			s.totalProcessed.Add(1)
			s.lastProcessed.Store(time.Now())
			s.write(entry)

		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

func (s *ConsoleSink) write(entry core.LogEntry) {
	out := s.stdout
	if entry.Level >= core.LevelError {
		out = s.stderr
	}

	name := entry.Level.String()
	if s.color {
		if c, ok := levelColors[entry.Level]; ok {
			name = c + name + colorReset
		}
	}

	// Write errors are swallowed: console delivery is best effort and
	// must never surface to the record path
	fmt.Fprintf(out, "%s: %s\n", name, entry.Formatted)
}
