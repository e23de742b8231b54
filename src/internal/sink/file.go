package sink

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"asfmlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// FileSink writes entries to a rotating log file. Rotation is delegated
// to an internal lixenwraith/log writer configured for file-only output.
type FileSink struct {
	input     chan core.LogEntry
	writer    *log.Logger // internal writer instance, file output only
	done      chan struct{}
	startTime time.Time
	logger    *log.Logger // application diagnostics logger
	path      string

	// Statistics
	totalProcessed atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// FileConfig holds file sink configuration
type FileConfig struct {
	// Path is the destination log file; its directory and base name
	// configure the rotating writer
	Path string

	// MaxSizeBytes rotates the active file once it grows past this size
	MaxSizeBytes int64

	// MaxFiles caps how many rotated files are retained
	MaxFiles int
}

// NewFileSink creates a file sink. The path must be non-empty and the
// size limits positive; the caller is expected to have validated the
// configuration and degraded to no sink otherwise.
func NewFileSink(cfg FileConfig, logger *log.Logger) (*FileSink, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file sink requires a path")
	}

	dir := filepath.Dir(cfg.Path)
	base := filepath.Base(cfg.Path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	writerConfig := log.DefaultConfig()
	writerConfig.Directory = dir
	writerConfig.Name = name
	writerConfig.EnableConsole = false // file only
	writerConfig.ShowTimestamp = false // entries carry their own timestamps
	writerConfig.ShowLevel = false     // entries carry their own levels

	if cfg.MaxSizeBytes > 0 {
		writerConfig.MaxSizeKB = cfg.MaxSizeBytes / 1024
	}
	if cfg.MaxFiles > 0 && cfg.MaxSizeBytes > 0 {
		// Retention expressed as a total-size cap across rotated files
		writerConfig.MaxTotalSizeKB = int64(cfg.MaxFiles) * (cfg.MaxSizeBytes / 1024)
	}

	writer := log.NewLogger()
	if err := writer.ApplyConfig(writerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize file writer: %w", err)
	}
	if err := writer.Start(); err != nil {
		return nil, fmt.Errorf("failed to start file writer: %w", err)
	}

	fs := &FileSink{
		input:     make(chan core.LogEntry, core.DefaultSinkBuffer),
		writer:    writer,
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
		path:      cfg.Path,
	}
	fs.lastProcessed.Store(time.Time{})

	return fs, nil
}

func (fs *FileSink) Input() chan<- core.LogEntry {
	return fs.input
}

func (fs *FileSink) Start(ctx context.Context) error {
	go fs.processLoop(ctx)
	fs.logger.Info("msg", "File sink started",
		"component", "file_sink",
		"path", fs.path)
	return nil
}

func (fs *FileSink) Stop() {
	close(fs.done)

	if err := fs.writer.Shutdown(2 * time.Second); err != nil {
		fs.logger.Error("msg", "Error shutting down file writer",
			"component", "file_sink",
			"error", err)
	}

	fs.logger.Info("msg", "File sink stopped")
}

func (fs *FileSink) GetStats() SinkStats {
	lastProc, _ := fs.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "file",
		TotalProcessed: fs.totalProcessed.Load(),
		StartTime:      fs.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"path": fs.path,
		},
	}
}

func (fs *FileSink) processLoop(ctx context.Context) {
	for {
		select {
		case entry, ok := <-fs.input:
			if !ok {
				return
			}
			fs.totalProcessed.Add(1)
			fs.lastProcessed.Store(time.Now())

			fs.writer.Message(fmt.Sprintf("%s [%s] [%s] %s",
				entry.Time.Format(core.TimestampLayout),
				entry.Level.String(),
				entry.Component,
				entry.Message))

		case <-ctx.Done():
			return
		case <-fs.done:
			return
		}
	}
}
