// Command asfmlog is a small demonstration host for the embedded log
// buffer: it ingests stdin lines into a logger, prints periodic
// statistics, and can export the buffer on shutdown.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"asfmlog/src/asfmlog"
	"asfmlog/src/internal/config"
)

func main() {
	flagCfg, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagCfg.ConfigFile != "" {
		os.Setenv("ASFMLOG_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, flagCfg)

	registry := asfmlog.NewRegistry()
	defer registry.Shutdown()

	logger := registry.Get(cfg.Application, cfg.Process,
		asfmlog.WithCapacity(cfg.Capacity))
	logger.Configure(cfg.LoggerOptions())

	if cfg.Monitor.Enabled {
		interval := time.Duration(cfg.Monitor.IntervalSeconds * float64(time.Second))
		logger.EnableMonitoring(func(batch []asfmlog.LogEntry) {
			fmt.Fprintf(os.Stderr, "-- %d new entries\n", len(batch))
		}, interval)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ingest(logger)
	}()

	if flagCfg.StatsInterval > 0 {
		go statsReporter(logger, flagCfg.StatsInterval)
	}

	select {
	case <-sigChan:
	case <-done:
	}

	logger.DisableMonitoring()

	if cfg.Export.Path != "" {
		if err := logger.ExportToFile(cfg.Export.Path, cfg.Export.Format); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Exported %d entries to %s\n",
				logger.GetStatistics().TotalMessages, cfg.Export.Path)
		}
	}
}

// ingest reads stdin lines into the logger, inferring a level from a
// leading "LEVEL:" prefix when present.
func ingest(logger *asfmlog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		level, message := splitLevel(line)
		switch level {
		case "TRACE":
			logger.Trace(message, asfmlog.WithComponent("stdin"))
		case "DEBUG":
			logger.Debug(message, asfmlog.WithComponent("stdin"))
		case "WARN":
			logger.Warn(message, asfmlog.WithComponent("stdin"))
		case "ERROR":
			logger.Error(message, asfmlog.WithComponent("stdin"))
		case "CRITICAL":
			logger.Critical(message, asfmlog.WithComponent("stdin"))
		default:
			logger.Info(message, asfmlog.WithComponent("stdin"))
		}
	}
}

// splitLevel extracts a "LEVEL: message" prefix if the line carries one.
func splitLevel(line string) (string, string) {
	if idx := strings.Index(line, ":"); idx > 0 && idx <= 8 {
		prefix := strings.ToUpper(strings.TrimSpace(line[:idx]))
		switch prefix {
		case "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "CRITICAL":
			return prefix, strings.TrimSpace(line[idx+1:])
		}
	}
	return "", line
}

func statsReporter(logger *asfmlog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s := logger.GetStatistics()
		fmt.Fprintf(os.Stderr, "-- total=%d rate=%.2f/s levels=%v\n",
			s.TotalMessages, s.MessagesPerSecond, s.LevelDistribution)
	}
}
