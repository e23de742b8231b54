package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"asfmlog/src/internal/config"
)

// flagConfig holds command-line overrides
type flagConfig struct {
	ConfigFile    string
	StatsInterval time.Duration
}

// Command-line flags
var (
	configFile    = flag.String("config", "", "Config file path")
	application   = flag.String("application", "", "Application name (overrides config)")
	process       = flag.String("process", "", "Process name (overrides config)")
	logFile       = flag.String("log-file", "", "Rotating log file path (overrides config)")
	minLevel      = flag.String("min-level", "", "Minimum sink level: trace, debug, info, warn, error, critical")
	exportPath    = flag.String("export", "", "Export buffer to this file on exit")
	exportFormat  = flag.String("export-format", "", "Export format: json, csv, txt")
	statsInterval = flag.Duration("stats-interval", 0, "Print buffer statistics at this interval (0 disables)")
)

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "asfmlog - embedded log buffer demo\n\n")
	fmt.Fprintf(os.Stderr, "Reads lines from stdin into a bounded log buffer. Lines may carry a\n")
	fmt.Fprintf(os.Stderr, "LEVEL: prefix (TRACE, DEBUG, INFO, WARN, ERROR, CRITICAL).\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
	fmt.Fprintf(os.Stderr, "  ASFMLOG_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  ASFMLOG_CONFIG_DIR   Config directory\n")
}

func parseFlags() (*flagConfig, error) {
	flag.Parse()

	return &flagConfig{
		ConfigFile:    *configFile,
		StatsInterval: *statsInterval,
	}, nil
}

// applyFlagOverrides layers explicit flags over the loaded config
func applyFlagOverrides(cfg *config.Config, flagCfg *flagConfig) {
	if *application != "" {
		cfg.Application = *application
	}
	if *process != "" {
		cfg.Process = *process
	}
	if *logFile != "" {
		cfg.Logger.LogFile = *logFile
	}
	if *minLevel != "" {
		cfg.Logger.MinLogLevel = *minLevel
	}
	if *exportPath != "" {
		cfg.Export.Path = *exportPath
	}
	if *exportFormat != "" {
		cfg.Export.Format = *exportFormat
	}
}
