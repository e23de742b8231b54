package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

func defaults() *Config {
	return &Config{
		Application: "asfmlog",
		Capacity:    0, // library default
		Logger: LoggerConfig{
			ConsoleOutput:    true,
			MaxFileSizeBytes: 10 * 1024 * 1024,
			MaxFiles:         5,
			MinLogLevel:      "INFO",
		},
		Monitor: MonitorConfig{
			Enabled:         false,
			IntervalSeconds: 1.0,
		},
		Export: ExportConfig{
			Format: "json",
		},
	}
}

// LoadWithCLI layers defaults, the config file, ASFMLOG_* environment
// variables and CLI arguments, in ascending precedence.
func LoadWithCLI(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("ASFMLOG_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, nil
}

// GetConfigPath resolves the config file location from the environment,
// falling back to the user config directory.
func GetConfigPath() string {
	if configFile := os.Getenv("ASFMLOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("ASFMLOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("ASFMLOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "asfmlog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "asfmlog.toml")
	}

	return "asfmlog.toml"
}
