// Package config handles configuration loading and management
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	SwiftBin             string
	ResultsDir           string
	BaselinesFile        string
	HistoryEnabled       bool
	ClickhouseHost       string
	ClickhouseNativePort int
	ClickhouseUsername   string
	ClickhousePassword   string
	ClickhouseDatabase   string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		SwiftBin:           getEnv("SWIFT_BIN", "swift"),
		ResultsDir:         getEnv("RESULTS_DIR", "benchmark-results"),
		BaselinesFile:      getEnv("BASELINES_FILE", ""),
		ClickhouseHost:     getEnv("CLICKHOUSE_HOST", "localhost"),
		ClickhouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickhousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),
		ClickhouseDatabase: getEnv("CLICKHOUSE_DATABASE", "default"),
	}

	historyEnabled, err := strconv.ParseBool(getEnv("HISTORY_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_ENABLED: %w", err)
	}
	cfg.HistoryEnabled = historyEnabled

	nativePort, err := strconv.Atoi(getEnv("CLICKHOUSE_NATIVE_PORT", "9000"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLICKHOUSE_NATIVE_PORT: %w", err)
	}
	cfg.ClickhouseNativePort = nativePort

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) String() string {
	passwordDisplay := "(not set)"
	if c.ClickhousePassword != "" {
		passwordDisplay = "********"
	}

	baselinesDisplay := c.BaselinesFile
	if baselinesDisplay == "" {
		baselinesDisplay = "(built-in defaults)"
	}

	historyDisplay := "disabled"
	if c.HistoryEnabled {
		historyDisplay = fmt.Sprintf("%s:%d (db: %s, user: %s, password: %s)",
			c.ClickhouseHost, c.ClickhouseNativePort, c.ClickhouseDatabase,
			c.ClickhouseUsername, passwordDisplay)
	}

	return fmt.Sprintf(`Current Configuration:
======================
Swift Binary:             %s
Results Directory:        %s
Baselines File:           %s
Run History:              %s`,
		c.SwiftBin,
		c.ResultsDir,
		baselinesDisplay,
		historyDisplay,
	)
}
