// Package config holds the extraction run configuration. Defaults can
// be overridden by SOCCEREX_-prefixed environment variables (an
// optional .env file is honored) and again by command-line flags; the
// resulting Config object is passed explicitly into the orchestrator,
// never read from globals.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultBeforeSec   = 15.0
	DefaultAfterSec    = 15.0
	DefaultCadenceSec  = 1.0
	DefaultOutputRoot  = "extracts_output"
	DefaultRoutingMode = "flat"
	DefaultLogLevel    = "info"
)

// Config is the full set of recognized extraction options.
type Config struct {
	// BeforeSec is the clip padding before each event, in seconds.
	BeforeSec float64 `env:"SOCCEREX_BEFORE_SEC"`
	// AfterSec is the clip padding after each event, in seconds.
	AfterSec float64 `env:"SOCCEREX_AFTER_SEC"`
	// CadenceSec is the spacing between sampled still frames.
	CadenceSec float64 `env:"SOCCEREX_CADENCE_SEC"`
	// OutputRoot is the root directory for all extraction output.
	OutputRoot string `env:"SOCCEREX_OUTPUT_ROOT"`
	// RoutingMode is "flat" (by half) or "categorized" (by event type).
	RoutingMode string `env:"SOCCEREX_ROUTING_MODE"`
	// LogLevel is the zap log level (debug, info, warn, error).
	LogLevel string `env:"SOCCEREX_LOG_LEVEL"`
	// DBPath is the run-ledger database location.
	DBPath string `env:"SOCCEREX_DB_PATH"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BeforeSec:   DefaultBeforeSec,
		AfterSec:    DefaultAfterSec,
		CadenceSec:  DefaultCadenceSec,
		OutputRoot:  DefaultOutputRoot,
		RoutingMode: DefaultRoutingMode,
		LogLevel:    DefaultLogLevel,
		DBPath:      defaultDBPath(),
	}
}

// Load builds the configuration from defaults and environment
// overrides. A .env file in the working directory is loaded first if
// present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks option ranges and enum values.
func (c Config) Validate() error {
	if c.BeforeSec < 0 {
		return fmt.Errorf("before_sec must not be negative")
	}
	if c.AfterSec < 0 {
		return fmt.Errorf("after_sec must not be negative")
	}
	if c.CadenceSec <= 0 {
		return fmt.Errorf("sample_cadence_sec must be positive")
	}
	switch c.RoutingMode {
	case "flat", "categorized":
	default:
		return fmt.Errorf("routing_mode must be \"flat\" or \"categorized\", got %q", c.RoutingMode)
	}
	return nil
}

// defaultDBPath places the run ledger under the user's data directory.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "soccer-extract.db"
	}
	return filepath.Join(home, ".local", "share", "soccer-extract-cli", "runs.db")
}
