package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayusman/dinojump/internal/gesture"
)

// DatabaseFile is the sqlite file name inside the data directory.
const DatabaseFile = "dinojump.db"

// Config is the process configuration.
type Config struct {
	Addr            string  `env:"DINOJUMP_ADDR" envDefault:":8080"`
	DataDir         string  `env:"DINOJUMP_DATA_DIR"`
	CameraID        int     `env:"DINOJUMP_CAMERA_ID" envDefault:"0"`
	Headless        bool    `env:"DINOJUMP_HEADLESS" envDefault:"false"`
	NoCamera        bool    `env:"DINOJUMP_NO_CAMERA" envDefault:"false"`
	PluginDir       string  `env:"DINOJUMP_PLUGIN_DIR"`
	StaticDir       string  `env:"DINOJUMP_STATIC_DIR"`
	ClosedThreshold float64 `env:"DINOJUMP_CLOSED_THRESHOLD" envDefault:"0.05"`
	Aggregation     string  `env:"DINOJUMP_AGGREGATION" envDefault:"all"`
	TPS             int     `env:"DINOJUMP_TPS" envDefault:"60"`
	MotionThreshold float64 `env:"DINOJUMP_MOTION_THRESHOLD" envDefault:"1.0"`
	Verbose         bool    `env:"DINOJUMP_VERBOSE" envDefault:"false"`
}

// Load parses the environment, fills in the home-relative directories and
// validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".dinojump")
	}
	if cfg.PluginDir == "" {
		cfg.PluginDir = filepath.Join(cfg.DataDir, "plugins")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.ClosedThreshold <= 0 {
		return fmt.Errorf("DINOJUMP_CLOSED_THRESHOLD must be positive, got %g", c.ClosedThreshold)
	}
	if c.TPS <= 0 || c.TPS > 1000 {
		return fmt.Errorf("DINOJUMP_TPS must be in 1..1000, got %d", c.TPS)
	}
	if c.CameraID < 0 {
		return fmt.Errorf("DINOJUMP_CAMERA_ID must not be negative, got %d", c.CameraID)
	}
	if _, err := gesture.ParseAggregation(c.Aggregation); err != nil {
		return fmt.Errorf("DINOJUMP_AGGREGATION: %w", err)
	}
	return nil
}

// AggregationRule returns the parsed hand aggregation rule.
func (c Config) AggregationRule() gesture.Aggregation {
	a, _ := gesture.ParseAggregation(c.Aggregation)
	return a
}

// DatabasePath returns the sqlite path inside the data directory.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}
