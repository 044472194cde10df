package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings, populated from TOOLWIRE_* environment
// variables with sensible defaults.
type Config struct {
	LogLevel string `env:"TOOLWIRE_LOG_LEVEL" envDefault:"info"`

	// Workspace is where tools read files from and metrics are written.
	Workspace string `env:"TOOLWIRE_WORKSPACE"`

	// RestrictToWorkspace confines file tools to the workspace tree.
	RestrictToWorkspace bool `env:"TOOLWIRE_RESTRICT_TO_WORKSPACE" envDefault:"true"`

	// MaxResultBytes caps tool output embedded in an envelope before the
	// truncation wrapper kicks in.
	MaxResultBytes int `env:"TOOLWIRE_MAX_RESULT_BYTES" envDefault:"65536"`

	// MetricsEnabled toggles the JSONL parse-event tracker.
	MetricsEnabled bool `env:"TOOLWIRE_METRICS" envDefault:"false"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}
	if cfg.Workspace == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.Workspace = filepath.Join(home, ".toolwire")
	}
	return cfg, nil
}
