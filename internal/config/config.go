package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime settings. Everything has a working default so
// the app runs with no environment at all; cobra flags override these
// values after parsing.
type Config struct {
	// DataDir is where progress slots (and the TUI log) live.
	// Empty means the XDG default resolved by store.DefaultDataDir.
	DataDir string `env:"SHUATI_DATA_DIR"`

	// Banks is the bank base: an http(s) URL or a local directory
	// containing index.json and the per-bank question files.
	Banks string `env:"SHUATI_BANKS" envDefault:"banks"`

	// Backend selects the slot store: "file" or "sqlite".
	Backend string `env:"SHUATI_STORE" envDefault:"file"`

	// LogLevel is a zerolog level name.
	LogLevel string `env:"SHUATI_LOG_LEVEL" envDefault:"info"`
}

// Load parses environment variables into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Backend != "file" && cfg.Backend != "sqlite" {
		return nil, fmt.Errorf("unknown store backend %q (want file or sqlite)", cfg.Backend)
	}
	return cfg, nil
}
