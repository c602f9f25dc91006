package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BACTRACK_CONFIG is set
//  3. env (prefix BACTRACK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("BACTRACK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: BACTRACK_ADDR, BACTRACK_ELIMINATION_RATE, ...
	// Keys map to the flat koanf tags on the struct, underscores preserved.
	envProvider := env.Provider("BACTRACK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "bactrack_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.EthanolDensity <= 0:
		return fmt.Errorf("%w: ethanol_density must be positive", ErrInvalidConfig)
	case c.DistributionRatio <= 0:
		return fmt.Errorf("%w: distribution_ratio must be positive", ErrInvalidConfig)
	case c.EliminationRate <= 0:
		return fmt.Errorf("%w: elimination_rate must be positive", ErrInvalidConfig)
	case c.DisplayCap <= 0:
		return fmt.Errorf("%w: display_cap must be positive", ErrInvalidConfig)
	case c.Precision < 0:
		return fmt.Errorf("%w: precision must not be negative", ErrInvalidConfig)
	case c.LbsToKg <= 0:
		return fmt.Errorf("%w: lbs_to_kg must be positive", ErrInvalidConfig)
	case c.HistoryHours <= 0:
		return fmt.Errorf("%w: history_hours must be positive", ErrInvalidConfig)
	case c.IntervalMinutes <= 0:
		return fmt.Errorf("%w: interval_minutes must be positive", ErrInvalidConfig)
	}
	return nil
}
