package app

import (
	"fmt"

	"github.com/vk/phasorcalc/internal/phasor"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath  string   // .hcl/.yaml file or directory
	Expressions []string // evaluated non-interactively when set

	LogFormat   string
	LogLevel    string
	HistoryPath string

	// Display overrides; empty strings and a negative Precision mean unset.
	AngleUnit string
	Glyph     string
	Precision int

	NoBanner bool
}

// NewConfig validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.AngleUnit != "" {
		if _, err := phasor.ParseAngleUnit(cfg.AngleUnit); err != nil {
			return nil, err
		}
	}
	if cfg.Glyph != "" {
		if _, err := phasor.ParseGlyph(cfg.Glyph); err != nil {
			return nil, err
		}
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.Precision < -1 {
		return nil, fmt.Errorf("invalid precision %d: must be 0 or more", cfg.Precision)
	}
	return &cfg, nil
}

// applyDisplay applies the CLI display overrides to d. cfg has been
// validated by NewConfig.
func (cfg *Config) applyDisplay(d phasor.Display) phasor.Display {
	if cfg.AngleUnit != "" {
		d.Unit, _ = phasor.ParseAngleUnit(cfg.AngleUnit)
	}
	if cfg.Glyph != "" {
		d.Glyph, _ = phasor.ParseGlyph(cfg.Glyph)
	}
	if cfg.Precision >= 0 {
		d.Precision = cfg.Precision
	}
	return d
}
