// Package config loads the demo's optional sizewatch.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/sizewatch/pkg/detector"
	"github.com/go-drift/sizewatch/pkg/refresh"
)

// Config represents the optional sizewatch.yaml configuration.
type Config struct {
	Detector DetectorConfig `yaml:"detector"`
}

// DetectorConfig selects the demo detector's rate-limit behavior.
type DetectorConfig struct {
	Mode        string `yaml:"mode,omitempty"` // none, debounce, or throttle
	RateMS      int    `yaml:"rateMs,omitempty"`
	Leading     *bool  `yaml:"leading,omitempty"`
	Trailing    *bool  `yaml:"trailing,omitempty"`
	SkipOnMount bool   `yaml:"skipOnMount,omitempty"`
}

// LoadOptional reads sizewatch.yaml from dir if present. A missing file is
// not an error; it yields the zero config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "sizewatch.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read sizewatch.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sizewatch.yaml: %w", err)
	}
	return &cfg, nil
}

// Mode resolves the configured refresh mode.
func (c *Config) Mode() (detector.RefreshMode, error) {
	switch c.Detector.Mode {
	case "", "none":
		return detector.ModeNone, nil
	case "debounce":
		return detector.ModeDebounce, nil
	case "throttle":
		return detector.ModeThrottle, nil
	default:
		return detector.ModeNone, fmt.Errorf("unknown refresh mode %q", c.Detector.Mode)
	}
}

// Rate resolves the configured refresh rate, or zero for the default.
func (c *Config) Rate() time.Duration {
	if c.Detector.RateMS <= 0 {
		return 0
	}
	return time.Duration(c.Detector.RateMS) * time.Millisecond
}

// Options resolves explicit edge options, or nil for the mode defaults.
func (c *Config) Options() *refresh.Options {
	if c.Detector.Leading == nil && c.Detector.Trailing == nil {
		return nil
	}
	opts := &refresh.Options{Trailing: true}
	if c.Detector.Leading != nil {
		opts.Leading = *c.Detector.Leading
	}
	if c.Detector.Trailing != nil {
		opts.Trailing = *c.Detector.Trailing
	}
	return opts
}

// Apply merges the file configuration into a detector config.
func (c *Config) Apply(cfg detector.Config) (detector.Config, error) {
	mode, err := c.Mode()
	if err != nil {
		return cfg, err
	}
	cfg.RefreshMode = mode
	cfg.RefreshRate = c.Rate()
	cfg.RefreshOptions = c.Options()
	cfg.SkipOnMount = c.Detector.SkipOnMount
	return cfg, nil
}
