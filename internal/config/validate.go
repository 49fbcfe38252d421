package config

import (
	"errors"
	"fmt"

	"github.com/litescript/starward/internal/logging"
	"github.com/litescript/starward/internal/output"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Log.validate(),
		c.Output.validate(),
		c.Sky.validate(),
	)
}

func (l *LogConfig) validate() error {
	var errs []error

	if !logging.ValidLevel(l.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}
	switch l.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: text, json; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (o *OutputConfig) validate() error {
	var errs []error

	if _, err := output.ParseFormat(o.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if _, err := output.ParsePrecision(o.Precision); err != nil {
		errs = append(errs, fmt.Errorf("output.precision: %w", err))
	}
	switch o.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("output.color must be one of: auto, always, never; got %q", o.Color))
	}

	return errors.Join(errs...)
}

func (s *SkyConfig) validate() error {
	if s.Refresh <= 0 {
		return fmt.Errorf("sky.refresh must be positive, got %v", s.Refresh)
	}
	return nil
}
