// Package config loads starward settings from defaults, an optional YAML
// file and STARWARD_ environment variables, in that order of precedence.
package config

import "time"

// Config holds all settings.
type Config struct {
	Log      LogConfig      `koanf:"log"`
	Output   OutputConfig   `koanf:"output"`
	Observer ObserverConfig `koanf:"observer"`
	Sky      SkyConfig      `koanf:"sky"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text or json
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format    string `koanf:"format"`    // plain or json
	Precision string `koanf:"precision"` // compact, display, standard, high, full
	Color     string `koanf:"color"`     // auto, always, never
}

// ObserverConfig selects the observer registry and default site.
type ObserverConfig struct {
	Default string `koanf:"default"`
	File    string `koanf:"file"` // empty selects ~/.starward/observers.toml
}

// SkyConfig holds sky dashboard settings.
type SkyConfig struct {
	Refresh time.Duration `koanf:"refresh"`
}
