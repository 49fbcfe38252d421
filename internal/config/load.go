package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "STARWARD_"

	// DirName is the per-user settings directory under $HOME.
	DirName = ".starward"
	// FileName is the config file looked up in DirName when no path is given.
	FileName = "config.yaml"
)

// Option configures the Load function.
type Option func(*loadOptions)

type loadOptions struct {
	overrides map[string]any
	home      string
}

// WithOverrides applies values above every other layer. The CLI passes
// explicitly set flags this way.
func WithOverrides(values map[string]any) Option {
	return func(o *loadOptions) {
		o.overrides = values
	}
}

// WithHome sets the directory that stands in for $HOME when resolving the
// default config path.
func WithHome(dir string) Option {
	return func(o *loadOptions) {
		o.home = dir
	}
}

// DefaultPath returns ~/.starward/config.yaml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName, FileName)
}

// Load reads configuration using a layered hierarchy (highest precedence last):
//
//  1. Built-in defaults
//  2. YAML file (path, or ~/.starward/config.yaml when path is empty)
//  3. Environment variables (STARWARD_ prefix)
//  4. Overrides supplied with WithOverrides
//
// An explicit path must exist. The default path is optional.
//
//	STARWARD_LOG_LEVEL         -> log.level
//	STARWARD_OUTPUT_PRECISION  -> output.precision
//	STARWARD_OBSERVER_DEFAULT  -> observer.default
func Load(path string, opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	// Layer 1: defaults.
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Layer 2: YAML file.
	explicit := path != ""
	if !explicit {
		if o.home != "" {
			path = filepath.Join(o.home, DirName, FileName)
		} else {
			path = DefaultPath()
		}
	}
	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		switch {
		case err == nil:
		case !explicit && errors.Is(err, fs.ErrNotExist):
			// No user config; defaults stand.
		default:
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	// Layer 3: environment variables with STARWARD_ prefix.
	envLookup := buildEnvLookup(k.Keys())
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			if koanfKey, ok := envLookup[key]; ok {
				return koanfKey, value
			}
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Layer 4: overrides.
	if len(o.overrides) > 0 {
		if err := k.Load(confmap.Provider(o.overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("loading overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// buildEnvLookup maps env-style keys ("output_precision") to koanf keys
// ("output.precision").
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return lookup
}
