package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/starward/internal/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", config.WithHome(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "plain", cfg.Output.Format)
	assert.Equal(t, "display", cfg.Output.Precision)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Empty(t, cfg.Observer.Default)
	assert.Equal(t, time.Second, cfg.Sky.Refresh)
}

func TestLoad_DefaultFileInHome(t *testing.T) {
	home := t.TempDir()
	writeFile(t, home, filepath.Join(".starward", "config.yaml"), `
output:
  precision: high
observer:
  default: paranal
`)

	cfg, err := config.Load("", config.WithHome(home))
	require.NoError(t, err)

	assert.Equal(t, "high", cfg.Output.Precision)
	assert.Equal(t, "paranal", cfg.Observer.Default)
	assert.Equal(t, "plain", cfg.Output.Format, "unset keys keep their defaults")
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "starward.yaml", `
log:
  level: debug
  format: json
output:
  format: json
  color: never
sky:
  refresh: 250ms
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, 250*time.Millisecond, cfg.Sky.Refresh)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.yaml", "output:\n  precision: high\n")
	t.Setenv("STARWARD_OUTPUT_PRECISION", "full")
	t.Setenv("STARWARD_OBSERVER_DEFAULT", "mauna_kea")
	t.Setenv("STARWARD_SKY_REFRESH", "5s")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "full", cfg.Output.Precision)
	assert.Equal(t, "mauna_kea", cfg.Observer.Default)
	assert.Equal(t, 5*time.Second, cfg.Sky.Refresh)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STARWARD_OUTPUT_FORMAT", "json")

	cfg, err := config.Load("", config.WithHome(t.TempDir()), config.WithOverrides(map[string]any{
		"output.format": "plain",
		"log.level":     "error",
	}))
	require.NoError(t, err)

	assert.Equal(t, "plain", cfg.Output.Format, "overrides beat env")
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", `
log:
  level: loud
output:
  precision: extreme
  color: rainbow
`)

	_, err := config.Load(path)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "log.level")
	assert.Contains(t, msg, "output.precision")
	assert.Contains(t, msg, "output.color")
}
