package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "l14ui", cfg.Logger.ServiceName)
	assert.Equal(t, "green", cfg.Logger.Colors.Info)
	assert.Equal(t, 30*time.Second, cfg.Network.Timeout)
	assert.Equal(t, 800.0, cfg.Viewport.Width)
	assert.Equal(t, "http://localhost:3000/", cfg.Runtime.Origin)
	assert.Equal(t, BackendHeadless, cfg.Runtime.Backend)
	assert.Equal(t, 16*time.Millisecond, cfg.Runtime.FrameInterval)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format"},
		{"zero timeout", func(c *Config) { c.Network.Timeout = 0 }, "network.timeout"},
		{"zero viewport", func(c *Config) { c.Viewport.Height = 0 }, "viewport"},
		{"unknown backend", func(c *Config) { c.Runtime.Backend = "gtk" }, "backend must be"},
		{"empty origin", func(c *Config) { c.Runtime.Origin = "" }, "origin is required"},
		{"negative cycles", func(c *Config) { c.Runtime.MaxCycles = -1 }, "max_cycles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "l14ui.yaml")
	content := []byte(`
logger:
  level: debug
viewport:
  width: 1024
runtime:
  backend: fyne
  max_cycles: 3
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv("L14UI_RUNTIME_ORIGIN", "https://example.test/app/")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 1024.0, cfg.Viewport.Width)
	assert.Equal(t, 600.0, cfg.Viewport.Height)
	assert.Equal(t, BackendFyne, cfg.Runtime.Backend)
	assert.Equal(t, 3, cfg.Runtime.MaxCycles)
	assert.Equal(t, "https://example.test/app/", cfg.Runtime.Origin)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runtime:\n  backend: qt\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
