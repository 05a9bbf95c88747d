package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
snapshot = "board.pdf"
log_level = "debug"

[canvas]
width = 640
height = 480

[share]
port = 9000
advertise = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "board.pdf", cfg.Snapshot)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Canvas{Width: 640, Height: 480}, cfg.Canvas)
	assert.Equal(t, Share{Port: 9000, Advertise: false}, cfg.Share)
	assert.Equal(t, Default().Window, cfg.Window)
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("snapshot = ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PAINTBOARD_SNAPSHOT", "out.pdf")
	t.Setenv("PAINTBOARD_PORT", "7000")
	t.Setenv("PAINTBOARD_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "out.pdf", cfg.Snapshot)
	assert.Equal(t, 7000, cfg.Share.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestEnvBadPort(t *testing.T) {
	t.Setenv("PAINTBOARD_PORT", "http")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"window":   func(c *Config) { c.Window.Width = 0 },
		"canvas":   func(c *Config) { c.Canvas.Height = -1 },
		"snapshot": func(c *Config) { c.Snapshot = "" },
		"port":     func(c *Config) { c.Share.Port = 70000 },
		"level":    func(c *Config) { c.LogLevel = "chatty" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "paintboard://10.0.0.2:8888", Default().ShareLink("10.0.0.2"))
}
