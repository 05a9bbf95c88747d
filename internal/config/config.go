package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"PaintBoard/internal/logging"
)

var ErrInvalid = errors.New("invalid config")

const (
	DefaultSnapshot = "snapshot.pdf"
	DefaultPort     = 8888
	URLScheme       = "paintboard://"
)

type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Canvas struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Share struct {
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

// Config holds the application configuration.
type Config struct {
	Window   Window `toml:"window"`
	Canvas   Canvas `toml:"canvas"`
	Snapshot string `toml:"snapshot"`
	LogLevel string `toml:"log_level"`
	Share    Share  `toml:"share"`
}

func Default() *Config {
	return &Config{
		Window:   Window{Width: 800, Height: 500},
		Canvas:   Canvas{Width: 500, Height: 300},
		Snapshot: DefaultSnapshot,
		LogLevel: "info",
		Share:    Share{Port: DefaultPort, Advertise: true},
	}
}

// DefaultPath is the config file location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "paintboard", "config.toml"), nil
}

// Load reads the config file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PAINTBOARD_SNAPSHOT"); v != "" {
		c.Snapshot = v
	}
	if v := getenv("PAINTBOARD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("PAINTBOARD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PAINTBOARD_PORT=%q", ErrInvalid, v)
		}
		c.Share.Port = port
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %vx%v", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas size %vx%v", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Snapshot == "" {
		return fmt.Errorf("%w: empty snapshot path", ErrInvalid)
	}
	if c.Share.Port <= 0 || c.Share.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Share.Port)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ShareLink is the link peers use to join a hosted board.
func (c *Config) ShareLink(ip string) string {
	return fmt.Sprintf("%s%s:%d", URLScheme, ip, c.Share.Port)
}
