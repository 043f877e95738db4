// Package config reads and writes the CLI's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment overrides for default locations.
const (
	EnvConfigPath = "TEXTSHARE_CONFIG"
	EnvHome       = "TEXTSHARE_HOME"
)

// Config is the CLI configuration.
type Config struct {
	// Server is the API base URL.
	Server string `toml:"server"`
	// ShareOrigin is the browser frontend used to build share links.
	ShareOrigin string `toml:"share_origin"`
	// SessionPath is the bbolt file holding the login session.
	SessionPath string `toml:"session_path"`
	// Timeout bounds each API request.
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration written as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default(home string) *Config {
	return &Config{
		Server:      "http://localhost:5000",
		ShareOrigin: "http://localhost:3000",
		SessionPath: filepath.Join(home, "session.db"),
		Timeout:     Duration{30 * time.Second},
	}
}

// Paths returns the config file path and the data directory, checking
// TEXTSHARE_CONFIG and TEXTSHARE_HOME first.
func Paths() (configPath, home string, err error) {
	home = os.Getenv(EnvHome)
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", "", fmt.Errorf("failed to get home directory: %w", err)
		}
		home = filepath.Join(dir, ".local", "share", "textshare")
	}

	configPath = os.Getenv(EnvConfigPath)
	if configPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", "", fmt.Errorf("failed to get config directory: %w", err)
		}
		configPath = filepath.Join(dir, "textshare.toml")
	}

	return configPath, home, nil
}

// Read decodes a Config from r on top of defaults.
func Read(r io.Reader, defaults *Config) (*Config, error) {
	cfg := *defaults
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes cfg to w.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the config at path. A missing file yields defaults.
func Load(path string, defaults *Config) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f, defaults)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
