package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPaths(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/custom/textshare.toml")
		t.Setenv(EnvHome, "/custom/textshare")

		configPath, home, err := Paths()
		if err != nil {
			t.Fatalf("Paths() error = %v", err)
		}
		if configPath != "/custom/textshare.toml" {
			t.Errorf("configPath = %q", configPath)
		}
		if home != "/custom/textshare" {
			t.Errorf("home = %q", home)
		}
	})

	t.Run("falls back to user directories", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv(EnvHome, "")
		t.Setenv("HOME", "/home/tester")
		t.Setenv("XDG_CONFIG_HOME", "")

		configPath, home, err := Paths()
		if err != nil {
			t.Fatalf("Paths() error = %v", err)
		}
		if !strings.HasSuffix(configPath, "textshare.toml") {
			t.Errorf("configPath = %q", configPath)
		}
		if home != filepath.Join("/home/tester", ".local", "share", "textshare") {
			t.Errorf("home = %q", home)
		}
	})
}

func TestReadOverridesDefaults(t *testing.T) {
	input := `
server = "https://api.example.com"
timeout = "5s"
`
	cfg, err := Read(strings.NewReader(input), Default("/data"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if cfg.Server != "https://api.example.com" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.Timeout.Duration != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.ShareOrigin != "http://localhost:3000" {
		t.Errorf("ShareOrigin should keep its default, got %q", cfg.ShareOrigin)
	}
	if cfg.SessionPath != filepath.Join("/data", "session.db") {
		t.Errorf("SessionPath = %q", cfg.SessionPath)
	}
}

func TestReadRejectsBadDuration(t *testing.T) {
	if _, err := Read(strings.NewReader(`timeout = "soon"`), Default("/data")); err == nil {
		t.Fatal("expected an error for an unparseable timeout")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	want := Default("/data")
	want.Server = "https://api.example.com"

	var buf bytes.Buffer
	if err := Write(&buf, want); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), `timeout = "30s"`) {
		t.Errorf("timeout not written as a duration string:\n%s", buf.String())
	}

	got, err := Read(&buf, &Config{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadAndInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "textshare.toml")
	defaults := Default(dir)

	cfg, err := Load(path, defaults)
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if cfg != defaults {
		t.Error("missing file should yield the defaults")
	}

	custom := Default(dir)
	custom.ShareOrigin = "https://share.example.com"
	if err := Init(path, custom); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	if err := Init(path, custom); err == nil {
		t.Error("Init() should refuse to overwrite")
	}

	loaded, err := Load(path, defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.ShareOrigin != "https://share.example.com" {
		t.Errorf("ShareOrigin = %q", loaded.ShareOrigin)
	}
}
