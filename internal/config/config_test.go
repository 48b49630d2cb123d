package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"g13lcd/media/mopidy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() err = %v", err)
	}
	if filepath.Base(path) != "config.yaml" || !strings.Contains(path, "g13lcd") {
		t.Fatalf("GetConfigPath() = %q", path)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(LCDEnvVar, "")
	t.Setenv(KeysEnvVar, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("Load() of a missing explicit file succeeded")
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(LCDEnvVar, "")
	t.Setenv(KeysEnvVar, "/run/g13/keys")

	path := writeConfig(t, `
log_level: debug
device:
  lcd: /run/g13/lcd
menu: [clock, music]
greeting: Bonjour
ticks:
  clock: 1s
media:
  mdns: false
  call_timeout: 500ms
  servers:
    - name: Living room
      host: 192.168.1.20
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.Greeting != "Bonjour" {
		t.Fatalf("Load() = %+v", cfg)
	}
	if cfg.Device.LCD != "/run/g13/lcd" || cfg.Device.Keys != "/run/g13/keys" {
		t.Fatalf("Device = %+v", cfg.Device)
	}
	if got := cfg.AppTicks(); got.Clock != time.Second || got.Menu != 100*time.Millisecond {
		t.Fatalf("AppTicks() = %+v", got)
	}
	if cfg.Media.MDNS || cfg.Media.CallTimeout != 500*time.Millisecond {
		t.Fatalf("Media = %+v", cfg.Media)
	}
	want := []mopidy.Server{{Name: "Living room", Host: "192.168.1.20"}}
	if got := cfg.Servers(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Servers() = %+v, want %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown menu entry", func(c *Config) { c.Menu = []string{"tetris"} }},
		{"negative tick", func(c *Config) { c.Ticks.Clock = -time.Second }},
		{"server without host", func(c *Config) { c.Media.Servers = []ServerConfig{{Name: "a"}} }},
		{"bad port", func(c *Config) { c.Media.Servers = []ServerConfig{{Name: "a", Host: "h", Port: 70000}} }},
		{"duplicate server", func(c *Config) {
			c.Media.Servers = []ServerConfig{{Name: "a", Host: "h"}, {Name: "a", Host: "i"}}
		}},
		{"negative scale", func(c *Config) { c.Preview.Scale = -1 }},
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() err = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("Validate() err = nil")
			}
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "ticks: [1, 2")); err == nil {
		t.Fatalf("Load() of malformed YAML succeeded")
	}
}
