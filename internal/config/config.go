// Package config loads the daemon settings from a YAML file.
//
// The file lives in the platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/g13lcd/config.yaml or $HOME/.config/g13lcd/config.yaml
//   - macOS: $HOME/.config/g13lcd/config.yaml
//   - Windows: %LOCALAPPDATA%\g13lcd\config.yaml
//
// A missing default file is not an error: built-in defaults apply. Command
// line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"g13lcd/apps"
	"g13lcd/media/mopidy"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "g13lcd"
	configFile = "config.yaml"

	// LCDEnvVar and KeysEnvVar name the driver pipes, as exported by the
	// driver's service units.
	LCDEnvVar  = "G13_IN"
	KeysEnvVar = "G13_OUT"

	DefaultLCDPath  = "/tmp/g13-0"
	DefaultKeysPath = "/tmp/g13-0_out"
)

type Config struct {
	LogLevel string        `yaml:"log_level,omitempty"`
	Device   DeviceConfig  `yaml:"device"`
	Menu     []string      `yaml:"menu,omitempty"`
	Greeting string        `yaml:"greeting,omitempty"`
	Ticks    TickConfig    `yaml:"ticks"`
	Media    MediaConfig   `yaml:"media"`
	Preview  PreviewConfig `yaml:"preview"`
}

// DeviceConfig holds the driver pipe paths.
type DeviceConfig struct {
	LCD  string `yaml:"lcd"`
	Keys string `yaml:"keys"`
}

// TickConfig holds redraw periods such as "100ms". Zero keeps the default.
type TickConfig struct {
	Menu     time.Duration `yaml:"menu,omitempty"`
	Clock    time.Duration `yaml:"clock,omitempty"`
	Hello    time.Duration `yaml:"hello,omitempty"`
	Error    time.Duration `yaml:"error,omitempty"`
	Selector time.Duration `yaml:"selector,omitempty"`
	Player   time.Duration `yaml:"player,omitempty"`
}

type MediaConfig struct {
	MDNS          bool           `yaml:"mdns"`
	BrowseTimeout time.Duration  `yaml:"browse_timeout,omitempty"`
	CallTimeout   time.Duration  `yaml:"call_timeout,omitempty"`
	Servers       []ServerConfig `yaml:"servers,omitempty"`
}

// ServerConfig is a Mopidy server reachable without discovery.
type ServerConfig struct {
	Name string `yaml:"name"`
	Host string `yaml:"host"`
	Port int    `yaml:"port,omitempty"`
}

type PreviewConfig struct {
	Scale int `yaml:"scale,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	t := apps.DefaultTicks()
	return &Config{
		Device: DeviceConfig{LCD: DefaultLCDPath, Keys: DefaultKeysPath},
		Ticks: TickConfig{
			Menu:     t.Menu,
			Clock:    t.Clock,
			Hello:    t.Hello,
			Error:    t.Error,
			Selector: t.Selector,
			Player:   t.Player,
		},
		Media: MediaConfig{
			MDNS:          true,
			BrowseTimeout: mopidy.DefaultBrowseTimeout,
			CallTimeout:   mopidy.DefaultCallTimeout,
		},
		Preview: PreviewConfig{Scale: 4},
	}
}

// GetConfigDir returns the OS-appropriate configuration directory.
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName), nil
		}
		profile := os.Getenv("USERPROFILE")
		if profile == "" {
			return "", errors.New("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(profile, "AppData", "Local", appName), nil
	case "darwin":
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// GetConfigPath returns the full path of the default configuration file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads path, or the default location when path is empty, on top of
// Default. Driver pipe environment variables override the file.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv(LCDEnvVar); v != "" {
		cfg.Device.LCD = v
	}
	if v := os.Getenv(KeysEnvVar); v != "" {
		cfg.Device.Keys = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	for _, name := range c.Menu {
		if _, err := apps.ParseKind(name); err != nil {
			return fmt.Errorf("menu: %w", err)
		}
	}
	ticks := map[string]time.Duration{
		"menu": c.Ticks.Menu, "clock": c.Ticks.Clock, "hello": c.Ticks.Hello,
		"error": c.Ticks.Error, "selector": c.Ticks.Selector, "player": c.Ticks.Player,
	}
	for name, d := range ticks {
		if d < 0 {
			return fmt.Errorf("ticks.%s: negative duration %s", name, d)
		}
	}
	if c.Media.BrowseTimeout < 0 || c.Media.CallTimeout < 0 {
		return errors.New("media: timeouts must not be negative")
	}
	seen := make(map[string]bool)
	for i, s := range c.Media.Servers {
		if s.Name == "" || s.Host == "" {
			return fmt.Errorf("media.servers[%d]: name and host are required", i)
		}
		if s.Port < 0 || s.Port > 65535 {
			return fmt.Errorf("media.servers[%d]: invalid port %d", i, s.Port)
		}
		if seen[s.Name] {
			return fmt.Errorf("media.servers[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
	}
	if c.Preview.Scale < 0 {
		return fmt.Errorf("preview.scale: invalid scale %d", c.Preview.Scale)
	}
	return nil
}

// AppTicks converts the tick settings for the applications.
func (c *Config) AppTicks() apps.Ticks {
	return apps.Ticks{
		Menu:     c.Ticks.Menu,
		Clock:    c.Ticks.Clock,
		Hello:    c.Ticks.Hello,
		Error:    c.Ticks.Error,
		Selector: c.Ticks.Selector,
		Player:   c.Ticks.Player,
	}
}

// Servers returns the statically configured Mopidy servers.
func (c *Config) Servers() []mopidy.Server {
	out := make([]mopidy.Server, 0, len(c.Media.Servers))
	for _, s := range c.Media.Servers {
		out = append(out, mopidy.Server{Name: s.Name, Host: s.Host, Port: s.Port})
	}
	return out
}
