// Package config handles the XDG configuration directory, the optional
// config.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "win98todo"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "config.yaml"

	// StoreFile is the key-value data filename used by the file backend.
	StoreFile = "store.json"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Host modes. Any other value is taken as the base URL of a host process.
const (
	HostLocal = "local"
	HostNone  = "none"
)

// ErrUnknownBackend is returned for a storage backend that does not exist.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives diagnostics. Set by the dispatcher.
	Logger *log.Logger

	Settings Settings
}

// Settings is the content of config.yaml.
type Settings struct {
	Storage StorageSettings `yaml:"storage"`

	// Host is "local", "none" or the URL of a running host process.
	Host string `yaml:"host"`

	// Listen is the address the host process binds.
	Listen string `yaml:"listen"`

	News NewsSettings `yaml:"news"`
}

// StorageSettings selects where the task list is kept.
type StorageSettings struct {
	Backend  string `yaml:"backend"`
	RedisURL string `yaml:"redis_url"`
	Prefix   string `yaml:"prefix"`
}

// NewsSettings configures the headline service on the host side.
type NewsSettings struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

// DefaultSettings returns the settings used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{Backend: BackendFile, Prefix: AppName + ":"},
		Host:    HostLocal,
		Listen:  "127.0.0.1:7998",
	}
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/win98todo or $HOME/.config/win98todo.
// Settings come from config.yaml when present, then the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Settings: DefaultSettings()}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Log returns the configured logger, or the standard logger when unset.
func (c *Config) Log() *log.Logger {
	if c.Logger == nil {
		return log.StandardLogger()
	}
	return c.Logger
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// StorePath returns the path to the file backend's data file.
func (c *Config) StorePath() string {
	return filepath.Join(c.Dir, StoreFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func (c *Config) loadSettings() error {
	b, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	if err := yaml.Unmarshal(b, &c.Settings); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	c.Settings.applyDefaults()
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.Settings.News.APIKey = v
	}
	if v := os.Getenv("WIN98TODO_STORAGE"); v != "" {
		c.Settings.Storage.Backend = v
	}
	if v := os.Getenv("WIN98TODO_REDIS_URL"); v != "" {
		c.Settings.Storage.RedisURL = v
	}
	if v := os.Getenv("WIN98TODO_HOST"); v != "" {
		c.Settings.Host = v
	}
}

func (s *Settings) applyDefaults() {
	d := DefaultSettings()
	if s.Storage.Backend == "" {
		s.Storage.Backend = d.Storage.Backend
	}
	if s.Storage.Prefix == "" {
		s.Storage.Prefix = d.Storage.Prefix
	}
	if s.Host == "" {
		s.Host = d.Host
	}
	if s.Listen == "" {
		s.Listen = d.Listen
	}
}

// Validate checks the storage backend and host settings.
func (s Settings) Validate() error {
	switch strings.ToLower(s.Storage.Backend) {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if s.Storage.RedisURL == "" {
			return errors.New("storage.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, s.Storage.Backend)
	}
	switch s.Host {
	case HostLocal, HostNone:
	default:
		if !strings.HasPrefix(s.Host, "http://") && !strings.HasPrefix(s.Host, "https://") {
			return fmt.Errorf("invalid host %q: want local, none or an http URL", s.Host)
		}
	}
	return nil
}
