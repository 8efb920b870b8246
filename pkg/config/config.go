// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv_sdk"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/logging"
)

// RelPath is the config file location below the XDG config directories.
const RelPath = "filesrv/config.yaml"

// Config represents the full configuration for the filesrv tools.
type Config struct {
	Server ServerConfig `yaml:"server"`

	// TimeoutMs bounds each request; 0 leaves the transport default.
	TimeoutMs int `yaml:"timeout_ms"`

	// Mode is "http" or "mock"; MockSeed is loaded into the mock store.
	Mode     string `yaml:"mode"`
	MockSeed string `yaml:"mock_seed"`

	Log LogConfig `yaml:"log"`
}

// ServerConfig is the remote server and its shared secret.
type ServerConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// LogConfig represents logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	Quiet bool   `yaml:"quiet"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			URL:      filesrv.DefaultBaseAddress,
			Password: filesrv.DefaultSharedSecret,
		},
		Mode: filesrv_sdk.ModeHTTP,
		Log: LogConfig{
			Level: logging.LevelInfo.String(),
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return cfg, nil
}

// Load reads path, or when path is empty the first filesrv/config.yaml found
// in the XDG config directories. A missing discovered file yields the
// defaults. It returns the file actually read, if any.
func Load(path string) (Config, string, error) {
	if path != "" {
		cfg, err := LoadFromFile(path)
		return cfg, path, err
	}
	found, err := xdg.SearchConfigFile(RelPath)
	if err != nil {
		return Defaults(), "", nil
	}
	cfg, err := LoadFromFile(found)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), "", nil
	}
	return cfg, found, err
}

// ApplyEnv overrides fields from FILESRV_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("FILESRV_API_URL"); ok {
		c.Server.URL = v
	}
	if v, ok := os.LookupEnv("FILESRV_PASSWORD"); ok {
		c.Server.Password = v
	}
	if v, ok := lookup("FILESRV_RUNTIME_MODE"); ok {
		c.Mode = strings.ToLower(v)
	}
	if v, ok := lookup("FILESRV_MOCK_SEED"); ok {
		c.MockSeed = v
	}
	if v, ok := lookup("FILESRV_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("FILESRV_TIMEOUT_MS"); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: FILESRV_TIMEOUT_MS: %w", err)
		}
		c.TimeoutMs = ms
	}
	return nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// DefaultPath returns the user's XDG config file, creating its directory.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(RelPath)
	if err != nil {
		return "", fmt.Errorf("config: resolve path: %w", err)
	}
	return path, nil
}

// Save writes the configuration to path, or to DefaultPath when path is
// empty. It returns the path written.
func Save(c Config, path string) (string, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return "", err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Timeout returns TimeoutMs as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Logger builds the console logger described by Log.
func (c Config) Logger() logging.Logger {
	if c.Log.Quiet {
		return logging.NewNoop()
	}
	return logging.NewConsole(logging.ParseLevel(c.Log.Level))
}

// Client builds a client for the configured mode. It returns the mode used.
func (c Config) Client(log logging.Logger) (*filesrv.Client, string, error) {
	opts := []filesrv.Option{filesrv.WithLogger(log)}
	if c.TimeoutMs > 0 {
		opts = append(opts, filesrv.WithTimeout(c.Timeout()))
	}
	server := filesrv.ServerConfig{BaseAddress: c.Server.URL, SharedSecret: c.Server.Password}

	mode := c.Mode
	if mode == filesrv_sdk.ModeAuto {
		mode = filesrv_sdk.ModeHTTP
		if strings.TrimSpace(c.Server.URL) == "" {
			mode = filesrv_sdk.ModeMock
		}
	}

	switch mode {
	case "", filesrv_sdk.ModeHTTP:
		return filesrv.New(server, opts...), filesrv_sdk.ModeHTTP, nil
	case filesrv_sdk.ModeMock:
		store, n, err := filesrv_sdk.NewSeededStore(c.MockSeed)
		if err != nil {
			return nil, "", err
		}
		if n > 0 {
			logging.OrNoop(log).Debug("Loaded %d seed entries from %s", n, c.MockSeed)
		}
		return filesrv_sdk.NewMockClient(store, server, opts...), filesrv_sdk.ModeMock, nil
	default:
		return nil, "", fmt.Errorf("config: unsupported mode %q", c.Mode)
	}
}
