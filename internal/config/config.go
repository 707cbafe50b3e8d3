// Package config resolves roadmap settings from defaults, an optional YAML
// file, ROADMAP_* environment variables and, last, command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/alexanderramin/roadmap/internal/domain"
	"gopkg.in/yaml.v3"
)

// LayoutBackend selects where node positions are stored.
type LayoutBackend string

const (
	LayoutSQLite LayoutBackend = "sqlite"
	LayoutFile   LayoutBackend = "file"
)

// Environment variables read by LoadConfig.
const (
	EnvConfig          = "ROADMAP_CONFIG"
	EnvAPIURL          = "ROADMAP_API_URL"
	EnvAPITimeoutMs    = "ROADMAP_API_TIMEOUT_MS"
	EnvLayoutBackend   = "ROADMAP_LAYOUT_BACKEND"
	EnvDBPath          = "ROADMAP_DB"
	EnvLayoutDir       = "ROADMAP_LAYOUT_DIR"
	EnvUntouchedPolicy = "ROADMAP_UNTOUCHED_POLICY"
	EnvLog             = "ROADMAP_LOG"
	EnvLogLevel        = "ROADMAP_LOG_LEVEL"
)

// configRelPath is the config file location under the XDG config dirs.
const configRelPath = "roadmap/config.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every setting of the roadmap binary.
type Config struct {
	APIURL          string                 `yaml:"api_url"`
	APITimeoutMs    int                    `yaml:"api_timeout_ms"`
	LayoutBackend   LayoutBackend          `yaml:"layout_backend"`
	DBPath          string                 `yaml:"db_path"`
	LayoutDir       string                 `yaml:"layout_dir"`
	UntouchedPolicy domain.UntouchedPolicy `yaml:"untouched_policy"`
	Log             bool                   `yaml:"log"`
	LogLevel        string                 `yaml:"log_level"`

	// Source is the config file that was applied, if any.
	Source string `yaml:"-"`
}

// DefaultConfig returns the built-in settings. Local state lives under the
// XDG data directory.
func DefaultConfig() Config {
	dataDir := filepath.Join(xdg.DataHome, "roadmap")
	return Config{
		APIURL:          "http://localhost:8000/api/v1",
		APITimeoutMs:    10000,
		LayoutBackend:   LayoutSQLite,
		DBPath:          filepath.Join(dataDir, "roadmap.db"),
		LayoutDir:       filepath.Join(dataDir, "layout"),
		UntouchedPolicy: domain.PolicyTemplate,
		Log:             false,
		LogLevel:        "info",
	}
}

// LoadConfig applies, in order, the defaults, the config file and the
// environment, then validates the result.
func LoadConfig() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	path, explicit := getenv(EnvConfig), true
	if path == "" {
		explicit = false
		if found, err := xdg.SearchConfigFile(configRelPath); err == nil {
			path = found
		}
	}
	if path != "" {
		if err := cfg.applyFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyFile overlays the keys present in a YAML file. A missing file is only
// an error when it was named explicitly.
func (c *Config) applyFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvAPITimeoutMs); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.APITimeoutMs = n
		}
	}
	if v := getenv(EnvLayoutBackend); v != "" {
		c.LayoutBackend = LayoutBackend(strings.ToLower(v))
	}
	if v := getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := getenv(EnvLayoutDir); v != "" {
		c.LayoutDir = v
	}
	if v := getenv(EnvUntouchedPolicy); v != "" {
		c.UntouchedPolicy = domain.UntouchedPolicy(strings.ToLower(v))
	}
	if v := getenv(EnvLog); v != "" {
		c.Log, _ = strconv.ParseBool(v)
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is empty: %w", ErrInvalid)
	}
	if c.APITimeoutMs <= 0 {
		return fmt.Errorf("api_timeout_ms must be positive, got %d: %w", c.APITimeoutMs, ErrInvalid)
	}
	switch c.LayoutBackend {
	case LayoutSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db_path is empty: %w", ErrInvalid)
		}
	case LayoutFile:
		if c.LayoutDir == "" {
			return fmt.Errorf("layout_dir is empty: %w", ErrInvalid)
		}
	default:
		return fmt.Errorf("layout_backend %q (want sqlite or file): %w", c.LayoutBackend, ErrInvalid)
	}
	if !domain.ValidUntouchedPolicies[string(c.UntouchedPolicy)] {
		return fmt.Errorf("untouched_policy %q (want template or neutral): %w", c.UntouchedPolicy, ErrInvalid)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Timeout is the per-request timeout of the resource API client.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.APITimeoutMs) * time.Millisecond
}

// SlogLevel is the configured log level; invalid values fall back to info.
func (c Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, ErrInvalid)
	}
	return l, nil
}
