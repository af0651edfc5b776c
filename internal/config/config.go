package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/kelseyhightower/envconfig"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName names the per-user config directory
	AppName = "filterdesk"
	// EnvPrefix prefixes every environment override, e.g. FILTERDESK_LOG_LEVEL
	EnvPrefix = "FILTERDESK"
	// LocalConfigFile is read from the working directory after the user config
	LocalConfigFile = "filterdesk.toml"
)

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Config holds all application configuration
type Config struct {
	Environment string        `koanf:"environment"`
	Log         LogConfig     `koanf:"log"`
	Scan        ScanConfig    `koanf:"scan"`
	Shell       ShellConfig   `koanf:"shell"`
	Overlay     OverlayConfig `koanf:"overlay"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// ScanConfig controls the filter file scanner
type ScanConfig struct {
	// Extension is the marker extension, without the dot
	Extension      string `koanf:"extension"`
	FollowSymlinks bool   `koanf:"follow_symlinks" split_words:"true"`

	// Exclude holds doublestar patterns matched against root-relative slash paths
	Exclude []string `koanf:"exclude"`
}

// ShellConfig names the executables used on Windows
type ShellConfig struct {
	Interpreter string `koanf:"interpreter"`
	FileManager string `koanf:"file_manager" split_words:"true"`
}

// OverlayConfig describes the secondary overlay windows
type OverlayConfig struct {
	Title  string `koanf:"title"`
	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`

	// BlockedGlobal is the window global replaced by the blocker script
	BlockedGlobal string `koanf:"blocked_global" split_words:"true"`

	// OpenTimeout bounds the wait for the frontend to confirm a new overlay
	OpenTimeout time.Duration `koanf:"open_timeout" split_words:"true"`
}

// DefaultConfig returns the production configuration
func DefaultConfig() *Config {
	return &Config{
		Environment: "production",
		Log: LogConfig{
			Level:       "info",
			Development: false,
		},
		Scan: ScanConfig{
			Extension:      "filter",
			FollowSymlinks: true,
		},
		Shell: ShellConfig{
			Interpreter: "powershell",
			FileManager: "explorer",
		},
		Overlay: OverlayConfig{
			Title:         "Overlay",
			Width:         800,
			Height:        600,
			BlockedGlobal: "NitroAds",
			OpenTimeout:   10 * time.Second,
		},
	}
}

// DevelopmentConfig returns a configuration tuned for `wails dev`
func DevelopmentConfig() *Config {
	config := DefaultConfig()
	config.Environment = "development"
	config.Log.Level = "debug"
	config.Log.Development = true
	return config
}

// TestConfig returns a quiet configuration for tests
func TestConfig() *Config {
	config := DefaultConfig()
	config.Environment = "test"
	config.Log.Level = "error"
	return config
}

// ForEnvironment returns the preset for env, falling back to production
func ForEnvironment(env string) *Config {
	switch env {
	case "development":
		return DevelopmentConfig()
	case "test":
		return TestConfig()
	default:
		return DefaultConfig()
	}
}

// Load builds the configuration for env: preset, then config files, then
// environment overrides. The result is normalized and validated.
func Load(env string) (*Config, error) {
	return LoadFrom(env, ConfigPaths()...)
}

// LoadFrom is Load with explicit config file paths; missing files are skipped
func LoadFrom(env string, paths ...string) (*Config, error) {
	cfg := ForEnvironment(env)
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPaths returns the config files in load order (last wins)
func ConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, AppName, "config.toml"),
		LocalConfigFile,
	}
}

// LoadFromEnvironment applies FILTERDESK_* overrides; unset variables keep their value
func (c *Config) LoadFromEnvironment() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to load environment overrides: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Scan.Extension = strings.TrimPrefix(strings.TrimSpace(c.Scan.Extension), ".")
}

// Validate checks the configuration for values the command layer cannot work with
func (c *Config) Validate() error {
	validEnvironments := map[string]bool{
		"development": true,
		"test":        true,
		"production":  true,
	}
	if !validEnvironments[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Scan.Extension == "" {
		return fmt.Errorf("scan extension cannot be empty")
	}
	if strings.ContainsAny(c.Scan.Extension, `/\.`) {
		return fmt.Errorf("scan extension must be a single extension without separators, got %q", c.Scan.Extension)
	}
	for _, pattern := range c.Scan.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid scan exclude pattern: %q", pattern)
		}
	}

	if c.Shell.Interpreter == "" {
		return fmt.Errorf("shell interpreter cannot be empty")
	}
	if c.Shell.FileManager == "" {
		return fmt.Errorf("shell file manager cannot be empty")
	}

	if c.Overlay.Width <= 0 || c.Overlay.Height <= 0 {
		return fmt.Errorf("overlay size must be positive, got %dx%d", c.Overlay.Width, c.Overlay.Height)
	}
	if c.Overlay.OpenTimeout <= 0 {
		return fmt.Errorf("overlay open timeout must be positive, got %s", c.Overlay.OpenTimeout)
	}
	if !jsIdentifier.MatchString(c.Overlay.BlockedGlobal) {
		return fmt.Errorf("overlay blocked global must be a JavaScript identifier, got %q", c.Overlay.BlockedGlobal)
	}

	return nil
}
