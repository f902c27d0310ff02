// Package config loads mesacheck settings from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	ScanLimit   int       `yaml:"scan_limit"`
	FillColor   string    `yaml:"fill_color"`
	OutputName  string    `yaml:"output_name"`
	Listen      string    `yaml:"listen"`
	MaxUploadMB int       `yaml:"max_upload_mb"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty logs to stderr; the TUI only logs to a file
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ScanLimit:   mesacheck.DefaultScanLimit,
		FillColor:   mesacheck.DefaultFillColor,
		OutputName:  mesacheck.OutputFileName,
		Listen:      "127.0.0.1:8080",
		MaxUploadMB: 20,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if v := os.Getenv("MESACHECK_CONFIG_DIR"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "mesacheck"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mesacheck"), nil
}

// DefaultPath returns the path of config.yaml inside Dir.
func DefaultPath() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

// Load reads the YAML file at path. A missing file yields the defaults.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Options returns the parse and render options.
func (c *Config) Options() mesacheck.Options {
	return mesacheck.Options{
		ScanLimit: c.ScanLimit,
		FillColor: c.FillColor,
	}
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("MESACHECK_SCAN_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MESACHECK_SCAN_LIMIT: %w", err)
		}
		c.ScanLimit = n
	}
	if v := os.Getenv("MESACHECK_FILL_COLOR"); v != "" {
		c.FillColor = v
	}
	if v := os.Getenv("MESACHECK_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("MESACHECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}
