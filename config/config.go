package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the natkey tool.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig holds file scanning configuration.
type ScanConfig struct {
	Includes   []string `yaml:"includes"`
	Excludes   []string `yaml:"excludes"`
	DateSource string   `yaml:"date_source"` // only "modtime" for now
	Workers    int      `yaml:"workers"`
}

// CacheConfig sizes the in-memory token cache.
type CacheConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // "text", "json", "yaml"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Includes:   []string{"**/*"},
			Excludes:   []string{"**/.git/**", "**/.natkey/**", "**/node_modules/**", "**/vendor/**"},
			DateSource: "modtime",
			Workers:    4,
		},
		Cache: CacheConfig{
			Size: 1024,
			TTL:  10 * time.Minute,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects values the rest of the tool cannot act on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Scan.DateSource != "modtime" {
		return fmt.Errorf("unsupported date source %q", c.Scan.DateSource)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be positive, got %d", c.Scan.Workers)
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// LoadFromDir loads configuration from a directory (looks for natkey.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "natkey.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".natkey", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// KeyDBPath returns the path to the key database.
func KeyDBPath(dir string) string {
	return filepath.Join(dir, ".natkey", "keys.db")
}

// EnsureDir ensures the .natkey directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".natkey"), 0755)
}
