package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level chainlang.yaml configuration.
type Config struct {
	// Engine tunes evaluation.
	Engine EngineConfig `yaml:"engine"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// Metrics configures the Prometheus registry.
	Metrics MetricsConfig `yaml:"metrics"`

	// Store selects where documents are persisted.
	Store StoreConfig `yaml:"store"`
}

type EngineConfig struct {
	// MaxCallDepth bounds nested user operation calls. Exceeding it produces
	// an error value rather than aborting.
	MaxCallDepth int `yaml:"max_call_depth" validate:"gte=1,lte=100000"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error disabled"`
	Format string `yaml:"format" validate:"oneof=console json"`
	Output string `yaml:"output"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"required"`
}

type StoreConfig struct {
	// Driver is "sqlite" or "bolt".
	Driver string `yaml:"driver" validate:"oneof=sqlite bolt"`

	// Path is the database file, relative to the config file.
	Path string `yaml:"path" validate:"required"`
}

// Default returns the configuration used when no chainlang.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a chainlang.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(filepath.Dir(path), cfg.Store.Path)
	}
	return cfg, nil
}

// ParseConfig parses chainlang.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for chainlang.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Resolve loads the config at path, or finds one upward from dir when path is
// empty, or falls back to Default.
func Resolve(path, dir string) (*Config, error) {
	if path == "" {
		found, err := FindConfig(dir)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}
	return LoadConfig(path)
}

func (c *Config) setDefaults() {
	if c.Engine.MaxCallDepth == 0 {
		c.Engine.MaxCallDepth = DefaultMaxCallDepth
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stderr"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "chainlang"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "sqlite"
	}
	if c.Store.Path == "" {
		c.Store.Path = "chainlang.db"
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%s: invalid configuration: %w", path, err)
	}
	return nil
}
