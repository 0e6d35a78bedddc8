// Package config loads the CLI configuration: where the cache lives, how
// chatty logging is, and where API keys come from.
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/eisbock/stockaid"
)

// Config represents the application configuration
type Config struct {
	Cache CacheConfig          `yaml:"cache"`
	Log   LogConfig            `yaml:"log"`
	Keys  map[string]KeySource `yaml:"keys"`
}

// CacheConfig contains cache-related configuration
type CacheConfig struct {
	// Folder is the cache root directory. Empty disables caching.
	Folder string `yaml:"folder"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// KeySource describes where one key-chain secret comes from: a literal
// value in the file, or an environment variable (preferred, since it keeps
// secrets out of the config file).
type KeySource struct {
	Value string `yaml:"value"`
	Env   string `yaml:"env"`
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	// Set defaults
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	for name, src := range c.Keys {
		if src.Value != "" && src.Env != "" {
			return fmt.Errorf("key %q: value and env are mutually exclusive", name)
		}
		if src.Value == "" && src.Env == "" {
			return fmt.Errorf("key %q: one of value or env is required", name)
		}
	}

	return nil
}

// LogLevel returns the parsed logrus level.
func (c *Config) LogLevel() (logrus.Level, error) {
	return logrus.ParseLevel(c.Log.Level)
}

// KeyChain resolves the configured key sources. Env-sourced keys that are
// unset in the environment are simply absent; a registered API that needs
// one fails with a missing-key error at call time.
func (c *Config) KeyChain() stockaid.KeyChain {
	chain := make(stockaid.KeyChain, len(c.Keys))
	for name, src := range c.Keys {
		switch {
		case src.Value != "":
			chain[name] = src.Value
		case src.Env != "":
			if v := os.Getenv(src.Env); v != "" {
				chain[name] = v
			}
		}
	}
	return chain
}
