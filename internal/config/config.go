// Package config loads the npcNERD configuration and character sheets from
// YAML, with environment-variable overrides for credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all npcNERD configuration.
type Config struct {
	// Engine configuration
	Engine EngineConfig `yaml:"engine"`

	// Pipeline limits
	Limits LimitsConfig `yaml:"limits"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig configures the external completion/classification service.
type EngineConfig struct {
	Provider string `yaml:"provider"` // openai, gemini
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`

	// Models maps the fast/standard/premium tiers to provider model names.
	// Missing entries use the provider defaults.
	Models map[string]string `yaml:"models"`
}

// LimitsConfig bounds the classification and generation calls.
type LimitsConfig struct {
	ClassifyMaxTokens  int `yaml:"classify_max_tokens"`
	PersonalMaxTokens  int `yaml:"personal_max_tokens"`
	InventoryMaxTokens int `yaml:"inventory_max_tokens"`
	MaxItemsPerPage    int `yaml:"max_items_per_page"`

	// ResolverMaxAttempts caps inventory retry passes; 0 keeps the
	// unbounded reference behavior.
	ResolverMaxAttempts int `yaml:"resolver_max_attempts"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Provider: "openai",
			Timeout:  "60s",
		},
		Limits: LimitsConfig{
			ClassifyMaxTokens:   5,
			PersonalMaxTokens:   75,
			InventoryMaxTokens:  75,
			MaxItemsPerPage:     10,
			ResolverMaxAttempts: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Keys are checked
// in priority order; the last provider with a key set wins.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Engine.APIKey = key
		c.Engine.Provider = "openai"
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Engine.APIKey = key
		c.Engine.Provider = "gemini"
	}
	if url := os.Getenv("NPCNERD_BASE_URL"); url != "" {
		c.Engine.BaseURL = url
	}
	if level := os.Getenv("NPCNERD_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetEngineTimeout returns the engine timeout as a duration.
func (c *Config) GetEngineTimeout() time.Duration {
	d, err := time.ParseDuration(c.Engine.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// ValidProviders lists all supported engine providers.
var ValidProviders = []string{"openai", "gemini"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Engine.APIKey == "" {
		return fmt.Errorf("engine API key not configured (set OPENAI_API_KEY or GEMINI_API_KEY)")
	}

	validProvider := false
	for _, p := range ValidProviders {
		if c.Engine.Provider == p {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("invalid engine provider: %s (valid: %v)", c.Engine.Provider, ValidProviders)
	}

	return nil
}
