// Package config loads conversation defaults (provider, model, sampling
// parameters, round limit) from an optional YAML file and API credentials
// from the environment, optionally seeded by a .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds conversation defaults. Zero values fall back to Default()
// during normalization so partial YAML files work.
type Config struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
	MaxRounds   int     `yaml:"max_rounds"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Provider:    "openai",
		Model:       "",
		Temperature: 0.7,
		MaxTokens:   4096,
		MaxRounds:   10,
	}
}

// Load reads a YAML config file, returning defaults when the path does not
// exist. Unset fields inherit their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadEnv loads variables from .env files into the process environment.
// Missing files are not an error; existing environment variables win.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) normalize() {
	def := Default()
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.Temperature == 0 {
		c.Temperature = def.Temperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = def.MaxRounds
	}
}
