// Package config loads the basil.yml run configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the basil.yml configuration.
type Config struct {
	Version   int                 `yaml:"version"`
	Settings  Settings            `yaml:"settings"`
	Features  Features            `yaml:"features"`
	Resources map[string]Resource `yaml:"resources"`
}

type Settings struct {
	// Output selects the observer: pretty, events.
	Output string `yaml:"output"`
	// RunLog persists the structured event stream under .basil/runs.
	RunLog bool `yaml:"run_log"`
}

type Features struct {
	Paths []string `yaml:"paths"`
}

// Resource describes one backend the step libraries talk to.
type Resource struct {
	Type string `yaml:"type"`
	// Database specific
	DSN string `yaml:"dsn,omitempty"`
	// Redis specific
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	// WebSocket specific
	URL string `yaml:"url,omitempty"`
	// Kafka specific
	Brokers []string `yaml:"brokers,omitempty"`
}

// Load reads and parses the configuration file, expanding environment
// variables in the raw document.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Settings.Output == "" {
		c.Settings.Output = "pretty"
	}
	if len(c.Features.Paths) == 0 {
		c.Features.Paths = []string{"./features"}
	}
}

// ValidResourceTypes returns all resource type names the step libraries
// understand.
func ValidResourceTypes() []string {
	return []string{"postgres", "redis", "websocket", "kafka"}
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", c.Version)
	}

	valid := make(map[string]bool)
	for _, t := range ValidResourceTypes() {
		valid[t] = true
	}
	for name, res := range c.Resources {
		if !valid[res.Type] {
			return fmt.Errorf("resource %q has unknown type %q", name, res.Type)
		}
	}

	return nil
}
