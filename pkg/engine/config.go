package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"reagent/pkg/react"
)

// Config is the top-level application configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Agent    AgentConfig    `yaml:"agent"`
	Tools    ToolsConfig    `yaml:"tools"`
	Log      LogConfig      `yaml:"log"`
}

// ProviderConfig describes the model backend.
type ProviderConfig struct {
	Kind        string  `yaml:"kind"`
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"` //nolint:gosec // configuration field, not a hardcoded secret
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// AgentConfig holds loop behaviour settings.
type AgentConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// ToolsConfig holds built-in tool settings.
type ToolsConfig struct {
	WorkDir string `yaml:"work_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a configuration that talks to a local Ollama with
// the built-in tool set.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Kind:    "ollama",
			BaseURL: "http://localhost:11434",
			Model:   "llama3.2",
		},
		Agent: AgentConfig{MaxSteps: react.DefaultMaxSteps},
	}
}

// LoadConfig reads a YAML file and returns a Config.
// Environment variables referenced as ${VAR} or $VAR in the YAML are expanded
// before parsing, so API keys can be kept in the environment (e.g. loaded
// from a .env file) rather than committed in the config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Provider.Kind == "" {
		return fmt.Errorf("engine: config: provider kind is required")
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("engine: config: provider model is required")
	}
	if c.Agent.MaxSteps < 0 {
		return fmt.Errorf("engine: config: agent max_steps must not be negative")
	}

	return nil
}
