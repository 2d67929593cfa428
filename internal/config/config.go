// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Provider    string `mapstructure:"provider"`
	Model       string `mapstructure:"model"`
	Credentials string `mapstructure:"credentials"` // path to a service-account key, or the JSON itself
	FolderID    string `mapstructure:"folder_id"`
	APIKeys     struct {
		OpenAI string `mapstructure:"openai"`
		Gemini string `mapstructure:"gemini"`
	} `mapstructure:"api_keys"`
	Ollama struct {
		Host string `mapstructure:"host"`
	} `mapstructure:"ollama"`
	Output struct {
		Color bool `mapstructure:"color"`
	} `mapstructure:"output"`
}

// Load reads the configuration from ~/.sheetsight/config.yaml and environment
// variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())

	// Defaults
	v.SetDefault("provider", "openai")
	v.SetDefault("model", "gpt-4")
	v.SetDefault("output.color", true)

	// Environment variable overrides
	v.SetEnvPrefix("SHEETSIGHT")
	v.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dir returns the sheetsight configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sheetsight"
	}
	return filepath.Join(home, ".sheetsight")
}

// DefaultModel returns the model identifier, preferring the environment.
func DefaultModel() string {
	if m := os.Getenv("SHEETSIGHT_MODEL"); m != "" {
		return m
	}
	if cfg, err := Load(); err == nil && cfg.Model != "" {
		return cfg.Model
	}
	return "gpt-4"
}

// DefaultProvider returns the provider name, preferring the environment.
func DefaultProvider() string {
	if p := os.Getenv("SHEETSIGHT_PROVIDER"); p != "" {
		return p
	}
	if cfg, err := Load(); err == nil && cfg.Provider != "" {
		return cfg.Provider
	}
	return "openai"
}
