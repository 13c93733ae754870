// Package config loads eventsync configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string        `yaml:"logLevel" env:"EVENTSYNC_LOG_LEVEL" env-default:"info"`
	DataDir  string        `yaml:"dataDir" env:"EVENTSYNC_DATA_DIR" env-default:"~/.local/share/eventsync"`
	Sources  SourcesConfig `yaml:"sources"`
	AI       AIConfig      `yaml:"ai"`
	CRM      CRMConfig     `yaml:"crm"`
	Sync     SyncConfig    `yaml:"sync"`
}

// SourcesConfig controls adapter execution.
type SourcesConfig struct {
	DelaySeconds   int  `yaml:"delaySeconds" env:"EVENTSYNC_SOURCE_DELAY" env-default:"2"`
	TimeoutSeconds int  `yaml:"timeoutSeconds" env:"EVENTSYNC_SOURCE_TIMEOUT" env-default:"10"`
	Concurrent     bool `yaml:"concurrent" env:"EVENTSYNC_SOURCE_CONCURRENT" env-default:"false"`
}

// Delay returns the per-host inter-request spacing.
func (c SourcesConfig) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// Timeout returns the per-adapter call timeout.
func (c SourcesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AIConfig configures the extraction engine.
type AIConfig struct {
	APIToken string `yaml:"apiToken" env:"OPENROUTER_API_KEY"`
	Model    string `yaml:"model" env:"EVENTSYNC_AI_MODEL" env-default:"openai/gpt-4o"`
}

// CRMConfig configures the external record system client.
type CRMConfig struct {
	BaseURL        string `yaml:"baseURL" env:"CRM_BASE_URL"`
	APIToken       string `yaml:"apiToken" env:"CRM_API_TOKEN"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" env:"CRM_TIMEOUT" env-default:"10"`
}

// Timeout returns the per-call CRM timeout.
func (c CRMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SyncConfig controls sync retry behavior.
type SyncConfig struct {
	MaxRetries uint64 `yaml:"maxRetries" env:"EVENTSYNC_SYNC_RETRIES" env-default:"3"`
}

// Load reads configuration from the given YAML file, applying environment
// overrides. An empty path loads from the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return &cfg, nil
}
