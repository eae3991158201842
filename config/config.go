// Package config handles hybrid-triage configuration loading.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the configuration file
const EnvConfigPath = "HYBRID_TRIAGE_CONFIG"

var (
	ErrUnknownProvider   = errors.New("unknown cloud provider")
	ErrUnknownMode       = errors.New("unknown mode")
	ErrMissingCredential = errors.New("missing credential")
	ErrUnsupportedFile   = errors.New("unsupported config file extension")
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Cloud: CloudConfig{
			Provider:        ProviderOpenAI,
			Model:           "gpt-4o",
			AzureAPIVersion: "2024-10-21",
			Temperature:     0.3,
			MaxTokens:       1024,
			MaxSteps:        5,
		},
		Local: LocalConfig{
			BaseURL:        "http://127.0.0.1:52403/v1",
			Model:          "Phi-4-mini-instruct-cuda-gpu:5",
			Mode:           LocalModePlain,
			MaxTokens:      256,
			Temperature:    0.2,
			TimeoutSeconds: 120,
			MaxRetries:     3,
		},
		Privacy: PrivacyConfig{
			ReportMode:    ReportModeInline,
			LeakRunLength: 6,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the configuration from the given path, then applies environment overrides.
// If the file doesn't exist, defaults are used.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath != "" {
		if err := cfg.decodeFile(configPath); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// LoadFromEnv loads the file named by HYBRID_TRIAGE_CONFIG
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv(EnvConfigPath))
}

func (c *Config) decodeFile(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(configPath)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", configPath, err)
	}
	return nil
}

// ApplyEnv overrides settings with the provider environment variables
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	// azure credentials select the azure provider unless one is configured explicitly
	if getenv("AZURE_OPENAI_ENDPOINT") != "" && c.Cloud.Provider == ProviderOpenAI && getenv("OPENAI_API_KEY") == "" {
		c.Cloud.Provider = ProviderAzure
	}
	switch c.Cloud.Provider {
	case ProviderAzure:
		set(&c.Cloud.APIKey, "AZURE_OPENAI_API_KEY")
		set(&c.Cloud.BaseURL, "AZURE_OPENAI_ENDPOINT")
		set(&c.Cloud.Model, "AZURE_OPENAI_DEPLOYMENT")
	case ProviderAnthropic:
		set(&c.Cloud.APIKey, "ANTHROPIC_API_KEY")
		set(&c.Cloud.BaseURL, "ANTHROPIC_API_BASE_URL")
		set(&c.Cloud.Model, "ANTHROPIC_MODEL")
	default:
		set(&c.Cloud.APIKey, "OPENAI_API_KEY")
		set(&c.Cloud.BaseURL, "OPENAI_API_BASE_URL")
		set(&c.Cloud.Model, "OPENAI_MODEL")
	}
	set(&c.Local.BaseURL, "FOUNDRY_LOCAL_BASE_URL")
	set(&c.Local.Model, "FOUNDRY_LOCAL_MODEL")
	set(&c.Case.ReportFile, "HYBRID_TRIAGE_REPORT")
	set(&c.Case.Narrative, "HYBRID_TRIAGE_CASE")
	set(&c.Log.Level, "LOG_LEVEL")
}

// Validate checks provider names, modes and credentials
func (c *Config) Validate() error {
	switch c.Cloud.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	case ProviderAzure:
		if c.Cloud.BaseURL == "" {
			return fmt.Errorf("%w: azure endpoint", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Cloud.Provider)
	}
	if c.Cloud.APIKey == "" {
		return fmt.Errorf("%w: %s api key", ErrMissingCredential, c.Cloud.Provider)
	}
	if c.Cloud.Model == "" {
		return fmt.Errorf("%w: %s model", ErrMissingCredential, c.Cloud.Provider)
	}
	switch c.Local.Mode {
	case LocalModePlain, LocalModeStructured:
	default:
		return fmt.Errorf("%w: local mode %q", ErrUnknownMode, c.Local.Mode)
	}
	switch c.Privacy.ReportMode {
	case ReportModeInline, ReportModeReference:
	default:
		return fmt.Errorf("%w: report mode %q", ErrUnknownMode, c.Privacy.ReportMode)
	}
	if c.Local.BaseURL == "" {
		return fmt.Errorf("%w: local base url", ErrMissingCredential)
	}
	return nil
}

// Timeout returns the local endpoint HTTP timeout
func (c LocalConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SlogLevel parses the log level, defaulting to info
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
