package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location relative to the working
// directory.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port                   string `yaml:"port"`
	LogLevel               string `yaml:"logLevel"`
	DatabaseURL            string `yaml:"databaseURL"`
	OpenRouterAPIKey       string `yaml:"openRouterAPIKey"`
	OpenRouterBaseURL      string `yaml:"openRouterBaseURL"`
	GenerationModel        string `yaml:"generationModel"`
	SiteURL                string `yaml:"siteURL"`
	AppTitle               string `yaml:"appTitle"`
	UpstreamTimeoutSeconds int    `yaml:"upstreamTimeoutSeconds"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.OpenRouterAPIKey = v
	}
	if v := os.Getenv("OPENROUTER_BASE_URL"); v != "" {
		cfg.OpenRouterBaseURL = v
	}
	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		cfg.GenerationModel = v
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse UPSTREAM_TIMEOUT_SECONDS: %w", err)
		}
		cfg.UpstreamTimeoutSeconds = seconds
	}
	if cfg.GenerationModel == "" {
		cfg.GenerationModel = "deepseek/deepseek-r1"
	}
	if cfg.UpstreamTimeoutSeconds <= 0 {
		cfg.UpstreamTimeoutSeconds = 60
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	// The OpenRouter key is deliberately not required at startup: without it
	// the service still serves intake and read endpoints, and diagnosis
	// requests fail with a configuration error.
	return nil
}
