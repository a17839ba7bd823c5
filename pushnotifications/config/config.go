// Package config loads and validates the client configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tinywideclouds/go-push-notifications/pkg/validate"
)

// Environment variables read by UpdateConfigWithEnvOverrides.
const (
	EnvInstanceID = "PUSHER_INSTANCE_ID"
	EnvSecretKey  = "PUSHER_SECRET_KEY"
	EnvEndpoint   = "PUSHER_ENDPOINT"
)

// Config defines the *single*, authoritative client configuration.
// An empty Endpoint means the default endpoint for InstanceID is used.
type Config struct {
	InstanceID string
	SecretKey  string
	Endpoint   string
}

// Validate checks the configuration and returns a copy with the endpoint resolved.
func (c Config) Validate() (Config, error) {
	resolved, err := validate.ClientConfig(validate.Config{
		InstanceID: c.InstanceID,
		SecretKey:  c.SecretKey,
		Endpoint:   c.Endpoint,
	})
	if err != nil {
		return Config{}, err
	}
	return Config{
		InstanceID: resolved.InstanceID,
		SecretKey:  resolved.SecretKey,
		Endpoint:   resolved.Endpoint,
	}, nil
}

// UpdateConfigWithEnvOverrides applies environment variables and final validation.
func UpdateConfigWithEnvOverrides(cfg *Config, logger *slog.Logger) (*Config, error) {
	logger.Debug("Applying environment variable overrides...")

	// 1. Apply Environment Overrides
	if val := os.Getenv(EnvInstanceID); val != "" {
		logger.Debug("Overriding config value", "key", EnvInstanceID, "source", "env")
		cfg.InstanceID = val
	}
	if val := os.Getenv(EnvSecretKey); val != "" {
		// never log the value itself
		logger.Debug("Overriding config value", "key", EnvSecretKey, "source", "env")
		cfg.SecretKey = val
	}
	if val := os.Getenv(EnvEndpoint); val != "" {
		logger.Debug("Overriding config value", "key", EnvEndpoint, "source", "env")
		cfg.Endpoint = val
	}

	// 2. Final Validation
	resolved, err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration (set via YAML or %s/%s/%s env vars): %w",
			EnvInstanceID, EnvSecretKey, EnvEndpoint, err)
	}

	logger.Debug("Configuration finalized and validated successfully", "endpoint", resolved.Endpoint)
	return &resolved, nil
}
