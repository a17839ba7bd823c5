package config

import (
	"log/slog"
)

// YamlConfig is the structure that mirrors the raw config.yaml file.
type YamlConfig struct {
	InstanceID string `yaml:"instance_id"`
	SecretKey  string `yaml:"secret_key"`
	Endpoint   string `yaml:"endpoint"`
}

// NewConfigFromYaml converts the YamlConfig into a clean, base Config struct.
// No validation happens here; it runs once env overrides have been applied.
func NewConfigFromYaml(baseCfg *YamlConfig, logger *slog.Logger) (*Config, error) {
	logger.Debug("Mapping YAML config to base config struct")

	cfg := &Config{
		InstanceID: baseCfg.InstanceID,
		SecretKey:  baseCfg.SecretKey,
		Endpoint:   baseCfg.Endpoint,
	}

	logger.Debug("YAML config mapping complete",
		"instance_id", cfg.InstanceID,
		"endpoint", cfg.Endpoint,
		"secret_key_set", cfg.SecretKey != "",
	)

	return cfg, nil
}
