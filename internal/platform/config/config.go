package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the provisioning gateway.
type Config struct {
	Addr     string `env:"HSS_GATEWAY_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Registry RegistryConfig
}

// RegistryConfig holds the connection settings for the remote HSS
// subscriber registry.
type RegistryConfig struct {
	EndpointURL string        `env:"HSS_REGISTRY_URL" envDefault:"http://localhost:8081/ProvisioningGateway/services/SPMLHssSubscriber82Service"`
	Username    string        `env:"HSS_REGISTRY_USER"`
	Password    string        `env:"HSS_REGISTRY_PASS"`
	Timeout     time.Duration `env:"HSS_REGISTRY_TIMEOUT" envDefault:"30s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Registry.EndpointURL == "" {
		return fmt.Errorf("registry endpoint URL is required")
	}
	if c.Registry.Timeout <= 0 {
		return fmt.Errorf("registry timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}
