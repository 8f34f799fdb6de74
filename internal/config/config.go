package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL             string `yaml:"url"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		ConnMaxLifetime int64  `yaml:"conn_max_lifetime_seconds"`
	} `yaml:"database"`
	Model struct {
		Dir string `yaml:"dir"`
	} `yaml:"model"`
	Auth struct {
		JWTSecret   string `yaml:"jwt_secret"`
		TokenTTLHrs int64  `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// envOverrides are applied on top of the YAML file so deployments can
// inject secrets and the bind port without editing the config.
type envOverrides struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Port        string `env:"PORT"`
	JWTSecret   string `env:"JWT_SECRET"`
	ModelDir    string `env:"MODEL_DIR"`
}

// LoadConfig reads configuration from the specified YAML file and then
// overlays environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if overrides.DatabaseURL != "" {
		config.Database.URL = overrides.DatabaseURL
	}
	if overrides.Port != "" {
		config.Server.Port = overrides.Port
	}
	if overrides.JWTSecret != "" {
		config.Auth.JWTSecret = overrides.JWTSecret
	}
	if overrides.ModelDir != "" {
		config.Model.Dir = overrides.ModelDir
	}

	config.applyDefaults()

	// Hosting platforms hand out PORT as a bare number.
	if !strings.HasPrefix(config.Server.Port, ":") {
		config.Server.Port = ":" + config.Server.Port
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Auth.TokenTTLHrs == 0 {
		c.Auth.TokenTTLHrs = 24
	}
	if c.Model.Dir == "" {
		c.Model.Dir = "artifacts"
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
}
