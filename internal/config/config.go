package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Activity struct {
		Timezone      string `yaml:"timezone"`
		MaxRetries    int    `yaml:"maxRetries"`
		RetryInterval string `yaml:"retryInterval"`
	} `yaml:"activity"`
	Reset struct {
		TTL     string `yaml:"ttl"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"reset"`
	Email struct {
		Region   string `yaml:"region"`
		From     string `yaml:"from"`
		FromName string `yaml:"fromName"`
	} `yaml:"email"`
}

// Load reads YAML config from path and fills in defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Activity.Timezone == "" {
		c.Activity.Timezone = "America/Chicago"
	}
	if c.Activity.MaxRetries <= 0 {
		c.Activity.MaxRetries = 5
	}
	if c.Email.Region == "" {
		c.Email.Region = "us-east-1"
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
