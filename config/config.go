package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds service configuration. Values come from an optional YAML file
// with environment variables taking precedence.
type Config struct {
	Port     string         `yaml:"port"`
	Database DatabaseConfig `yaml:"database"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Cache    CacheConfig    `yaml:"cache"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type AnalysisConfig struct {
	OutlierThreshold float64 `yaml:"outlier_threshold"`
	MaxWriteupWords  int     `yaml:"max_writeup_words"`
	MaxWriteupLines  int     `yaml:"max_writeup_lines"`
}

type CacheConfig struct {
	PopulationTTL time.Duration `yaml:"population_ttl"`
	RateLimit     int           `yaml:"rate_limit"`
	RateBurst     int           `yaml:"rate_burst"`
}

// URL builds the Postgres connection string.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

func defaults() *Config {
	return &Config{
		Port: "8080",
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "scout_user",
			Password: "scout_pass",
			Name:     "cricket_scout",
		},
		Analysis: AnalysisConfig{
			OutlierThreshold: 1.5,
			MaxWriteupWords:  150,
			MaxWriteupLines:  10,
		},
		Cache: CacheConfig{
			PopulationTTL: 5 * time.Minute,
			RateLimit:     120,
			RateBurst:     60,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)

	if v := os.Getenv("OUTLIER_THRESHOLD"); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil && threshold > 0 {
			c.Analysis.OutlierThreshold = threshold
		}
	}
	if v := os.Getenv("MAX_WRITEUP_WORDS"); v != "" {
		if words, err := strconv.Atoi(v); err == nil && words > 0 {
			c.Analysis.MaxWriteupWords = words
		}
	}
	if v := os.Getenv("MAX_WRITEUP_LINES"); v != "" {
		if lines, err := strconv.Atoi(v); err == nil && lines > 0 {
			c.Analysis.MaxWriteupLines = lines
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
