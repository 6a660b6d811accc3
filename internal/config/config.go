// Package config loads runtime configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ServiceConfig configures the generation service connection.
type ServiceConfig struct {
	Provider           string  `yaml:"provider" env:"CHILDSIM_PROVIDER"`
	BaseURL            string  `yaml:"base_url" env:"CHILDSIM_BASE_URL"`
	APIKey             string  `yaml:"api_key" env:"CHILDSIM_API_KEY"`
	Model              string  `yaml:"model" env:"CHILDSIM_MODEL"`
	Timeout            string  `yaml:"timeout" env:"CHILDSIM_TIMEOUT"`
	MinRequestInterval string  `yaml:"min_request_interval" env:"CHILDSIM_MIN_REQUEST_INTERVAL"`
	Temperature        float64 `yaml:"temperature" env:"CHILDSIM_TEMPERATURE"`
}

// TimeoutDuration parses the request timeout.
func (s ServiceConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: invalid timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}

// IntervalDuration parses the minimum interval between requests.
func (s ServiceConfig) IntervalDuration() (time.Duration, error) {
	if s.MinRequestInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.MinRequestInterval)
	if err != nil {
		return 0, fmt.Errorf("config: invalid min_request_interval %q: %w", s.MinRequestInterval, err)
	}
	return d, nil
}

// GenerationConfig tunes how days are generated and accepted.
type GenerationConfig struct {
	Method             string `yaml:"method" env:"CHILDSIM_METHOD"`
	ChunkHours         int    `yaml:"chunk_hours" env:"CHILDSIM_CHUNK_HOURS"`
	MinuteStep         int    `yaml:"minute_step" env:"CHILDSIM_MINUTE_STEP"`
	MaxAttempts        uint   `yaml:"max_attempts" env:"CHILDSIM_MAX_ATTEMPTS"`
	Concurrency        int    `yaml:"concurrency" env:"CHILDSIM_CONCURRENCY"`
	TwoPass            bool   `yaml:"two_pass" env:"CHILDSIM_TWO_PASS"`
	ViolationTolerance int    `yaml:"violation_tolerance" env:"CHILDSIM_VIOLATION_TOLERANCE"`
}

// LoggingConfig tunes log output.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"CHILDSIM_LOG_LEVEL"`
	Format string `yaml:"format" env:"CHILDSIM_LOG_FORMAT"`
}

// Config is the full runtime configuration.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
	MemoryDB   string           `yaml:"memory_db" env:"CHILDSIM_MEMORY_DB"`
	OutputDir  string           `yaml:"output_dir" env:"CHILDSIM_OUTPUT_DIR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Service: ServiceConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     "5m",
			Temperature: 0.8,
		},
		Generation: GenerationConfig{
			Method:             "chunked",
			ChunkHours:         12,
			MinuteStep:         1,
			MaxAttempts:        3,
			Concurrency:        1,
			TwoPass:            true,
			ViolationTolerance: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		MemoryDB:  "childsim.db",
		OutputDir: "output",
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// if it exists, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if _, err := cfg.Service.TimeoutDuration(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Service.IntervalDuration(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
