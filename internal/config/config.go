// Package config loads and validates the Nucleus YAML configuration.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	AI        AIConfig        `yaml:"ai"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Bind            string        `yaml:"bind"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds JWT and password settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

// AIConfig groups the OpenAI client and vector memory settings.
// An empty API key disables all AI features; the rest of the system
// keeps working in degraded mode.
type AIConfig struct {
	OpenAI OpenAIConfig `yaml:"openai"`
	Memory MemoryConfig `yaml:"memory"`
}

// OpenAIConfig holds the language-model and embedding provider settings.
type OpenAIConfig struct {
	APIKey         string   `yaml:"api_key"`
	Model          string   `yaml:"model"`
	EmbeddingModel string   `yaml:"embedding_model"`
	BaseURL        string   `yaml:"base_url"`
	Timeout        string   `yaml:"timeout"`
	Temperature    *float64 `yaml:"temperature"`
}

// MemoryConfig holds the vector store settings.
type MemoryConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
	Dimension  int    `yaml:"dimension"`
}

// SchedulerConfig holds cron job settings.
type SchedulerConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ExpiryDigest string `yaml:"expiry_digest"`
}

// defaults fills zero-valued fields with sensible defaults.
func (c *Config) defaults() {
	if c.Server.Bind == "" {
		c.Server.Bind = "127.0.0.1:8000"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Database.Path == "" {
		c.Database.Path = "nucleus.db"
	}
	if c.Auth.AccessTokenTTL <= 0 {
		c.Auth.AccessTokenTTL = 30 * time.Minute
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		c.Auth.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if c.AI.OpenAI.Model == "" {
		c.AI.OpenAI.Model = "gpt-4-turbo-preview"
	}
	if c.AI.OpenAI.EmbeddingModel == "" {
		c.AI.OpenAI.EmbeddingModel = "text-embedding-ada-002"
	}
	if c.AI.OpenAI.BaseURL == "" {
		c.AI.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.AI.OpenAI.Timeout == "" {
		c.AI.OpenAI.Timeout = "30s"
	}
	if c.AI.Memory.Path == "" {
		c.AI.Memory.Path = "data/memory"
	}
	if c.AI.Memory.Collection == "" {
		c.AI.Memory.Collection = "nucleus_memory"
	}
	if c.AI.Memory.Dimension <= 0 {
		c.AI.Memory.Dimension = 1536
	}
	if c.Scheduler.ExpiryDigest == "" {
		c.Scheduler.ExpiryDigest = "0 7 * * *"
	}
}

// Validate checks the configuration for errors that would prevent startup.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("config: auth.jwt_secret is required"))
	}
	if _, err := time.ParseDuration(cfg.AI.OpenAI.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("config: invalid ai.openai.timeout %q: %w", cfg.AI.OpenAI.Timeout, err))
	}

	return errors.Join(errs...)
}
