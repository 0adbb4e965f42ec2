package openai

import "time"

// embeddingDimensions is the vector size produced by the configured
// embedding models.
const embeddingDimensions = 1536

// Config holds the OpenAI client configuration.
type Config struct {
	APIKey         string   `yaml:"api_key"`
	Model          string   `yaml:"model"`
	EmbeddingModel string   `yaml:"embedding_model"`
	BaseURL        string   `yaml:"base_url"`
	Timeout        string   `yaml:"timeout"`
	Temperature    *float64 `yaml:"temperature"`
}

// defaults fills zero-valued fields with sensible defaults.
func (c *Config) defaults() {
	if c.Model == "" {
		c.Model = "gpt-4-turbo-preview"
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "text-embedding-ada-002"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

// parsedTimeout returns the timeout as a time.Duration, falling back to
// 30 s on parse failure. Config validation rejects bad values earlier.
func (c *Config) parsedTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
