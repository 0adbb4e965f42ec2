// Package openai implements provider.LLM and provider.Embedder over the
// OpenAI Chat Completions and Embeddings APIs.
package openai

import (
	"net/http"

	"github.com/nucleus-app/nucleus/internal/ai/provider"
)

// Compile-time interface guards.
var (
	_ provider.LLM      = (*Client)(nil)
	_ provider.Embedder = (*Client)(nil)
)

// Client talks to the OpenAI API. One instance is constructed at startup
// and shared; it holds no per-request state.
type Client struct {
	config Config
	client *http.Client
}

// New creates an OpenAI client from the given configuration.
func New(cfg Config) *Client {
	cfg.defaults()
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.parsedTimeout()},
	}
}
