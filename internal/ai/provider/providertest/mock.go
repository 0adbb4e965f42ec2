// Package providertest provides deterministic LLM and Embedder fakes for
// tests of the AI subsystem.
package providertest

import (
	"context"
	"hash/fnv"
	"math"
	"sync"

	"github.com/nucleus-app/nucleus/internal/ai/provider"
)

// Embedder is a deterministic fake embedder. Identical input always yields
// the identical unit vector, so similarity search behaves consistently
// across test runs.
type Embedder struct {
	Dims int
	Err  error // returned by every Embed call when non-nil

	mu    sync.Mutex
	calls []string
}

// NewEmbedder creates a fake embedder with the given dimensionality.
func NewEmbedder(dims int) *Embedder {
	return &Embedder{Dims: dims}
}

// Embed generates a deterministic pseudo-random unit vector from the text hash.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls = append(e.calls, text)
	e.mu.Unlock()

	if e.Err != nil {
		return nil, e.Err
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, e.Dims)
	var norm float64
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed)) / float32(math.MaxInt64)
		norm += float64(vec[i]) * float64(vec[i])
	}

	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

// Dimensions implements provider.Embedder.
func (e *Embedder) Dimensions() int { return e.Dims }

// Calls returns the texts embedded so far.
func (e *Embedder) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// LLM is a scripted fake language model.
type LLM struct {
	Response string
	Err      error

	mu       sync.Mutex
	requests []provider.CompletionRequest
}

// Complete records the request and returns the scripted response or error.
func (l *LLM) Complete(_ context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	l.mu.Lock()
	l.requests = append(l.requests, req)
	l.mu.Unlock()

	if l.Err != nil {
		return provider.CompletionResponse{}, l.Err
	}
	return provider.CompletionResponse{Choices: []string{l.Response}}, nil
}

// Requests returns all completion requests received so far.
func (l *LLM) Requests() []provider.CompletionRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]provider.CompletionRequest(nil), l.requests...)
}

// Compile-time interface guards.
var (
	_ provider.Embedder = (*Embedder)(nil)
	_ provider.LLM      = (*LLM)(nil)
)
