package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nucleus-app/nucleus/internal/ai/provider"
)

// DefaultRetrieveLimit is the number of memories returned when the
// caller does not request a specific limit.
const DefaultRetrieveLimit = 5

// Store is the semantic memory layer. Both operations are best effort:
// any provider or vector store failure is logged and absorbed, because
// memory must never take down the request that triggered it.
type Store struct {
	embedder   provider.Embedder
	vectors    VectorStore
	collection string
	logger     *slog.Logger
}

// NewStore builds a memory store over an embedder and a vector store.
// A nil embedder means AI services are not configured and every
// operation degrades to a no-op.
func NewStore(embedder provider.Embedder, vectors VectorStore, collection string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		embedder:   embedder,
		vectors:    vectors,
		collection: collection,
		logger:     logger,
	}
}

// Available reports whether the store can embed and persist memories.
func (s *Store) Available() bool {
	return s.embedder != nil && s.vectors != nil
}

// Store embeds content and persists it as a memory record for userID.
// Extra metadata is stored alongside the record but can never override
// the content, user_id or stored_at fields. Failures are logged only.
func (s *Store) Store(ctx context.Context, content, userID string, metadata map[string]string) {
	if !s.Available() {
		return
	}

	vector, err := s.embedder.Embed(ctx, content)
	if err != nil {
		s.logger.Warn("memory store skipped", "error", err, "user_id", userID)
		return
	}

	payload := make(map[string]string, len(metadata)+3)
	for k, v := range metadata {
		payload[k] = v
	}
	payload[PayloadContent] = content
	payload[PayloadUserID] = userID
	payload[PayloadStoredAt] = time.Now().UTC().Format(time.RFC3339)

	point := Point{
		ID:      uuid.NewString(),
		Vector:  vector,
		Payload: payload,
	}
	if err := s.vectors.Upsert(ctx, s.collection, []Point{point}); err != nil {
		s.logger.Warn("memory store failed", "error", err, "user_id", userID)
	}
}

// Retrieve embeds the query and returns the content of the most similar
// memories, nearest first. A non-empty userID restricts results to that
// user; an empty userID searches across all records. Any failure yields
// an empty result.
func (s *Store) Retrieve(ctx context.Context, query, userID string, limit int) []string {
	if !s.Available() {
		return nil
	}
	if limit <= 0 {
		limit = DefaultRetrieveLimit
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("memory retrieve skipped", "error", err, "user_id", userID)
		return nil
	}

	var filter *Filter
	if userID != "" {
		filter = &Filter{Field: PayloadUserID, Value: userID}
	}

	matches, err := s.vectors.Search(ctx, s.collection, vector, limit, filter)
	if err != nil {
		s.logger.Warn("memory retrieve failed", "error", err, "user_id", userID)
		return nil
	}

	contents := make([]string, 0, len(matches))
	for _, m := range matches {
		contents = append(contents, m.Payload[PayloadContent])
	}
	return contents
}

// EnsureCollection creates the memory collection if it does not already
// exist. Safe to call on every startup.
func EnsureCollection(ctx context.Context, vectors VectorStore, name string, dimension int) error {
	existing, err := vectors.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("memory: list collections: %w", err)
	}
	if slices.Contains(existing, name) {
		return nil
	}
	if err := vectors.CreateCollection(ctx, name, dimension, MetricCosine); err != nil {
		return fmt.Errorf("memory: provision collection %q: %w", name, err)
	}
	return nil
}
