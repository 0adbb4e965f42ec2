package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

// ChromemStore implements VectorStore on chromem-go, a pure Go embedded
// vector database. Vectors are supplied by the caller; chromem never
// computes embeddings itself.
type ChromemStore struct {
	db *chromem.DB
	mu sync.Mutex
}

var _ VectorStore = (*ChromemStore)(nil)

// NewChromemStore opens an embedded vector store. An empty path keeps
// everything in memory, otherwise records are persisted under path.
func NewChromemStore(path string) (*ChromemStore, error) {
	if path == "" {
		return &ChromemStore{db: chromem.NewDB()}, nil
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("memory: open vector store: %w", err)
	}
	return &ChromemStore{db: db}, nil
}

// ListCollections returns the names of all existing collections.
func (s *ChromemStore) ListCollections(_ context.Context) ([]string, error) {
	cols := s.db.ListCollections()
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	return names, nil
}

// CreateCollection creates a named collection. The dimension and metric
// are recorded as collection metadata; chromem always compares with
// cosine similarity, which is the only metric the memory store uses.
func (s *ChromemStore) CreateCollection(_ context.Context, name string, dimension int, metric string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := map[string]string{
		"dimension": fmt.Sprintf("%d", dimension),
		"metric":    metric,
	}
	if _, err := s.db.CreateCollection(name, meta, nil); err != nil {
		return fmt.Errorf("memory: create collection %q: %w", name, err)
	}
	return nil
}

// Upsert writes points into a collection with caller-provided vectors.
// The content payload field becomes the document body, everything else
// is stored as document metadata.
func (s *ChromemStore) Upsert(ctx context.Context, collection string, points []Point) error {
	col := s.db.GetCollection(collection, nil)
	if col == nil {
		return fmt.Errorf("memory: collection %q does not exist", collection)
	}

	for _, p := range points {
		meta := make(map[string]string, len(p.Payload))
		var content string
		for k, v := range p.Payload {
			if k == PayloadContent {
				content = v
				continue
			}
			meta[k] = v
		}

		doc := chromem.Document{
			ID:        p.ID,
			Content:   content,
			Embedding: p.Vector,
			Metadata:  meta,
		}
		if err := col.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("memory: upsert point %s: %w", p.ID, err)
		}
	}
	return nil
}

// Search returns up to limit matches ordered by decreasing similarity.
// A non-nil filter restricts results to documents whose metadata field
// equals the filter value.
func (s *ChromemStore) Search(ctx context.Context, collection string, vector []float32, limit int, filter *Filter) ([]Match, error) {
	col := s.db.GetCollection(collection, nil)
	if col == nil {
		return nil, fmt.Errorf("memory: collection %q does not exist", collection)
	}

	var where map[string]string
	if filter != nil {
		where = map[string]string{filter.Field: filter.Value}
	}

	// chromem requires nResults <= document count, so retry with smaller
	// limits until the query fits or the collection turns out empty.
	var results []chromem.Result
	for n := limit; n >= 1; n-- {
		var err error
		results, err = col.QueryEmbedding(ctx, vector, n, where, nil)
		if err == nil {
			break
		}
		if isInsufficientDocsError(err) {
			if n == 1 {
				return nil, nil
			}
			continue
		}
		return nil, fmt.Errorf("memory: search: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		payload := make(map[string]string, len(r.Metadata)+1)
		for k, v := range r.Metadata {
			payload[k] = v
		}
		payload[PayloadContent] = r.Content
		matches = append(matches, Match{Payload: payload, Score: r.Similarity})
	}
	return matches, nil
}

func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
