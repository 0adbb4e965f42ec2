// Package memory implements per-user semantic memory: text is embedded,
// stored in a vector collection, and retrieved by similarity. All users
// share one collection; isolation is enforced solely by a user_id payload
// filter at query time.
package memory

import "context"

// MetricCosine is the distance metric used for the memory collection.
const MetricCosine = "cosine"

// Payload field names for memory records. Fixed fields are always set by
// the memory store; extra metadata lives alongside them in the same map
// and never overrides a fixed field.
const (
	PayloadContent  = "content"
	PayloadUserID   = "user_id"
	PayloadStoredAt = "stored_at"
)

// Point is one record to upsert: an id, its vector, and a flat payload.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]string
}

// Match is one search result, nearest first.
type Match struct {
	Payload map[string]string
	Score   float32
}

// Filter expresses an equality match on a named payload field.
type Filter struct {
	Field string
	Value string
}

// VectorStore is the collection-oriented vector database contract.
// The chromem-backed implementation is the default; a networked backend
// can be substituted without touching the layers above.
type VectorStore interface {
	ListCollections(ctx context.Context) ([]string, error)
	CreateCollection(ctx context.Context, name string, dimension int, metric string) error
	Upsert(ctx context.Context, collection string, points []Point) error
	Search(ctx context.Context, collection string, vector []float32, limit int, filter *Filter) ([]Match, error)
}
