package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docuchat/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
// Hybrid search combines dense similarity with keyword matching over the same
// collection; implementations may fail it when the collection lacks the
// required text index, in which case callers fall back to Search.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a pure vector similarity search.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// HybridSearch performs a combined vector + keyword search, fusing both
	// rankings. queryText supplies the keyword side.
	HybridSearch(ctx context.Context, collection string, query []float32, queryText string, k int) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error
}
