package port

import (
	"context"

	"coderag/internal/domain"
)

// VectorStore abstracts the external vector database. The store owns
// embedding persistence and nearest-neighbor search; this service never
// re-ranks its results.
type VectorStore interface {
	// Count returns the total number of records in the collection.
	Count(ctx context.Context) (int, error)

	// Upsert writes records in a single batch, keyed by snippet id.
	Upsert(ctx context.Context, records []domain.StoredRecord) error

	// Query returns the top-limit records nearest to vector, in the
	// store's native order (ascending cosine distance).
	Query(ctx context.Context, vector []float32, limit int) ([]domain.StoreHit, error)
}
