package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrStoreNotReady  = errors.New("vector store not ready")
	ErrEmptyEmbedding = errors.New("embedding service returned no vectors")
)
