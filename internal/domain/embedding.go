package domain

import "context"

// KeyPrefix namespaces all promptdex keys in the shared key-value store.
const KeyPrefix = "promptdex:"

// EmbeddingResult is the outcome of vectorizing a text.
// TotalTokens is zero for providers that do not meter usage
// (the deterministic fingerprint among them).
type EmbeddingResult struct {
	Embedding   []float32
	TotalTokens int
}

// Embedder vectorizes text into a fixed-length numeric vector.
// Implementations must be deterministic per input for cacheability of
// downstream search responses.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}
