// Package embedding provides the deterministic fingerprint embedder.
package embedding

import (
	"context"
	"crypto/sha512"
	"strings"

	"github.com/kailas-cloud/promptdex/internal/domain"
)

// FingerprintDimensions is the fixed fingerprint vector length.
const FingerprintDimensions = 50

// FingerprintEmbedder maps text to a fixed-length vector by hashing.
//
// The fingerprint carries no semantic meaning: it exists to preserve the
// embed-and-rank interface shape until a real embedding model is plugged in
// behind domain.Embedder. Each dimension is a normalized hash byte in [0,1].
type FingerprintEmbedder struct{}

// NewFingerprintEmbedder creates the hash-based embedder.
func NewFingerprintEmbedder() *FingerprintEmbedder {
	return &FingerprintEmbedder{}
}

// Embed implements domain.Embedder. Fails only on blank input, which callers
// use as the fallback trigger.
func (e *FingerprintEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.EmbeddingResult{}, domain.ErrEmptyEmbeddingInput
	}

	// sha512 yields 64 bytes, enough for all 50 dimensions.
	sum := sha512.Sum512([]byte(text))

	vec := make([]float32, FingerprintDimensions)
	for i := range vec {
		vec[i] = float32(sum[i]) / 255.0
	}

	return domain.EmbeddingResult{Embedding: vec}, nil
}
