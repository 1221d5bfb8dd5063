package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrPromptNotFound signals a missing prompt.
	ErrPromptNotFound = errors.New("prompt not found")
	// ErrEmptyEmbeddingInput signals that there is no text to fingerprint.
	ErrEmptyEmbeddingInput = errors.New("empty embedding input")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
