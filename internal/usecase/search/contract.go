package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/promptdex/internal/domain"
	"github.com/kailas-cloud/promptdex/internal/domain/prompt"
	"github.com/kailas-cloud/promptdex/internal/domain/search/filter"
)

// PromptLister reads the searchable corpus. Implementations apply the given
// filters as a strict pre-filter and return active prompts only.
type PromptLister interface {
	ListActive(ctx context.Context, f filter.Filters) ([]prompt.Prompt, error)
}

// Cache memoizes full search responses. Get returns domain.ErrNotFound on a
// miss. Entries are never updated in place, only inserted or deleted.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Embedder vectorizes text for the pseudo-semantic matcher.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
