package prompt

import (
	"context"

	domainprompt "github.com/kailas-cloud/promptdex/internal/domain/prompt"
)

// Repository persists prompt records.
type Repository interface {
	Save(ctx context.Context, p domainprompt.Prompt) error
	Get(ctx context.Context, id string) (domainprompt.Prompt, error)
	Delete(ctx context.Context, id string) error
}

// SearchInvalidator drops cached search responses after corpus mutations.
type SearchInvalidator interface {
	ClearCache(ctx context.Context) error
}
