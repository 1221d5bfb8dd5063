// Package promptstore persists prompt records as hashes in the key-value
// store and serves filtered corpus listings to the search pipeline.
package promptstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/promptdex/internal/db"
	"github.com/kailas-cloud/promptdex/internal/domain"
	"github.com/kailas-cloud/promptdex/internal/domain/prompt"
	"github.com/kailas-cloud/promptdex/internal/domain/search/filter"
)

const keyPrefix = domain.KeyPrefix + "prompt:"

// store is the narrow slice of the database this repository needs.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repository stores prompts keyed by id.
type Repository struct {
	store store
}

func New(s db.HashStore) *Repository {
	return &Repository{store: s}
}

func promptKey(id string) string {
	return keyPrefix + id
}

// Save upserts a prompt record.
func (r *Repository) Save(ctx context.Context, p prompt.Prompt) error {
	fields, err := toDTO(p).toFields()
	if err != nil {
		return fmt.Errorf("encode prompt %s: %w", p.ID(), err)
	}
	if err := r.store.HSet(ctx, promptKey(p.ID()), fields); err != nil {
		return fmt.Errorf("save prompt %s: %w", p.ID(), err)
	}
	return nil
}

// Get fetches one prompt by id. Returns domain.ErrPromptNotFound when the
// record does not exist.
func (r *Repository) Get(ctx context.Context, id string) (prompt.Prompt, error) {
	fields, err := r.store.HGetAll(ctx, promptKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return prompt.Prompt{}, domain.ErrPromptNotFound
		}
		return prompt.Prompt{}, fmt.Errorf("get prompt %s: %w", id, err)
	}
	if len(fields) == 0 {
		return prompt.Prompt{}, domain.ErrPromptNotFound
	}

	dto, err := fromFields(fields)
	if err != nil {
		return prompt.Prompt{}, fmt.Errorf("decode prompt %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

// Delete removes a prompt record. Deleting a missing record is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, promptKey(id)); err != nil {
		return fmt.Errorf("delete prompt %s: %w", id, err)
	}
	return nil
}

// Exists reports whether a prompt record is stored under the id.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, promptKey(id))
	if err != nil {
		return false, fmt.Errorf("check prompt %s: %w", id, err)
	}
	return ok, nil
}

// ListActive returns all active prompts passing the filters. Records that
// fail to decode are skipped rather than failing the whole listing.
func (r *Repository) ListActive(ctx context.Context, f filter.Filters) ([]prompt.Prompt, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan prompts: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	records, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	var out []prompt.Prompt
	for _, fields := range records {
		if len(fields) == 0 {
			continue
		}
		dto, err := fromFields(fields)
		if err != nil {
			continue
		}
		if !dto.isActive {
			continue
		}
		p := dto.toDomain()
		if !f.Matches(p) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
