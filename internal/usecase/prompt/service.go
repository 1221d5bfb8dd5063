// Package prompt manages the prompt corpus and keeps the search cache
// coherent across mutations.
package prompt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domainprompt "github.com/kailas-cloud/promptdex/internal/domain/prompt"
	"github.com/kailas-cloud/promptdex/internal/logger"
)

// Service wraps the repository with cache invalidation: any write that can
// change search results clears the response cache. Stale cache entries are
// otherwise served until their TTL expires.
type Service struct {
	repo   Repository
	search SearchInvalidator
}

func New(repo Repository, search SearchInvalidator) *Service {
	return &Service{repo: repo, search: search}
}

// Create validates and stores a new prompt, returning it with its assigned id.
func (s *Service) Create(
	ctx context.Context,
	title, description, content, categoryID, categoryName, author string,
	tags []string,
) (domainprompt.Prompt, error) {
	p, err := domainprompt.New(title, description, content, categoryID, categoryName, author, tags)
	if err != nil {
		return domainprompt.Prompt{}, fmt.Errorf("create prompt: %w", err)
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return domainprompt.Prompt{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

// Get fetches one prompt by id.
func (s *Service) Get(ctx context.Context, id string) (domainprompt.Prompt, error) {
	return s.repo.Get(ctx, id)
}

// Update replaces a stored prompt wholesale.
func (s *Service) Update(ctx context.Context, p domainprompt.Prompt) error {
	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Deactivate soft-deletes a prompt so it stops appearing in search results.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	p.Deactivate()
	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a prompt record permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// RecordUsage bumps the usage counter that feeds relevance tie-breaking.
// The search cache is left alone: usage drift does not justify a flush on
// every use, and entries expire within the TTL anyway.
func (s *Service) RecordUsage(ctx context.Context, id string) error {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	p.RecordUsage()
	return s.repo.Save(ctx, p)
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.search.ClearCache(ctx); err != nil {
		logger.FromContext(ctx).Warn("search cache invalidation failed", zap.Error(err))
	}
}
