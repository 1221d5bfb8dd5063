// Package prompt defines the searchable prompt record.
package prompt

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength is the maximum allowed prompt title length.
const MaxTitleLength = 200

// Prompt is a stored, versionable piece of reusable AI-prompt text.
// Only active prompts are visible to search.
type Prompt struct {
	id           string
	title        string
	description  string
	content      string
	categoryID   string
	categoryName string
	author       string
	tags         []string
	usageCount   int
	createdAt    time.Time
	isActive     bool
}

// New validates and creates a Prompt with a fresh identifier.
func New(title, description, content, categoryID, categoryName, author string, tags []string) (Prompt, error) {
	if title == "" {
		return Prompt{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Prompt{}, fmt.Errorf("title too long (max %d chars)", MaxTitleLength)
	}
	if content == "" {
		return Prompt{}, fmt.Errorf("content is required")
	}
	if author == "" {
		return Prompt{}, fmt.Errorf("author is required")
	}
	return Prompt{
		id:           uuid.NewString(),
		title:        title,
		description:  description,
		content:      content,
		categoryID:   categoryID,
		categoryName: categoryName,
		author:       author,
		tags:         tags,
		createdAt:    time.Now().UTC(),
		isActive:     true,
	}, nil
}

// Reconstruct rebuilds a Prompt from storage without validation.
func Reconstruct(
	id, title, description, content, categoryID, categoryName, author string,
	tags []string, usageCount int, createdAt time.Time, isActive bool,
) Prompt {
	return Prompt{
		id:           id,
		title:        title,
		description:  description,
		content:      content,
		categoryID:   categoryID,
		categoryName: categoryName,
		author:       author,
		tags:         tags,
		usageCount:   usageCount,
		createdAt:    createdAt,
		isActive:     isActive,
	}
}

// ID returns the stable unique identifier.
func (p *Prompt) ID() string { return p.id }

// Title returns the short title text.
func (p *Prompt) Title() string { return p.title }

// Description returns the optional description.
func (p *Prompt) Description() string { return p.description }

// Content returns the full prompt text.
func (p *Prompt) Content() string { return p.content }

// CategoryID returns the category identifier, empty when uncategorized.
func (p *Prompt) CategoryID() string { return p.categoryID }

// CategoryName returns the category display name, empty when uncategorized.
func (p *Prompt) CategoryName() string { return p.categoryName }

// Author returns the author display name.
func (p *Prompt) Author() string { return p.author }

// Tags returns the ordered tag list.
func (p *Prompt) Tags() []string { return p.tags }

// UsageCount returns how many times the prompt has been used.
func (p *Prompt) UsageCount() int { return p.usageCount }

// CreatedAt returns the creation timestamp.
func (p *Prompt) CreatedAt() time.Time { return p.createdAt }

// IsActive reports whether the prompt is visible to search (soft delete flag).
func (p *Prompt) IsActive() bool { return p.isActive }

// Deactivate soft-deletes the prompt.
func (p *Prompt) Deactivate() { p.isActive = false }

// RecordUsage increments the usage counter.
func (p *Prompt) RecordUsage() { p.usageCount++ }
