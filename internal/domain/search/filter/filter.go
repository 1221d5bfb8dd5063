// Package filter defines the external pre-filters applied before text matching.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/kailas-cloud/promptdex/internal/domain/prompt"
)

// Filters narrows the searchable corpus before the textual predicate runs.
// All set conditions are combined with AND. The zero value matches everything.
//
// Fields are exported: Filters is serialized into the response payload
// (filters_applied) and into the cache key.
type Filters struct {
	CategoryID   string     `json:"category,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	Author       string     `json:"author,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	DateFrom     *time.Time `json:"date_from,omitempty"`
	DateTo       *time.Time `json:"date_to,omitempty"`
	MinUsage     *int       `json:"min_usage,omitempty"`
	MaxUsage     *int       `json:"max_usage,omitempty"`
}

// IsZero reports whether no filter condition is set.
func (f Filters) IsZero() bool {
	return f.CategoryID == "" && f.CategoryName == "" && f.Author == "" &&
		len(f.Tags) == 0 && f.DateFrom == nil && f.DateTo == nil &&
		f.MinUsage == nil && f.MaxUsage == nil
}

// Matches reports whether the prompt passes every set condition.
// Author matches by display-name substring, category name
// case-insensitively, and each filter tag must appear as a substring of the
// serialized tag list.
func (f Filters) Matches(p prompt.Prompt) bool {
	if f.CategoryID != "" && p.CategoryID() != f.CategoryID {
		return false
	}
	if f.CategoryName != "" && !strings.EqualFold(p.CategoryName(), f.CategoryName) {
		return false
	}
	if f.Author != "" && !strings.Contains(strings.ToLower(p.Author()), strings.ToLower(f.Author)) {
		return false
	}
	if len(f.Tags) > 0 {
		serialized := strings.ToLower(strings.Join(p.Tags(), " "))
		for _, tag := range f.Tags {
			if !strings.Contains(serialized, strings.ToLower(tag)) {
				return false
			}
		}
	}
	if f.DateFrom != nil && p.CreatedAt().Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && p.CreatedAt().After(*f.DateTo) {
		return false
	}
	if f.MinUsage != nil && p.UsageCount() < *f.MinUsage {
		return false
	}
	if f.MaxUsage != nil && p.UsageCount() > *f.MaxUsage {
		return false
	}
	return true
}

// Canonical returns a copy with order-independent fields normalized
// (tags sorted), for stable cache-key derivation.
func (f Filters) Canonical() Filters {
	if len(f.Tags) > 1 {
		tags := make([]string, len(f.Tags))
		copy(tags, f.Tags)
		sort.Strings(tags)
		f.Tags = tags
	}
	return f
}
