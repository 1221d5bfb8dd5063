package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/promptdex/internal/domain/prompt"
	"github.com/kailas-cloud/promptdex/internal/domain/search/filter"
	"github.com/kailas-cloud/promptdex/internal/domain/search/query"
)

// Lexical score weights per distinct matched term, by field. Should terms
// contribute at half weight. The exact values are implementation-defined;
// what matters is that more distinct matched terms yield a higher score.
const (
	titleWeight       = 3.0
	tagsWeight        = 2.0
	descriptionWeight = 1.5
	contentWeight     = 1.0
	shouldFactor      = 0.5
)

// scoredPrompt pairs a corpus record with its relevance score.
type scoredPrompt struct {
	prompt prompt.Prompt
	score  float64
}

// searchLexical evaluates the parsed predicate against the filtered corpus
// and ranks matches by the count-based score table above.
func (s *Service) searchLexical(
	ctx context.Context, parsed query.ParsedQuery, f filter.Filters,
) ([]scoredPrompt, error) {
	prompts, err := s.prompts.ListActive(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	var matched []scoredPrompt
	for _, p := range prompts {
		hay := newHaystack(p)
		if !hay.matches(parsed) {
			continue
		}
		matched = append(matched, scoredPrompt{prompt: p, score: hay.score(parsed)})
	}

	sortByRelevance(matched)

	// Keep extra candidates beyond the page size so post-processing
	// (dedupe) still has material to work with; this is also the cap the
	// reported total can reach.
	if limit := s.candidateCap(); len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (s *Service) candidateCap() int {
	return s.maxResults * 2
}

// haystack holds the lowercased searchable fields of one record.
type haystack struct {
	title       string
	description string
	content     string
	tags        string
	category    string
}

func newHaystack(p prompt.Prompt) haystack {
	return haystack{
		title:       strings.ToLower(p.Title()),
		description: strings.ToLower(p.Description()),
		content:     strings.ToLower(p.Content()),
		tags:        strings.ToLower(strings.Join(p.Tags(), " ")),
		category:    strings.ToLower(p.CategoryName()),
	}
}

// containsAny reports whether the term occurs in any free-text field
// (title, description, content or the serialized tags).
func (h haystack) containsAny(term string) bool {
	t := strings.ToLower(term)
	return strings.Contains(h.title, t) ||
		strings.Contains(h.description, t) ||
		strings.Contains(h.content, t) ||
		strings.Contains(h.tags, t)
}

func (h haystack) fieldValue(field string) string {
	switch field {
	case "title":
		return h.title
	case "description":
		return h.description
	case "content":
		return h.content
	case "tags":
		return h.tags
	case "category":
		return h.category
	}
	return ""
}

// matches evaluates the boolean predicate:
//   - every must term and phrase matches some free-text field;
//   - a record also passes on any should match even when must fails
//     (the OR group widens recall rather than gating it);
//   - no must_not term matches anywhere;
//   - every field group has at least one matching value.
func (h haystack) matches(parsed query.ParsedQuery) bool {
	mustOK := true
	for _, term := range parsed.Must() {
		if !h.containsAny(term) {
			mustOK = false
			break
		}
	}

	positive := mustOK
	if !positive {
		for _, term := range parsed.Should() {
			if h.containsAny(term) {
				positive = true
				break
			}
		}
	}
	if !positive {
		return false
	}

	for _, term := range parsed.MustNot() {
		if h.containsAny(term) {
			return false
		}
	}

	for field, values := range parsed.Fields() {
		target := h.fieldValue(field)
		anyValue := false
		for _, v := range values {
			if strings.Contains(target, strings.ToLower(v)) {
				anyValue = true
				break
			}
		}
		if !anyValue {
			return false
		}
	}

	for _, phrase := range parsed.Phrases() {
		if !h.containsAny(phrase) {
			return false
		}
	}

	return true
}

// score sums the per-field weights for each distinct must/phrase term, with
// should terms at half weight. Monotonic: every additional distinct matched
// term strictly increases the score.
func (h haystack) score(parsed query.ParsedQuery) float64 {
	var total float64

	for _, term := range append(append([]string{}, parsed.Must()...), parsed.Phrases()...) {
		total += h.termScore(term, 1)
	}
	for _, term := range parsed.Should() {
		total += h.termScore(term, shouldFactor)
	}

	return total
}

func (h haystack) termScore(term string, factor float64) float64 {
	t := strings.ToLower(term)
	var score float64
	if strings.Contains(h.title, t) {
		score += titleWeight
	}
	if strings.Contains(h.tags, t) {
		score += tagsWeight
	}
	if strings.Contains(h.description, t) {
		score += descriptionWeight
	}
	if strings.Contains(h.content, t) {
		score += contentWeight
	}
	return score * factor
}

// sortByRelevance orders by score descending, breaking ties by usage count
// and then by creation time, both descending. Stable and deterministic for
// any gathering order.
func sortByRelevance(results []scoredPrompt) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.prompt.UsageCount() != b.prompt.UsageCount() {
			return a.prompt.UsageCount() > b.prompt.UsageCount()
		}
		return a.prompt.CreatedAt().After(b.prompt.CreatedAt())
	})
}
