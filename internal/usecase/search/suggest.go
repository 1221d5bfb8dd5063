package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/promptdex/internal/domain/search/query"
)

// Suggestion bounds.
const (
	maxSuggestions    = 5
	suggestionTopHits = 5
)

// buildSuggestions derives advisory refine-search hints from the tag and
// category distribution of the top hits: the most frequent tags not already
// implied by the query, plus a category hint from the best result. Never
// affects ranking.
func buildSuggestions(parsed query.ParsedQuery, top []ResultView) []string {
	if len(top) > suggestionTopHits {
		top = top[:suggestionTopHits]
	}

	implied := make(map[string]struct{})
	for _, term := range parsed.Terms() {
		implied[strings.ToLower(term)] = struct{}{}
	}
	for _, values := range parsed.Fields() {
		for _, v := range values {
			implied[strings.ToLower(v)] = struct{}{}
		}
	}

	counts := make(map[string]int)
	for _, r := range top {
		for _, tag := range r.Tags {
			if tag == "" {
				continue
			}
			if _, ok := implied[strings.ToLower(tag)]; ok {
				continue
			}
			counts[tag]++
		}
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	// Frequency descending, name ascending on ties, for deterministic output.
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})

	var suggestions []string
	for _, tag := range tags {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, fmt.Sprintf("Add tag: %q", tag))
	}

	if len(top) > 0 && top[0].Category != "" && len(suggestions) < maxSuggestions {
		suggestions = append(suggestions, fmt.Sprintf("Search in category: %q", top[0].Category))
	}

	return suggestions
}
