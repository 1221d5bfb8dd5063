package search

import "github.com/kailas-cloud/promptdex/internal/domain/search/filter"

// Search type values reported in responses.
const (
	SearchTypeLexical  = "lexical"
	SearchTypeSemantic = "semantic"
	SearchTypeEmpty    = "empty"
	SearchTypeError    = "error"
)

// ResultView is the caller-facing projection of a single hit.
type ResultView struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Content        string            `json:"content"`
	Category       string            `json:"category,omitempty"`
	Author         string            `json:"author"`
	Tags           []string          `json:"tags"`
	UsageCount     int               `json:"usage_count"`
	CreatedAt      string            `json:"created_at"`
	RelevanceScore float64           `json:"relevance_score"`
	MatchSnippets  map[string]string `json:"match_snippets"`
}

// Response is the full search payload. It is what gets cached, byte for
// byte, and what the transport layer serializes to the caller.
type Response struct {
	Results        []ResultView   `json:"results"`
	Total          int            `json:"total"`
	Query          string         `json:"query"`
	SearchType     string         `json:"search_type"`
	ExecutionTime  float64        `json:"execution_time"`
	FiltersApplied filter.Filters `json:"filters_applied"`
	Suggestions    []string       `json:"suggestions,omitempty"`
	Error          string         `json:"error,omitempty"`
}
