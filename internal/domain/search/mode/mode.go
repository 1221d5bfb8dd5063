// Package mode defines the search strategies.
package mode

// Mode is the matching strategy for a search request.
type Mode string

// Search mode constants.
const (
	// Lexical evaluates boolean substring predicates over record fields.
	Lexical Mode = "lexical"
	// Semantic ranks by cosine similarity of text fingerprints.
	Semantic Mode = "semantic"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Lexical || m == Semantic
}
