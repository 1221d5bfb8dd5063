// Package query parses raw search strings into structured predicates.
package query

import (
	"regexp"
	"strings"
)

// fieldWhitelist is the set of names allowed in field:value tokens.
// A token with any other prefix is treated as a plain term, not an error.
var fieldWhitelist = map[string]struct{}{
	"title":       {},
	"content":     {},
	"description": {},
	"tags":        {},
	"category":    {},
}

var phraseRegex = regexp.MustCompile(`"([^"]*)"`)

// ParsedQuery is the structured form of a raw search string.
type ParsedQuery struct {
	must    []string
	should  []string
	mustNot []string
	phrases []string
	fields  map[string][]string
}

// Parse turns a raw query string into a ParsedQuery. It never fails:
// unparseable input degrades to plain terms.
//
// Quoted substrings become exact phrases. Of the operator words AND, OR and
// NOT (case-insensitive), only the first one encountered in the unquoted
// token stream is honored; it consumes the remainder of the stream as a
// single joined term. This single-operator behavior is a deliberate,
// documented quirk. Otherwise the first plain token goes to must and every
// later plain token to should.
func Parse(raw string) ParsedQuery {
	q := ParsedQuery{fields: make(map[string][]string)}

	// Collapse repeated whitespace and trim.
	working := strings.Join(strings.Fields(raw), " ")

	// Extract quoted phrases first.
	for _, m := range phraseRegex.FindAllStringSubmatch(working, -1) {
		if phrase := strings.TrimSpace(m[1]); phrase != "" {
			q.phrases = append(q.phrases, phrase)
		}
	}
	working = phraseRegex.ReplaceAllString(working, " ")

	tokens := strings.Fields(working)
	seenPlain := false

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		switch op := strings.ToLower(token); op {
		case "and", "or", "not":
			if i+1 >= len(tokens) {
				// Trailing operator with no operand is dropped.
				continue
			}
			rest := strings.Join(tokens[i+1:], " ")
			switch op {
			case "not":
				q.mustNot = append(q.mustNot, rest)
			case "or":
				q.should = append(q.should, rest)
			default:
				q.must = append(q.must, rest)
			}
			return q
		}

		if field, value, ok := strings.Cut(token, ":"); ok {
			if _, known := fieldWhitelist[strings.ToLower(field)]; known && value != "" {
				field = strings.ToLower(field)
				q.fields[field] = append(q.fields[field], value)
				continue
			}
		}

		if !seenPlain {
			q.must = append(q.must, token)
			seenPlain = true
		} else {
			q.should = append(q.should, token)
		}
	}

	return q
}

// Must returns terms that must all match.
func (q ParsedQuery) Must() []string { return q.must }

// Should returns terms of which at least one should match.
func (q ParsedQuery) Should() []string { return q.should }

// MustNot returns terms that must not match.
func (q ParsedQuery) MustNot() []string { return q.mustNot }

// Phrases returns exact phrases that must match.
func (q ParsedQuery) Phrases() []string { return q.phrases }

// Fields returns field-scoped values keyed by field name.
func (q ParsedQuery) Fields() map[string][]string { return q.fields }

// IsEmpty reports whether the query carries no positive or negative predicate.
func (q ParsedQuery) IsEmpty() bool {
	return len(q.must) == 0 && len(q.should) == 0 && len(q.mustNot) == 0 &&
		len(q.phrases) == 0 && len(q.fields) == 0
}

// Terms returns all positive terms (must, should and phrases) in order.
// Used for snippet highlighting and suggestion generation.
func (q ParsedQuery) Terms() []string {
	terms := make([]string, 0, len(q.must)+len(q.should)+len(q.phrases))
	terms = append(terms, q.must...)
	terms = append(terms, q.should...)
	terms = append(terms, q.phrases...)
	return terms
}

// SemanticText returns the positive terms joined for fingerprinting.
func (q ParsedQuery) SemanticText() string {
	return strings.TrimSpace(strings.Join(q.Terms(), " "))
}
