package search

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/promptdex/internal/domain/prompt"
)

// Highlight markers wrapped around matched terms in snippets.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// minHighlightTermLen: terms this short or shorter are not highlighted to
// avoid marking up stop-word noise.
const minHighlightTermLen = 2

// Highlight wraps every case-insensitive occurrence of each usable term with
// highlight markers and truncates the result to maxLength. When the cut
// would land just past a highlight that starts within the final 30% of the
// window, the truncation extends to keep the start of that highlight
// visible. Empty text or no usable terms yields the plain truncated text.
func Highlight(text string, terms []string, maxLength int) string {
	if text == "" {
		return ""
	}

	highlighted := text
	if len(terms) > 0 {
		for _, term := range terms {
			if len(term) <= minHighlightTermLen {
				continue
			}
			re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
			if err != nil {
				continue
			}
			highlighted = re.ReplaceAllString(highlighted, markOpen+term+markClose)
		}
	}

	if len(highlighted) <= maxLength {
		return highlighted
	}

	truncated := highlighted[:maxLength]
	if lastMark := strings.LastIndex(truncated, markOpen); float64(lastMark) > float64(maxLength)*0.7 {
		end := lastMark + len(markOpen) + 10
		if end > len(highlighted) {
			end = len(highlighted)
		}
		truncated = highlighted[:end]
	}

	return truncated + "..."
}

// buildSnippets produces highlighted excerpts for each displayable text
// field of a record. Empty fields are skipped.
func buildSnippets(p prompt.Prompt, terms []string, maxLength int) map[string]string {
	snippets := make(map[string]string)
	for field, text := range map[string]string{
		"title":       p.Title(),
		"description": p.Description(),
		"content":     p.Content(),
	} {
		if text == "" {
			continue
		}
		snippets[field] = Highlight(text, terms, maxLength)
	}
	return snippets
}
