package search

import (
	"strings"
	"testing"
	"time"
)

func TestHighlightWrapsTerms(t *testing.T) {
	got := Highlight("Draft an Email campaign", []string{"email"}, 200)
	want := "Draft an <mark>email</mark> campaign"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlightMultipleOccurrences(t *testing.T) {
	got := Highlight("email to email", []string{"email"}, 200)
	if strings.Count(got, markOpen) != 2 {
		t.Errorf("got %d highlights in %q, want 2", strings.Count(got, markOpen), got)
	}
}

func TestHighlightSkipsShortTerms(t *testing.T) {
	got := Highlight("go to the store", []string{"go", "to"}, 200)
	if strings.Contains(got, markOpen) {
		t.Errorf("short terms were highlighted: %q", got)
	}
}

func TestHighlightRegexMetacharacters(t *testing.T) {
	got := Highlight("price is $10 (approx)", []string{"(approx)"}, 200)
	want := "price is $10 <mark>(approx)</mark>"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlightTruncation(t *testing.T) {
	text := strings.Repeat("a", 300)
	got := Highlight(text, nil, 200)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated snippet missing ellipsis: %q", got)
	}
	if len(got) != 203 {
		t.Errorf("snippet length = %d, want 203", len(got))
	}
}

func TestHighlightTruncationKeepsLateMark(t *testing.T) {
	// The term sits just inside the final 30% of the window, so the cut
	// extends past the mark opening instead of slicing through it.
	text := strings.Repeat("a", 160) + " banana " + strings.Repeat("b", 100)
	got := Highlight(text, []string{"banana"}, 200)
	if !strings.Contains(got, markOpen) {
		t.Fatalf("late highlight was cut off: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("extended snippet missing ellipsis: %q", got)
	}
}

func TestHighlightEmptyText(t *testing.T) {
	if got := Highlight("", []string{"email"}, 200); got != "" {
		t.Errorf("Highlight(\"\") = %q, want empty", got)
	}
}

func TestHighlightNoTerms(t *testing.T) {
	if got := Highlight("short text", nil, 200); got != "short text" {
		t.Errorf("Highlight = %q, want unchanged input", got)
	}
}

func TestBuildSnippetsSkipsEmptyFields(t *testing.T) {
	p := mkPrompt(t, "p1", "Email helper", "", "Write an email", nil, 0, time.Now().UTC())

	snippets := buildSnippets(p, []string{"email"}, 200)
	if _, ok := snippets["description"]; ok {
		t.Error("empty description produced a snippet")
	}
	if got := snippets["title"]; !strings.Contains(got, markOpen) {
		t.Errorf("title snippet %q missing highlight", got)
	}
	if got := snippets["content"]; !strings.Contains(got, markOpen) {
		t.Errorf("content snippet %q missing highlight", got)
	}
}
