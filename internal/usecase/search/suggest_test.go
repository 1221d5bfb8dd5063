package search

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/promptdex/internal/domain/search/query"
)

func TestBuildSuggestionsTagFrequency(t *testing.T) {
	top := []ResultView{
		{Tags: []string{"writing", "marketing"}},
		{Tags: []string{"marketing"}},
		{Tags: []string{"writing", "marketing", "sales"}},
	}

	got := buildSuggestions(query.Parse("email"), top)
	want := []string{
		`Add tag: "marketing"`,
		`Add tag: "writing"`,
		`Add tag: "sales"`,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d suggestions %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildSuggestionsSkipsQueryImpliedTags(t *testing.T) {
	top := []ResultView{
		{Tags: []string{"Email", "writing"}},
	}

	got := buildSuggestions(query.Parse("email"), top)
	for _, s := range got {
		if strings.Contains(strings.ToLower(s), `"email"`) {
			t.Errorf("query-implied tag suggested: %q", s)
		}
	}
}

func TestBuildSuggestionsCategoryFromTopResult(t *testing.T) {
	top := []ResultView{
		{Category: "Marketing", Tags: nil},
		{Category: "Sales", Tags: nil},
	}

	got := buildSuggestions(query.Parse("email"), top)
	if len(got) != 1 || got[0] != `Search in category: "Marketing"` {
		t.Fatalf("got %v, want the top result's category", got)
	}
}

func TestBuildSuggestionsCap(t *testing.T) {
	top := []ResultView{
		{Category: "Marketing", Tags: []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7"}},
	}

	got := buildSuggestions(query.Parse("email"), top)
	if len(got) > maxSuggestions {
		t.Fatalf("got %d suggestions, want at most %d", len(got), maxSuggestions)
	}
}

func TestBuildSuggestionsOnlyTopHitsCounted(t *testing.T) {
	var top []ResultView
	for i := 0; i < suggestionTopHits; i++ {
		top = append(top, ResultView{Tags: []string{"common"}})
	}
	// A tag appearing only beyond the top window must not be suggested.
	top = append(top, ResultView{Tags: []string{"beyond"}})

	got := buildSuggestions(query.Parse("email"), top)
	for _, s := range got {
		if strings.Contains(s, `"beyond"`) {
			t.Errorf("tag outside the top window suggested: %q", s)
		}
	}
}

func TestBuildSuggestionsNoResults(t *testing.T) {
	if got := buildSuggestions(query.Parse("email"), nil); len(got) != 0 {
		t.Fatalf("got %v, want no suggestions for empty results", got)
	}
}
