package query

import (
	"reflect"
	"testing"
)

func TestParse_PlainTerms(t *testing.T) {
	q := Parse("email marketing copy")

	if !reflect.DeepEqual(q.Must(), []string{"email"}) {
		t.Errorf("must = %v", q.Must())
	}
	if !reflect.DeepEqual(q.Should(), []string{"marketing", "copy"}) {
		t.Errorf("should = %v", q.Should())
	}
}

func TestParse_CollapsesWhitespace(t *testing.T) {
	q := Parse("   email \t  marketing   ")

	if !reflect.DeepEqual(q.Must(), []string{"email"}) {
		t.Errorf("must = %v", q.Must())
	}
	if !reflect.DeepEqual(q.Should(), []string{"marketing"}) {
		t.Errorf("should = %v", q.Should())
	}
}

func TestParse_QuotedPhrases(t *testing.T) {
	q := Parse(`"email marketing" newsletter`)

	if !reflect.DeepEqual(q.Phrases(), []string{"email marketing"}) {
		t.Errorf("phrases = %v", q.Phrases())
	}
	if !reflect.DeepEqual(q.Must(), []string{"newsletter"}) {
		t.Errorf("must = %v", q.Must())
	}
	if len(q.Should()) != 0 {
		t.Errorf("should = %v", q.Should())
	}
}

func TestParse_EmptyPhraseIgnored(t *testing.T) {
	q := Parse(`"" hello`)

	if len(q.Phrases()) != 0 {
		t.Errorf("phrases = %v", q.Phrases())
	}
	if !reflect.DeepEqual(q.Must(), []string{"hello"}) {
		t.Errorf("must = %v", q.Must())
	}
}

func TestParse_Operators(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		must    []string
		should  []string
		mustNot []string
	}{
		{
			name: "AND joins remainder into must",
			raw:  "bug AND tracker", must: []string{"bug", "tracker"},
		},
		{
			name: "OR joins remainder into should",
			raw:  "bug OR tracker issue", must: []string{"bug"}, should: []string{"tracker issue"},
		},
		{
			name: "NOT joins remainder into must_not",
			raw:  "NOT spam", mustNot: []string{"spam"},
		},
		{
			name: "operators are case-insensitive",
			raw:  "alpha not beta", must: []string{"alpha"}, mustNot: []string{"beta"},
		},
		{
			name: "only first operator honored",
			raw:  "a AND b OR c", must: []string{"a", "b OR c"},
		},
		{
			name: "trailing operator dropped",
			raw:  "alpha AND", must: []string{"alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Parse(tt.raw)
			if !equalSlice(q.Must(), tt.must) {
				t.Errorf("must = %v, want %v", q.Must(), tt.must)
			}
			if !equalSlice(q.Should(), tt.should) {
				t.Errorf("should = %v, want %v", q.Should(), tt.should)
			}
			if !equalSlice(q.MustNot(), tt.mustNot) {
				t.Errorf("must_not = %v, want %v", q.MustNot(), tt.mustNot)
			}
		})
	}
}

func TestParse_FieldScoped(t *testing.T) {
	q := Parse("title:onboarding category:hr welcome")

	fields := q.Fields()
	if !reflect.DeepEqual(fields["title"], []string{"onboarding"}) {
		t.Errorf("title values = %v", fields["title"])
	}
	if !reflect.DeepEqual(fields["category"], []string{"hr"}) {
		t.Errorf("category values = %v", fields["category"])
	}
	if !reflect.DeepEqual(q.Must(), []string{"welcome"}) {
		t.Errorf("must = %v", q.Must())
	}
}

func TestParse_UnknownFieldIsPlainTerm(t *testing.T) {
	q := Parse("owner:alice report")

	if len(q.Fields()) != 0 {
		t.Errorf("fields = %v", q.Fields())
	}
	if !reflect.DeepEqual(q.Must(), []string{"owner:alice"}) {
		t.Errorf("must = %v", q.Must())
	}
	if !reflect.DeepEqual(q.Should(), []string{"report"}) {
		t.Errorf("should = %v", q.Should())
	}
}

func TestParse_FieldWithEmptyValueIsPlainTerm(t *testing.T) {
	q := Parse("title:")

	if len(q.Fields()) != 0 {
		t.Errorf("fields = %v", q.Fields())
	}
	if !reflect.DeepEqual(q.Must(), []string{"title:"}) {
		t.Errorf("must = %v", q.Must())
	}
}

func TestParse_TermsAndSemanticText(t *testing.T) {
	q := Parse(`"exact phrase" first second`)

	want := []string{"first", "second", "exact phrase"}
	if !reflect.DeepEqual(q.Terms(), want) {
		t.Errorf("terms = %v, want %v", q.Terms(), want)
	}
	if q.SemanticText() != "first second exact phrase" {
		t.Errorf("semantic text = %q", q.SemanticText())
	}
}

func TestParse_IsEmpty(t *testing.T) {
	if !Parse("").IsEmpty() {
		t.Error("empty raw query must parse to an empty predicate")
	}
	if Parse("x").IsEmpty() {
		t.Error("non-empty query must not be empty")
	}
}

func equalSlice(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
