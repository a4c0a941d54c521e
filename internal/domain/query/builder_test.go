package query

import (
	"testing"

	"github.com/kailas-cloud/entmatch/internal/domain/definition"
)

func exact(t *testing.T, text string) definition.Token {
	t.Helper()
	tok, err := definition.NewExactToken(text)
	if err != nil {
		t.Fatalf("NewExactToken: %v", err)
	}
	return tok
}

func fuzzy(t *testing.T, text string, edits, prefix int) definition.Token {
	t.Helper()
	tok, err := definition.NewFuzzyToken(text, edits, prefix)
	if err != nil {
		t.Fatalf("NewFuzzyToken: %v", err)
	}
	return tok
}

func group(t *testing.T, tokens ...definition.Token) definition.Group {
	t.Helper()
	g, err := definition.NewGroup(tokens...)
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}
	return g
}

func testBuilder() Builder {
	return NewBuilder("token_count", "search_def_id")
}

func TestBuild_GroupSizesTwoAndThree(t *testing.T) {
	groups := []definition.Group{
		group(t, exact(t, "a"), exact(t, "b")),
		group(t, exact(t, "c"), exact(t, "d"), exact(t, "e")),
	}
	q := testBuilder().Build("variant", "1", groups)

	want := "(+((+(+variant:a +variant:b) #token_count:2) " +
		"(+(+variant:c +variant:d +variant:e) #token_count:3)) #search_def_id:1)"
	if q.String() != want {
		t.Fatalf("String() =\n%s\nwant\n%s", q.String(), want)
	}

	root, ok := q.(And)
	if !ok || len(root.Clauses) != 2 {
		t.Fatalf("root = %#v", q)
	}
	or, ok := root.Clauses[0].(Or)
	if !ok || len(or.Clauses) != 2 {
		t.Fatalf("first root clause = %#v", root.Clauses[0])
	}
	scope, ok := root.Clauses[1].(Filter)
	if !ok {
		t.Fatalf("second root clause = %#v", root.Clauses[1])
	}
	if scope.Clause != (Term{Field: "search_def_id", Text: "1"}) {
		t.Errorf("scope filter = %#v", scope.Clause)
	}

	for i, size := range []string{"2", "3"} {
		g, ok := or.Clauses[i].(And)
		if !ok || len(g.Clauses) != 2 {
			t.Fatalf("group %d = %#v", i, or.Clauses[i])
		}
		count, ok := g.Clauses[1].(Filter)
		if !ok {
			t.Fatalf("group %d count clause = %#v", i, g.Clauses[1])
		}
		if count.Clause != (Term{Field: "token_count", Text: size}) {
			t.Errorf("group %d count = %#v", i, count.Clause)
		}
	}
}

func TestBuild_FuzzyToken(t *testing.T) {
	q := testBuilder().Build("variant", "1", []definition.Group{
		group(t, exact(t, "samsung"), fuzzy(t, "galaxy", 1, 3)),
	})

	tokens := q.(And).Clauses[0].(Or).Clauses[0].(And).Clauses[0].(And)
	if tokens.Clauses[0] != (Term{Field: "variant", Text: "samsung"}) {
		t.Errorf("token 0 = %#v", tokens.Clauses[0])
	}
	want := Fuzzy{Field: "variant", Text: "galaxy", MaxEdits: 1, PrefixLength: 3}
	if tokens.Clauses[1] != want {
		t.Errorf("token 1 = %#v, want %#v", tokens.Clauses[1], want)
	}
	if got := tokens.Clauses[1].String(); got != "variant:galaxy~1/3" {
		t.Errorf("String() = %q", got)
	}
}

func TestBuild_NoGroups(t *testing.T) {
	q := testBuilder().Build("variant", "1", nil)
	or := q.(And).Clauses[0].(Or)
	if len(or.Clauses) != 0 {
		t.Fatalf("expected empty disjunction, got %#v", or)
	}
	if Matches(q, Fields{"search_def_id": {"1"}}) {
		t.Error("empty disjunction must match nothing")
	}
}

func TestBuildDefinition(t *testing.T) {
	def, err := definition.New("9", []definition.Group{group(t, exact(t, "x"))})
	if err != nil {
		t.Fatalf("definition.New: %v", err)
	}
	got := testBuilder().BuildDefinition("variant", def).String()
	want := "(+((+(+variant:x) #token_count:1)) #search_def_id:9)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
