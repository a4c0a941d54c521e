package definition

import (
	"strings"
	"testing"
)

func TestNewExactToken(t *testing.T) {
	tok, err := NewExactToken("iphone")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Text() != "iphone" {
		t.Errorf("Text() = %q", tok.Text())
	}
	if tok.IsFuzzy() || tok.Mode() != Exact {
		t.Error("expected exact mode")
	}
	if tok.MaxEdits() != 0 || tok.PrefixLength() != 0 {
		t.Errorf("exact token edits/prefix = %d/%d", tok.MaxEdits(), tok.PrefixLength())
	}
}

func TestNewExactToken_EmptyText(t *testing.T) {
	if _, err := NewExactToken(""); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestNewFuzzyToken(t *testing.T) {
	tok, err := NewFuzzyToken("galaxy", 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tok.IsFuzzy() {
		t.Error("expected fuzzy mode")
	}
	if tok.MaxEdits() != 1 {
		t.Errorf("MaxEdits() = %d", tok.MaxEdits())
	}
	if tok.PrefixLength() != 3 {
		t.Errorf("PrefixLength() = %d", tok.PrefixLength())
	}
}

func TestNewFuzzyToken_Negative(t *testing.T) {
	tests := []struct {
		name           string
		edits, prefix  int
		wantErrContain string
	}{
		{"negative edits", -1, 0, "max edits"},
		{"negative prefix", 1, -2, "prefix length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFuzzyToken("x", tt.edits, tt.prefix)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErrContain) {
				t.Errorf("error = %q", err)
			}
		})
	}
}

func TestNewGroup(t *testing.T) {
	a, _ := NewExactToken("samsung")
	b, _ := NewFuzzyToken("galaxy", 1, 3)

	g, err := NewGroup(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("Len() = %d", g.Len())
	}
	if g.Tokens()[0].Text() != "samsung" || g.Tokens()[1].Text() != "galaxy" {
		t.Errorf("tokens out of order: %v", g.Tokens())
	}
}

func TestNewGroup_Empty(t *testing.T) {
	if _, err := NewGroup(); err == nil {
		t.Fatal("expected error for empty group")
	}
}

func TestNew_RequiresID(t *testing.T) {
	if _, err := New("", nil); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestNew_CopiesGroups(t *testing.T) {
	tok, _ := NewExactToken("a")
	g, _ := NewGroup(tok)
	groups := []Group{g}

	d, err := New("1", groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	groups[0] = Group{}
	if d.Groups()[0].Len() != 1 {
		t.Error("definition shares caller slice")
	}
	if d.ID() != "1" {
		t.Errorf("ID() = %q", d.ID())
	}
}
