package definition

import "fmt"

// Mode selects how a token is compared with indexed values.
type Mode int

const (
	// Exact requires an equal indexed token.
	Exact Mode = iota
	// Fuzzy allows a bounded edit distance behind an exact prefix.
	Fuzzy
)

func (m Mode) String() string {
	if m == Fuzzy {
		return "fuzzy"
	}
	return "exact"
}

// Token is a single term of a query group (immutable value object).
type Token struct {
	text         string
	mode         Mode
	maxEdits     int
	prefixLength int
}

// NewExactToken creates a token that matches only an identical indexed token.
func NewExactToken(text string) (Token, error) {
	if text == "" {
		return Token{}, fmt.Errorf("token text is required")
	}
	return Token{text: text, mode: Exact}, nil
}

// NewFuzzyToken creates a token matching indexed tokens within maxEdits
// edits whose first prefixLength characters are identical.
func NewFuzzyToken(text string, maxEdits, prefixLength int) (Token, error) {
	if text == "" {
		return Token{}, fmt.Errorf("token text is required")
	}
	if maxEdits < 0 {
		return Token{}, fmt.Errorf("max edits must be non-negative, got %d", maxEdits)
	}
	if prefixLength < 0 {
		return Token{}, fmt.Errorf("prefix length must be non-negative, got %d", prefixLength)
	}
	return Token{text: text, mode: Fuzzy, maxEdits: maxEdits, prefixLength: prefixLength}, nil
}

// Text returns the token text.
func (t Token) Text() string { return t.text }

// Mode returns the comparison mode.
func (t Token) Mode() Mode { return t.mode }

// IsFuzzy reports whether the token uses edit-distance matching.
func (t Token) IsFuzzy() bool { return t.mode == Fuzzy }

// MaxEdits returns the edit budget (zero for exact tokens).
func (t Token) MaxEdits() int { return t.maxEdits }

// PrefixLength returns the number of leading characters that must match exactly.
func (t Token) PrefixLength() int { return t.prefixLength }

func (t Token) String() string {
	if t.mode == Fuzzy {
		return fmt.Sprintf("(%s, fuzzy, %d, %d)", t.text, t.prefixLength, t.maxEdits)
	}
	return fmt.Sprintf("(%s, exact)", t.text)
}

// Group is an ordered set of tokens that must all match one record whose
// token count equals Len.
type Group struct {
	tokens []Token
}

// NewGroup creates a group from tokens in match order.
func NewGroup(tokens ...Token) (Group, error) {
	if len(tokens) == 0 {
		return Group{}, fmt.Errorf("group requires at least one token")
	}
	return Group{tokens: append([]Token(nil), tokens...)}, nil
}

// Tokens returns the group tokens in order.
func (g Group) Tokens() []Token { return g.tokens }

// Len returns the number of tokens, which is also the required token count.
func (g Group) Len() int { return len(g.tokens) }

// Definition is one resolution request: a scope id and alternative groups,
// any one of which may match.
type Definition struct {
	id     string
	groups []Group
}

// New validates and creates a Definition.
func New(id string, groups []Group) (Definition, error) {
	if id == "" {
		return Definition{}, fmt.Errorf("search definition id is required")
	}
	return Definition{id: id, groups: append([]Group(nil), groups...)}, nil
}

// ID returns the search-definition-id that scopes eligible records.
func (d Definition) ID() string { return d.id }

// Groups returns the alternative groups in order.
func (d Definition) Groups() []Group { return d.groups }
