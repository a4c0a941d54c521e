package params

import "strings"

// Parameter key segments.
const (
	groupSegment = "q"
	tokenSegment = "t"

	// SearchIDKey holds the search-definition-id.
	SearchIDKey = "q.id"
)

// MaxIndex is the highest addressable group or token index. Indices are a
// single ASCII digit, which caps a definition at 10 groups of 10 tokens.
const MaxIndex = 9

// Field is the token attribute addressed by a parameter key.
type Field string

// Token attributes.
const (
	FieldText   Field = "text"
	FieldFuzzy  Field = "fuzzy"
	FieldVar    Field = "var"
	FieldPrefix Field = "prefix"
)

func (f Field) isKnown() bool {
	switch f {
	case FieldText, FieldFuzzy, FieldVar, FieldPrefix:
		return true
	}
	return false
}

// Path is a parsed q.<group>.t.<token>.<field> key.
type Path struct {
	Group int
	Token int
	Field Field
}

// Key renders the canonical parameter key for p.
func (p Path) Key() string {
	return Key(p.Group, p.Token, p.Field)
}

// Key renders the parameter key addressing field of token t in group g.
func Key(g, t int, field Field) string {
	var b strings.Builder
	b.Grow(len(groupSegment) + len(tokenSegment) + len(field) + 6)
	b.WriteString(groupSegment)
	b.WriteByte('.')
	b.WriteByte(byte('0' + g))
	b.WriteByte('.')
	b.WriteString(tokenSegment)
	b.WriteByte('.')
	b.WriteByte(byte('0' + t))
	b.WriteByte('.')
	b.WriteString(string(field))
	return b.String()
}

// ParsePath parses a token parameter key. It reports false for any key that
// is not exactly q.<digit>.t.<digit>.<known field>.
func ParsePath(key string) (Path, bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 5 {
		return Path{}, false
	}
	if parts[0] != groupSegment || parts[2] != tokenSegment {
		return Path{}, false
	}
	g, ok := parseIndex(parts[1])
	if !ok {
		return Path{}, false
	}
	t, ok := parseIndex(parts[3])
	if !ok {
		return Path{}, false
	}
	f := Field(parts[4])
	if !f.isKnown() {
		return Path{}, false
	}
	return Path{Group: g, Token: t, Field: f}, true
}

func parseIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}
