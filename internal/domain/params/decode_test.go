package params

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/kailas-cloud/entmatch/internal/domain"
	"github.com/kailas-cloud/entmatch/internal/domain/definition"
)

// orderedSource replays keys in a fixed order to exercise order independence.
type orderedSource struct {
	keys []string
	m    map[string]string
}

func (s orderedSource) Keys() []string { return s.keys }

func (s orderedSource) Get(key string) (string, bool) {
	v, ok := s.m[key]
	return v, ok
}

func samsungParams() Map {
	return Map{
		"q.id":           "1",
		"q.0.t.0.text":   "samsung",
		"q.0.t.0.fuzzy":  "false",
		"q.0.t.1.text":   "galaxy",
		"q.0.t.1.fuzzy":  "true",
		"q.0.t.1.var":    "1",
		"q.0.t.1.prefix": "3",
		"q.1.t.0.text":   "samsung",
		"q.1.t.0.fuzzy":  "false",
		"12":             "false",
		"something":      "false",
	}
}

func TestDecode_TwoGroups(t *testing.T) {
	def, err := Decode(samsungParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.ID() != "1" {
		t.Errorf("ID() = %q", def.ID())
	}
	groups := def.Groups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Len() != 2 || groups[1].Len() != 1 {
		t.Fatalf("group sizes = %d, %d", groups[0].Len(), groups[1].Len())
	}

	first := groups[0].Tokens()[0]
	if first.Text() != "samsung" || first.IsFuzzy() {
		t.Errorf("groups[0][0] = %v", first)
	}
	second := groups[0].Tokens()[1]
	if second.Text() != "galaxy" || !second.IsFuzzy() {
		t.Errorf("groups[0][1] = %v", second)
	}
	if second.PrefixLength() != 3 {
		t.Errorf("prefix = %d, want 3", second.PrefixLength())
	}
	if second.MaxEdits() != 1 {
		t.Errorf("max edits = %d, want 1", second.MaxEdits())
	}
	other := groups[1].Tokens()[0]
	if other.Text() != "samsung" || other.IsFuzzy() {
		t.Errorf("groups[1][0] = %v", other)
	}
}

func TestDecode_OrderIndependent(t *testing.T) {
	m := samsungParams()
	want, err := Decode(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := m.Keys()
	for i := 0; i < len(keys); i++ {
		rotated := append(append([]string{}, keys[i:]...), keys[:i]...)
		got, err := Decode(orderedSource{keys: rotated, m: m})
		if err != nil {
			t.Fatalf("rotation %d: unexpected error: %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("rotation %d: got %v, want %v", i, got, want)
		}
	}
}

func TestDecode_GroupsSortedAscending(t *testing.T) {
	src := orderedSource{
		keys: []string{"q.7.t.0.text", "q.7.t.0.fuzzy", "q.2.t.0.text", "q.2.t.0.fuzzy", "q.id"},
		m: map[string]string{
			"q.id":          "1",
			"q.7.t.0.text":  "seven",
			"q.7.t.0.fuzzy": "false",
			"q.2.t.0.text":  "two",
			"q.2.t.0.fuzzy": "false",
		},
	}
	def, err := Decode(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := def.Groups()[0].Tokens()[0].Text(); got != "two" {
		t.Errorf("first group = %q, want two", got)
	}
	if got := def.Groups()[1].Tokens()[0].Text(); got != "seven" {
		t.Errorf("second group = %q, want seven", got)
	}
}

func TestDecode_SparseTokenIndices(t *testing.T) {
	def, err := Decode(Map{
		"q.id":          "1",
		"q.0.t.5.text":  "b",
		"q.0.t.5.fuzzy": "false",
		"q.0.t.1.text":  "a",
		"q.0.t.1.fuzzy": "false",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tokens := def.Groups()[0].Tokens()
	if len(tokens) != 2 || tokens[0].Text() != "a" || tokens[1].Text() != "b" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestDecode_UnknownKeysIgnored(t *testing.T) {
	base := Map{"q.id": "1", "q.0.t.0.text": "iphone", "q.0.t.0.fuzzy": "false"}
	want, err := Decode(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noisy := Map{}
	for k, v := range base {
		noisy[k] = v
	}
	for _, k := range []string{"q.", "q.x", "q.0.t.0.boost", "q.10.t.0.text", "q.0.x.1.text", "fl", "wt"} {
		noisy[k] = "junk"
	}

	got, err := Decode(noisy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecode_OnlyID(t *testing.T) {
	def, err := Decode(Map{"q.id": "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(def.Groups()) != 0 {
		t.Errorf("expected no groups, got %d", len(def.Groups()))
	}
}

func TestDecode_FuzzyFlagPermissive(t *testing.T) {
	tests := []struct {
		flag  string
		fuzzy bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"false", false},
		{"flase", false},
		{"1", false},
		{"yes", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			def, err := Decode(Map{
				"q.id":           "1",
				"q.0.t.0.text":   "x",
				"q.0.t.0.fuzzy":  tt.flag,
				"q.0.t.0.var":    "1",
				"q.0.t.0.prefix": "0",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := def.Groups()[0].Tokens()[0].IsFuzzy(); got != tt.fuzzy {
				t.Errorf("fuzzy = %v, want %v", got, tt.fuzzy)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		params  Map
		wantErr error
		wantKey string
	}{
		{
			name:    "missing id",
			params:  Map{"q.0.t.0.text": "x", "q.0.t.0.fuzzy": "false"},
			wantErr: domain.ErrMissingSearchID,
			wantKey: "q.id",
		},
		{
			name:    "empty id",
			params:  Map{"q.id": ""},
			wantErr: domain.ErrMissingSearchID,
			wantKey: "q.id",
		},
		{
			name:    "missing text",
			params:  Map{"q.id": "1", "q.0.t.0.fuzzy": "false"},
			wantErr: domain.ErrMissingTokenText,
			wantKey: "q.0.t.0.text",
		},
		{
			name:    "missing fuzzy flag",
			params:  Map{"q.id": "1", "q.0.t.0.text": "x"},
			wantErr: domain.ErrMissingFuzzyFlag,
			wantKey: "q.0.t.0.fuzzy",
		},
		{
			name:    "fuzzy without var",
			params:  Map{"q.id": "1", "q.0.t.0.text": "x", "q.0.t.0.fuzzy": "true", "q.0.t.0.prefix": "1"},
			wantErr: domain.ErrIncompleteFuzzySpec,
			wantKey: "q.0.t.0.var",
		},
		{
			name:    "fuzzy without prefix",
			params:  Map{"q.id": "1", "q.0.t.0.text": "x", "q.0.t.0.fuzzy": "true", "q.0.t.0.var": "1"},
			wantErr: domain.ErrIncompleteFuzzySpec,
			wantKey: "q.0.t.0.prefix",
		},
		{
			name: "unparseable var",
			params: Map{
				"q.id": "1", "q.0.t.0.text": "x", "q.0.t.0.fuzzy": "true",
				"q.0.t.0.var": "one", "q.0.t.0.prefix": "1",
			},
			wantErr: domain.ErrInvalidNumber,
			wantKey: "q.0.t.0.var",
		},
		{
			name: "negative prefix",
			params: Map{
				"q.id": "1", "q.0.t.0.text": "x", "q.0.t.0.fuzzy": "true",
				"q.0.t.0.var": "1", "q.0.t.0.prefix": "-2",
			},
			wantErr: domain.ErrInvalidNumber,
			wantKey: "q.0.t.0.prefix",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.params)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var de *domain.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *domain.DecodeError, got %T", err)
			}
			if de.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", de.Key, tt.wantKey)
			}
		})
	}
}

func TestDecode_FuzzyIgnoresVarWhenExact(t *testing.T) {
	def, err := Decode(Map{
		"q.id": "1", "q.0.t.0.text": "x", "q.0.t.0.fuzzy": "false",
		"q.0.t.0.var": "not-a-number",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Groups()[0].Tokens()[0].IsFuzzy() {
		t.Error("expected exact token")
	}
}

func TestValues_FirstValueWins(t *testing.T) {
	v := Values(url.Values{
		"q.id":          {"1", "2"},
		"q.0.t.0.text":  {"iphone"},
		"q.0.t.0.fuzzy": {"false"},
	})
	def, err := Decode(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.ID() != "1" {
		t.Errorf("ID() = %q, want first value", def.ID())
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	a, _ := definition.NewExactToken("samsung")
	b, _ := definition.NewFuzzyToken("galaxy", 1, 3)
	g1, _ := definition.NewGroup(a, b)
	g2, _ := definition.NewGroup(a)
	want, _ := definition.New("42", []definition.Group{g1, g2})

	v, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v.Get("q.0.t.1.var") != "1" || v.Get("q.0.t.1.prefix") != "3" {
		t.Errorf("fuzzy attributes not encoded: %v", v)
	}
	if _, ok := v["q.0.t.0.var"]; ok {
		t.Error("exact token must not carry var")
	}

	got, err := Decode(Values(v))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncode_TooManyGroups(t *testing.T) {
	tok, _ := definition.NewExactToken("x")
	g, _ := definition.NewGroup(tok)
	groups := make([]definition.Group, MaxIndex+2)
	for i := range groups {
		groups[i] = g
	}
	def, _ := definition.New("1", groups)

	_, err := Encode(def)
	if !errors.Is(err, domain.ErrAddressSpaceExceeded) {
		t.Fatalf("expected ErrAddressSpaceExceeded, got %v", err)
	}
}
