package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_RecordSchema(t *testing.T) {
	idx := NewIndex("entmatch:idx").
		Prefix("entmatch:rec:").
		NoStopwords().
		Text("variant", true).
		Tag("token_count", ",").
		Tag("search_def_id", ",").
		MustBuild()

	if idx.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", idx.StorageType)
	}
	if len(idx.Fields) != 3 {
		t.Fatalf("fields count = %d, want 3", len(idx.Fields))
	}
	if f := idx.Fields[0]; f.Type != IndexFieldText || !f.NoStem {
		t.Errorf("field[0] = %+v, want variant TEXT NOSTEM", f)
	}
	if f := idx.Fields[2]; f.Type != IndexFieldTag || !f.TagCaseSensitive || f.TagSeparator != "," {
		t.Errorf("field[2] = %+v", f)
	}

	got := idx.String()
	want := "FT.CREATE entmatch:idx ON HASH PREFIX entmatch:rec: STOPWORDS 0 SCHEMA " +
		"variant TEXT NOSTEM token_count TAG search_def_id TAG"
	if got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestIndexBuilder_FieldLookup(t *testing.T) {
	idx := NewIndex("i").Text("variant", true).Tag("ids", ",").MustBuild()
	if f, ok := idx.Field("ids"); !ok || f.Type != IndexFieldTag {
		t.Errorf("Field(ids) = %+v, %v", f, ok)
	}
	if _, ok := idx.Field("nope"); ok {
		t.Error("Field(nope) should be absent")
	}
}

func TestIndexBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		builder *IndexBuilder
		wantErr string
	}{
		{"empty name", NewIndex("").Tag("a", ","), "name is required"},
		{"invalid name", NewIndex("bad name").Tag("a", ","), "invalid characters"},
		{"no fields", NewIndex("idx"), "at least one field"},
		{"duplicate field", NewIndex("idx").Tag("a", ",").Text("a", true), "duplicate"},
		{"empty field name", NewIndex("idx").Tag("", ","), "field name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	for s, want := range map[string]bool{
		"entmatch:idx": true,
		"a_b-c":        true,
		"":             false,
		"with space":   false,
		"dot.name":     false,
	} {
		if got := IsValidIdentifier(s); got != want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpSearch, Err: ErrIndexNotFound}
	if !strings.HasPrefix(err.Error(), "FT.SEARCH: ") {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != ErrIndexNotFound {
		t.Error("Unwrap mismatch")
	}
}
