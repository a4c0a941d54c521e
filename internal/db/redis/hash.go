package redis

import (
	"context"
	"errors"
	"strings"

	"github.com/kailas-cloud/entmatch/internal/db"
)

// PutRecord stores a record hash. The match field is space-joined, tag
// fields are joined with the tag separator, other fields keep their first
// value.
func (s *Store) PutRecord(ctx context.Context, key string, fields map[string][]string) error {
	cmd := s.b().Hset().Key(s.recordKey(key)).FieldValue()
	n := 0
	for name, values := range fields {
		if len(values) == 0 {
			continue
		}
		cmd = cmd.FieldValue(name, s.joinValues(name, values))
		n++
	}
	if n == 0 {
		return &db.Error{Op: db.OpHSet, Err: errors.New("record has no values")}
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// Fetch returns all stored fields of a record hash.
func (s *Store) Fetch(ctx context.Context, key string) (map[string][]string, error) {
	cmd := s.b().Hgetall().Key(s.recordKey(key)).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	if len(m) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return s.splitFields(m), nil
}

func (s *Store) joinValues(name string, values []string) string {
	f, ok := s.index.Field(name)
	if !ok {
		return values[0]
	}
	switch f.Type {
	case db.IndexFieldText:
		return strings.Join(values, " ")
	case db.IndexFieldTag:
		return strings.Join(values, f.TagSeparator)
	default:
		return values[0]
	}
}

func (s *Store) splitFields(m map[string]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for name, raw := range m {
		out[name] = s.splitValue(name, raw)
	}
	return out
}

func (s *Store) splitValue(name, raw string) []string {
	f, ok := s.index.Field(name)
	if !ok {
		return []string{raw}
	}
	switch f.Type {
	case db.IndexFieldText:
		return strings.Fields(raw)
	case db.IndexFieldTag:
		if f.TagSeparator == "" {
			return []string{raw}
		}
		return strings.Split(raw, f.TagSeparator)
	default:
		return []string{raw}
	}
}
