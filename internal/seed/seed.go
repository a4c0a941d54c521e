// Package seed loads a YAML fixture of catalog records into the index for
// local and test environments.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/entmatch/internal/domain/record"
)

// Writer stores records.
type Writer interface {
	Put(ctx context.Context, rec record.Record) error
}

// File is the fixture layout.
type File struct {
	Records []Entry `yaml:"records"`
}

// Entry is one fixture record.
type Entry struct {
	ID     string                `yaml:"id"`
	Fields map[string]StringList `yaml:"fields"`
}

// StringList accepts either a scalar or a sequence of scalars.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		out := make(StringList, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: field values must be scalars", n.Line)
			}
			out = append(out, n.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a scalar or a list", node.Line)
	}
}

// Parse decodes a fixture and converts it to records.
func Parse(data []byte) ([]record.Record, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Records))
	out := make([]record.Record, 0, len(f.Records))
	for i, e := range f.Records {
		if e.ID == "" {
			return nil, fmt.Errorf("record %d: id is required", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = struct{}{}

		fields := make(map[string][]string, len(e.Fields))
		for name, vals := range e.Fields {
			fields[name] = vals
		}
		out = append(out, record.New(e.ID, fields))
	}
	return out, nil
}

// Load reads the fixture at path and writes every record. It stops at the
// first failure.
func Load(ctx context.Context, path string, w Writer, logger *zap.Logger) (int, error) {
	if path == "" {
		return 0, errors.New("seed path is required")
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("read seed %s: %w", path, err)
	}

	recs, err := Parse(data)
	if err != nil {
		return 0, err
	}

	for i, rec := range recs {
		if err := w.Put(ctx, rec); err != nil {
			return i, fmt.Errorf("seed record %s: %w", rec.ID(), err)
		}
	}

	logger.Info("Seed loaded",
		zap.String("path", path),
		zap.Int("records", len(recs)),
	)
	return len(recs), nil
}
