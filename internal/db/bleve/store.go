package bleve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/index/scorch"

	"github.com/kailas-cloud/entmatch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("bleve: store closed")

// Config holds parameters for a bleve store.
type Config struct {
	// Path is the index directory; empty keeps the index in memory.
	Path string
	// MatchField is analyzed on whitespace; every other field is a keyword.
	MatchField string
}

// Store implements db.Store over an in-process bleve index.
type Store struct {
	index  bleve.Index
	mu     sync.RWMutex
	closed bool
}

// NewStore opens the index at cfg.Path, creating it when absent, or builds
// a memory-only index when no path is set.
func NewStore(cfg Config) (*Store, error) {
	if cfg.MatchField == "" {
		return nil, errors.New("match field is required")
	}

	im, err := buildIndexMapping(cfg.MatchField)
	if err != nil {
		return nil, err
	}

	var idx bleve.Index
	switch {
	case cfg.Path == "":
		idx, err = bleve.NewMemOnly(im)
	case exists(cfg.Path):
		idx, err = bleve.Open(cfg.Path)
	default:
		if mkErr := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); mkErr != nil {
			return nil, fmt.Errorf("create index directory: %w", mkErr)
		}
		idx, err = bleve.NewUsing(cfg.Path, im, scorch.Name, scorch.Name, nil)
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpBleveOpen, Err: err}
	}

	return &Store{index: idx}, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) guard() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Ping reports whether the index is open and readable.
func (s *Store) Ping(_ context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}
	if _, err := s.index.DocCount(); err != nil {
		return fmt.Errorf("doc count: %w", err)
	}
	return nil
}

// WaitForReady returns once Ping succeeds. A local index is ready as soon
// as it is opened, so there is nothing to poll.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close releases the index. Subsequent calls return ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	_ = s.index.Close()
}

// PutRecord indexes a record under key, replacing any previous version.
func (s *Store) PutRecord(_ context.Context, key string, fields map[string][]string) error {
	if err := s.guard(); err != nil {
		return err
	}
	doc := make(map[string]any, len(fields))
	for name, values := range fields {
		if len(values) == 0 {
			continue
		}
		doc[name] = values
	}
	if err := s.index.Index(key, doc); err != nil {
		return &db.Error{Op: db.OpBleveIndex, Err: err}
	}
	return nil
}

// Fetch returns the stored fields of key.
func (s *Store) Fetch(ctx context.Context, key string) (map[string][]string, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{key}), 1, 0, false)
	req.Fields = []string{"*"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpBleveSearch, Err: err}
	}
	if len(res.Hits) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return storedFields(res.Hits[0].Fields), nil
}

// storedFields normalizes bleve's stored values, which come back as a bare
// value for single-valued fields and a slice otherwise.
func storedFields(in map[string]any) map[string][]string {
	out := make(map[string][]string, len(in))
	for name, v := range in {
		switch t := v.(type) {
		case []any:
			vals := make([]string, 0, len(t))
			for _, e := range t {
				vals = append(vals, stringify(e))
			}
			out[name] = vals
		default:
			out[name] = []string{stringify(t)}
		}
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
