package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/entmatch/internal/db"
	"github.com/kailas-cloud/entmatch/internal/domain"
	"github.com/kailas-cloud/entmatch/internal/domain/query"
	domrec "github.com/kailas-cloud/entmatch/internal/domain/record"
)

// store is the consumer interface for record reads and writes (ISP).
type store interface {
	SearchQuery(ctx context.Context, q query.Node, limit int) (*db.SearchResult, error)
	Fetch(ctx context.Context, key string) (map[string][]string, error)
	PutRecord(ctx context.Context, key string, fields map[string][]string) error
}

// Repo implements usecase/match.Index over a db store.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search returns the ids of up to limit records matching q, best first.
func (r *Repo) Search(ctx context.Context, q query.Node, limit int) ([]string, error) {
	sr, err := r.store.SearchQuery(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	ids := make([]string, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		ids = append(ids, e.Key)
	}
	return ids, nil
}

// Get loads the record stored under id.
func (r *Repo) Get(ctx context.Context, id string) (domrec.Record, error) {
	fields, err := r.store.Fetch(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrec.Record{}, fmt.Errorf("record %s: %w", id, domain.ErrRecordNotFound)
		}
		return domrec.Record{}, fmt.Errorf("fetch record %s: %w", id, err)
	}
	return domrec.New(id, fields), nil
}

// Put stores rec under its id.
func (r *Repo) Put(ctx context.Context, rec domrec.Record) error {
	if rec.ID() == "" {
		return errors.New("record id is required")
	}
	if err := r.store.PutRecord(ctx, rec.ID(), rec.Fields()); err != nil {
		return fmt.Errorf("put record %s: %w", rec.ID(), err)
	}
	return nil
}
