package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/entmatch/internal/domain/query"
)

// Store is the index facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	Searcher
	RecordWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks index connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs read-only queries against the index.
type Searcher interface {
	// SearchQuery returns up to limit hits ranked by the index's native relevance.
	SearchQuery(ctx context.Context, q query.Node, limit int) (*SearchResult, error)
	// Fetch returns all stored fields of a record, or ErrKeyNotFound.
	Fetch(ctx context.Context, key string) (map[string][]string, error)
}

// RecordWriter stores records. Used for fixtures only; the catalog itself is
// maintained outside this service.
type RecordWriter interface {
	PutRecord(ctx context.Context, key string, fields map[string][]string) error
}
