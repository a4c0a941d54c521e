package match

import (
	"context"

	"github.com/kailas-cloud/entmatch/internal/domain/query"
	"github.com/kailas-cloud/entmatch/internal/domain/record"
)

// Index is the read contract with the catalog index.
type Index interface {
	// Search returns the ids of up to limit records matching q, best first.
	Search(ctx context.Context, q query.Node, limit int) ([]string, error)
	// Get loads the stored fields of a record.
	Get(ctx context.Context, id string) (record.Record, error)
}
