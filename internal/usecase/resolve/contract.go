package resolve

import (
	"context"

	"github.com/kailas-cloud/entmatch/internal/domain/query"
	"github.com/kailas-cloud/entmatch/internal/domain/record"
)

// Matcher finds and shapes the best record for a query tree.
type Matcher interface {
	FindBestMatch(ctx context.Context, q query.Node, limit int) (record.Record, bool)
	Document(rec record.Record) map[string]string
}
