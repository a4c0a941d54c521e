package match

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/entmatch/internal/domain/query"
	"github.com/kailas-cloud/entmatch/internal/domain/record"
	"github.com/kailas-cloud/entmatch/internal/metrics"
)

// DefaultLimit caps the candidate window when the caller passes none.
const DefaultLimit = 100

// Engine finds the single best record for a query tree. Index failures
// are logged and reported as no match, never returned.
type Engine struct {
	index   Index
	idField string
	exclude map[string]struct{}
	logger  *zap.Logger
}

// New creates an Engine. idField names the record id in flattened output;
// excluded fields are dropped from it along with record.VersionField.
func New(index Index, idField string, excluded []string, logger *zap.Logger) *Engine {
	exclude := make(map[string]struct{}, len(excluded)+1)
	exclude[record.VersionField] = struct{}{}
	for _, f := range excluded {
		exclude[f] = struct{}{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{index: index, idField: idField, exclude: exclude, logger: logger}
}

// FindBestMatch runs q and returns the top ranked record. limit <= 0 means
// DefaultLimit.
func (e *Engine) FindBestMatch(ctx context.Context, q query.Node, limit int) (record.Record, bool) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ids, err := e.index.Search(ctx, q, limit)
	if err != nil {
		metrics.IndexErrorsTotal.WithLabelValues("search").Inc()
		e.logger.Error("Index search failed",
			zap.Stringer("query", q),
			zap.Int("limit", limit),
			zap.Error(err),
		)
		return record.Record{}, false
	}
	if len(ids) == 0 {
		e.logger.Debug("No candidate records", zap.Stringer("query", q))
		return record.Record{}, false
	}

	rec, err := e.index.Get(ctx, ids[0])
	if err != nil {
		metrics.IndexErrorsTotal.WithLabelValues("fetch").Inc()
		e.logger.Error("Record fetch failed",
			zap.String("record_id", ids[0]),
			zap.Error(err),
		)
		return record.Record{}, false
	}

	e.logger.Debug("Best match found",
		zap.String("record_id", rec.ID()),
		zap.Int("candidates", len(ids)),
	)
	return rec, true
}

// Document flattens rec for the response: one value per field, the id
// under the configured id field, excluded fields removed.
func (e *Engine) Document(rec record.Record) map[string]string {
	return rec.Flatten(e.idField, e.exclude)
}
