package resolve

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/entmatch/internal/domain"
	"github.com/kailas-cloud/entmatch/internal/domain/params"
	"github.com/kailas-cloud/entmatch/internal/domain/query"
	"github.com/kailas-cloud/entmatch/internal/metrics"
)

// Resolution is the outcome of resolving one request. Fields is nil when
// nothing matched.
type Resolution struct {
	Matched bool
	Fields  map[string]string
}

// Service resolves request parameters to the best catalog record.
type Service struct {
	matcher    Matcher
	builder    query.Builder
	matchField string
	limit      int
	logger     *zap.Logger
}

// New creates a resolve service. limit <= 0 leaves the matcher default.
func New(m Matcher, schema domain.Schema, limit int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		matcher:    m,
		builder:    query.NewBuilder(schema.TokenCountField, schema.SearchDefinitionIDField),
		matchField: schema.MatchField,
		limit:      limit,
		logger:     logger,
	}
}

// Resolve decodes src, queries the index and returns the best match.
// Only decode failures are returned as errors.
func (s *Service) Resolve(ctx context.Context, src params.Source) (Resolution, error) {
	start := time.Now()
	defer func() {
		metrics.ResolutionDuration.Observe(time.Since(start).Seconds())
	}()

	def, err := params.Decode(src)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return Resolution{}, fmt.Errorf("decode parameters: %w", err)
	}

	q := s.builder.BuildDefinition(s.matchField, def)
	s.logger.Debug("Resolving",
		zap.String("search_def_id", def.ID()),
		zap.Int("groups", len(def.Groups())),
		zap.Stringer("query", q),
	)

	rec, ok := s.matcher.FindBestMatch(ctx, q, s.limit)
	if !ok {
		metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeNoMatch).Inc()
		return Resolution{}, nil
	}

	metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeMatch).Inc()
	return Resolution{Matched: true, Fields: s.matcher.Document(rec)}, nil
}
