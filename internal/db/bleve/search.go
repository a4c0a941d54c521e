package bleve

import (
	"context"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	bq "github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/entmatch/internal/db"
	"github.com/kailas-cloud/entmatch/internal/domain/query"
)

// maxFuzziness is bleve's upper bound for FuzzyQuery edits.
const maxFuzziness = 2

// SearchQuery runs q and returns hits ordered by score, ties broken by id.
func (s *Store) SearchQuery(ctx context.Context, q query.Node, limit int) (*db.SearchResult, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	if err := s.guard(); err != nil {
		return nil, err
	}

	compiled, err := compile(q)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(compiled, limit, 0, false)
	req.SortBy([]string{"-_score", "_id"})
	req.Fields = []string{"*"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpBleveSearch, Err: err}
	}

	out := &db.SearchResult{
		Total:   int(res.Total),
		Entries: make([]db.SearchEntry, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		out.Entries = append(out.Entries, db.SearchEntry{
			Key:    h.ID,
			Score:  h.Score,
			Fields: storedFields(h.Fields),
		})
	}
	return out, nil
}

func compile(n query.Node) (bq.Query, error) {
	switch q := n.(type) {
	case query.Term:
		return term(q.Field, q.Text), nil

	case query.Fuzzy:
		if q.MaxEdits == 0 {
			return term(q.Field, q.Text), nil
		}
		if q.MaxEdits > maxFuzziness {
			return nil, fmt.Errorf("%w: fuzziness %d exceeds %d", db.ErrUnsupportedQuery, q.MaxEdits, maxFuzziness)
		}
		fq := bleve.NewFuzzyQuery(q.Text)
		fq.SetField(q.Field)
		fq.SetFuzziness(q.MaxEdits)
		fq.SetPrefix(prefixBytes(q.Text, q.PrefixLength))
		return fq, nil

	case query.And:
		if len(q.Clauses) == 0 {
			return nil, fmt.Errorf("%w: empty conjunction", db.ErrUnsupportedQuery)
		}
		clauses, err := compileAll(q.Clauses)
		if err != nil {
			return nil, err
		}
		return bleve.NewConjunctionQuery(clauses...), nil

	case query.Or:
		if len(q.Clauses) == 0 {
			return bleve.NewMatchNoneQuery(), nil
		}
		clauses, err := compileAll(q.Clauses)
		if err != nil {
			return nil, err
		}
		dq := bleve.NewDisjunctionQuery(clauses...)
		dq.SetMin(1)
		return dq, nil

	case query.Filter:
		if q.Clause == nil {
			return bleve.NewMatchNoneQuery(), nil
		}
		return compile(q.Clause)

	default:
		return nil, fmt.Errorf("%w: %T", db.ErrUnsupportedQuery, n)
	}
}

// prefixBytes converts a prefix length in characters to the byte length
// bleve's FuzzyQuery expects.
func prefixBytes(text string, runes int) int {
	n := 0
	for i := range text {
		if n == runes {
			return i
		}
		n++
	}
	return len(text)
}

func compileAll(nodes []query.Node) ([]bq.Query, error) {
	out := make([]bq.Query, 0, len(nodes))
	for _, n := range nodes {
		c, err := compile(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func term(field, text string) bq.Query {
	tq := bleve.NewTermQuery(text)
	tq.SetField(field)
	return tq
}
