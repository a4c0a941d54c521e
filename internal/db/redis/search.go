package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/entmatch/internal/db"
	"github.com/kailas-cloud/entmatch/internal/domain/query"
)

// maxFuzzyEdits is the largest Levenshtein distance the query engine
// expresses with %..% wrapping.
const maxFuzzyEdits = 3

// Candidate window: the engine returns overFetch times the requested limit,
// capped at maxCandidates (the FT.SEARCH MAXSEARCHRESULTS default), so that
// hits failing verification do not crowd out real matches.
const (
	overFetch     = 4
	maxCandidates = 10000
)

// errMatchNothing marks a subtree that can never match, such as an empty Or.
var errMatchNothing = errors.New("query matches nothing")

// SearchQuery compiles q to an FT.SEARCH query string, runs it and keeps
// only the hits that satisfy q when evaluated against their stored fields.
// The engine tokenizes text and has no exact prefix rule for fuzzy terms,
// so its hits are candidates rather than answers.
func (s *Store) SearchQuery(ctx context.Context, q query.Node, limit int) (*db.SearchResult, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	queryStr, err := s.compile(q)
	if errors.Is(err, errMatchNothing) {
		return &db.SearchResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	args := []string{
		s.index.Name, queryStr,
		"WITHSCORES",
		"LIMIT", "0", strconv.Itoa(candidateWindow(limit)),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	res, err := s.parseScoredResult(raw)
	if err != nil {
		return nil, err
	}

	verified := res.Entries[:0]
	for _, e := range res.Entries {
		if query.Matches(q, query.Fields(e.Fields)) {
			verified = append(verified, e)
		}
	}
	if len(verified) > limit {
		verified = verified[:limit]
	}
	res.Entries = verified
	res.Total = len(verified)
	return res, nil
}

func candidateWindow(limit int) int {
	if limit >= maxCandidates/overFetch {
		return max(limit, maxCandidates)
	}
	return limit * overFetch
}

// --- Query compilation ---

func (s *Store) compile(n query.Node) (string, error) {
	switch q := n.(type) {
	case query.Term:
		return s.compileTerm(q.Field, q.Text)

	case query.Fuzzy:
		if q.MaxEdits == 0 {
			return s.compileTerm(q.Field, q.Text)
		}
		if q.MaxEdits > maxFuzzyEdits {
			return "", fmt.Errorf("%w: fuzzy distance %d exceeds %d", db.ErrUnsupportedQuery, q.MaxEdits, maxFuzzyEdits)
		}
		f, ok := s.index.Field(q.Field)
		if !ok || f.Type != db.IndexFieldText {
			return "", fmt.Errorf("%w: fuzzy on non-text field %q", db.ErrUnsupportedQuery, q.Field)
		}
		pct := strings.Repeat("%", q.MaxEdits)
		return fmt.Sprintf("@%s:(%s%s%s)", q.Field, pct, escapeQuery(q.Text), pct), nil

	case query.And:
		if len(q.Clauses) == 0 {
			return "", fmt.Errorf("%w: empty conjunction", db.ErrUnsupportedQuery)
		}
		parts := make([]string, 0, len(q.Clauses))
		for _, c := range q.Clauses {
			p, err := s.compile(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, p)
		}
		return "(" + strings.Join(parts, " ") + ")", nil

	case query.Or:
		parts := make([]string, 0, len(q.Clauses))
		for _, c := range q.Clauses {
			p, err := s.compile(c)
			if errors.Is(err, errMatchNothing) {
				continue
			}
			if err != nil {
				return "", err
			}
			parts = append(parts, p)
		}
		if len(parts) == 0 {
			return "", errMatchNothing
		}
		return "(" + strings.Join(parts, " | ") + ")", nil

	case query.Filter:
		if q.Clause == nil {
			return "", errMatchNothing
		}
		return s.compile(q.Clause)

	default:
		return "", fmt.Errorf("%w: %T", db.ErrUnsupportedQuery, n)
	}
}

func (s *Store) compileTerm(field, text string) (string, error) {
	f, ok := s.index.Field(field)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not indexed", db.ErrUnsupportedQuery, field)
	}
	if f.Type == db.IndexFieldTag {
		return fmt.Sprintf("@%s:{%s}", field, tagEscaper.Replace(text)), nil
	}
	return fmt.Sprintf("@%s:(%s)", field, escapeQuery(text)), nil
}

// --- Result parsing ---

func (s *Store) parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, min(int(total), (len(raw)-1)/3))
	// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    s.recordID(key),
			Score:  score,
			Fields: s.splitFields(parseFieldPairs(fields)),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Escaping ---

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`.`, `\.`,
	`,`, `\,`,
)
