package params

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/entmatch/internal/domain"
	"github.com/kailas-cloud/entmatch/internal/domain/definition"
)

// Decode turns a flat parameter set into a search definition.
// Keys outside the q.id / q.<d>.t.<d>.<field> scheme are ignored. Groups and
// tokens are assembled in ascending index order.
func Decode(src Source) (definition.Definition, error) {
	id, ok := src.Get(SearchIDKey)
	if !ok || id == "" {
		return definition.Definition{}, domain.NewDecodeError(SearchIDKey, domain.ErrMissingSearchID)
	}

	layout := make(map[int]map[int]struct{})
	for _, key := range src.Keys() {
		p, ok := ParsePath(key)
		if !ok {
			continue
		}
		tokens, ok := layout[p.Group]
		if !ok {
			tokens = make(map[int]struct{})
			layout[p.Group] = tokens
		}
		tokens[p.Token] = struct{}{}
	}

	groups := make([]definition.Group, 0, len(layout))
	for _, g := range sortedKeys(layout) {
		group, err := decodeGroup(src, g, layout[g])
		if err != nil {
			return definition.Definition{}, err
		}
		groups = append(groups, group)
	}

	def, err := definition.New(id, groups)
	if err != nil {
		return definition.Definition{}, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
	}
	return def, nil
}

func decodeGroup(src Source, g int, tokenSet map[int]struct{}) (definition.Group, error) {
	indices := make([]int, 0, len(tokenSet))
	for t := range tokenSet {
		indices = append(indices, t)
	}
	sort.Ints(indices)

	tokens := make([]definition.Token, 0, len(indices))
	for _, t := range indices {
		tok, err := decodeToken(src, g, t)
		if err != nil {
			return definition.Group{}, err
		}
		tokens = append(tokens, tok)
	}

	group, err := definition.NewGroup(tokens...)
	if err != nil {
		return definition.Group{}, fmt.Errorf("%w: group %d: %w", domain.ErrInvalidDefinition, g, err)
	}
	return group, nil
}

func decodeToken(src Source, g, t int) (definition.Token, error) {
	textKey := Key(g, t, FieldText)
	text, ok := src.Get(textKey)
	if !ok || text == "" {
		return definition.Token{}, domain.NewDecodeError(textKey, domain.ErrMissingTokenText)
	}

	fuzzyKey := Key(g, t, FieldFuzzy)
	fuzzyStr, ok := src.Get(fuzzyKey)
	if !ok {
		return definition.Token{}, domain.NewDecodeError(fuzzyKey, domain.ErrMissingFuzzyFlag)
	}

	if !parseFlag(fuzzyStr) {
		return definition.NewExactToken(text)
	}

	varKey := Key(g, t, FieldVar)
	prefixKey := Key(g, t, FieldPrefix)
	varStr, hasVar := src.Get(varKey)
	prefixStr, hasPrefix := src.Get(prefixKey)
	if !hasVar {
		return definition.Token{}, domain.NewDecodeError(varKey, domain.ErrIncompleteFuzzySpec)
	}
	if !hasPrefix {
		return definition.Token{}, domain.NewDecodeError(prefixKey, domain.ErrIncompleteFuzzySpec)
	}

	prefix, err := parseCount(prefixKey, prefixStr)
	if err != nil {
		return definition.Token{}, err
	}
	edits, err := parseCount(varKey, varStr)
	if err != nil {
		return definition.Token{}, err
	}

	return definition.NewFuzzyToken(text, edits, prefix)
}

// parseFlag is deliberately permissive: only a case-insensitive "true" is
// true, anything else (including typos) reads as false.
func parseFlag(s string) bool {
	return strings.EqualFold(s, "true")
}

func parseCount(key, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, domain.NewDecodeError(key, fmt.Errorf("%w: %q", domain.ErrInvalidNumber, s))
	}
	return n, nil
}

func sortedKeys(m map[int]map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
