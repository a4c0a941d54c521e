package bleve

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/whitespace"
	"github.com/blevesearch/bleve/v2/mapping"
)

// matchAnalyzer splits the match field on whitespace and keeps case, so
// index terms compare verbatim with query tokens.
const matchAnalyzer = "entmatch_whitespace"

// buildIndexMapping indexes every field as a single keyword term except
// matchField, which is split on whitespace. All fields are stored so hits
// and fetches return the full record.
func buildIndexMapping(matchField string) (mapping.IndexMapping, error) {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = keyword.Name
	im.StoreDynamic = true
	im.IndexDynamic = true

	err := im.AddCustomAnalyzer(matchAnalyzer, map[string]any{
		"type":      custom.Name,
		"tokenizer": whitespace.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("register analyzer: %w", err)
	}

	match := bleve.NewTextFieldMapping()
	match.Analyzer = matchAnalyzer
	match.Store = true
	match.Index = true
	match.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.Dynamic = true
	doc.AddFieldMappingsAt(matchField, match)
	im.DefaultMapping = doc

	return im, nil
}
