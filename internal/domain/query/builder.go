package query

import (
	"strconv"

	"github.com/kailas-cloud/entmatch/internal/domain/definition"
)

// Builder turns search definitions into query trees. The field names are
// the record schema contract with the index.
type Builder struct {
	TokenCountField         string
	SearchDefinitionIDField string
}

// NewBuilder creates a Builder for the given schema fields.
func NewBuilder(tokenCountField, searchDefinitionIDField string) Builder {
	return Builder{TokenCountField: tokenCountField, SearchDefinitionIDField: searchDefinitionIDField}
}

// Build produces
//
//	And[ Or[ And[ And[tokens...], Filter(count = len) ]... ], Filter(search_def_id = id) ]
//
// matching targetField.
func (b Builder) Build(targetField, searchDefinitionID string, groups []definition.Group) Node {
	alternatives := make([]Node, 0, len(groups))
	for _, g := range groups {
		alternatives = append(alternatives, b.group(targetField, g))
	}

	return And{Clauses: []Node{
		Or{Clauses: alternatives},
		Filter{Clause: Term{Field: b.SearchDefinitionIDField, Text: searchDefinitionID}},
	}}
}

// BuildDefinition is Build over a decoded definition.
func (b Builder) BuildDefinition(targetField string, def definition.Definition) Node {
	return b.Build(targetField, def.ID(), def.Groups())
}

func (b Builder) group(field string, g definition.Group) Node {
	tokens := make([]Node, 0, g.Len())
	for _, tok := range g.Tokens() {
		tokens = append(tokens, tokenNode(field, tok))
	}
	return And{Clauses: []Node{
		And{Clauses: tokens},
		Filter{Clause: Term{Field: b.TokenCountField, Text: strconv.Itoa(g.Len())}},
	}}
}

func tokenNode(field string, tok definition.Token) Node {
	if tok.IsFuzzy() {
		return Fuzzy{
			Field:        field,
			Text:         tok.Text(),
			MaxEdits:     tok.MaxEdits(),
			PrefixLength: tok.PrefixLength(),
		}
	}
	return Term{Field: field, Text: tok.Text()}
}
