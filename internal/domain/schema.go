package domain

// Schema names the record fields the service reads from the index.
type Schema struct {
	IDField                 string
	MatchField              string
	TokenCountField         string
	SearchDefinitionIDField string
}

// DefaultSchema returns the field names used by the catalog indexer.
func DefaultSchema() Schema {
	return Schema{
		IDField:                 "id",
		MatchField:              "variant",
		TokenCountField:         "token_count",
		SearchDefinitionIDField: "search_def_id",
	}
}

// FilterFields returns the exact-match fields used as query filters.
func (s Schema) FilterFields() []string {
	return []string{s.TokenCountField, s.SearchDefinitionIDField}
}
