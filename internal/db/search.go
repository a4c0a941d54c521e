package db

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single record hit from a search. Fields may be empty
// when the backend does not return stored values with hits.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string][]string
}
