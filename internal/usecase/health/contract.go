package health

import "context"

// IndexPinger checks index availability.
type IndexPinger interface {
	Ping(ctx context.Context) error
}

// SchemaChecker reports whether the record index schema is in place.
type SchemaChecker interface {
	IndexExists(ctx context.Context) (bool, error)
}
