package redis

import (
	"github.com/redis/rueidis"

	"github.com/kailas-cloud/entmatch/internal/db"
)

// NewStoreForTest creates a Store with the provided rueidis client (test-only).
func NewStoreForTest(c rueidis.Client, idx *db.IndexDefinition) *Store {
	return newStore(c, idx)
}
