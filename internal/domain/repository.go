package domain

import (
	"context"
	"time"
)

// Catalog exposes read-only access to the loaded product snapshot.
// Implementations must be safe for concurrent readers.
type Catalog interface {
	All() []Product
	ByID(productID string) (*Product, bool)
	Stats() CatalogStats
}

// Interpreter translates a free-form natural-language question into
// structured filter parameters. The search engine itself never calls it;
// only the delivery layer does, so the engine stays a pure function of
// (catalog, params, profile).
type Interpreter interface {
	Interpret(ctx context.Context, query string) (*FilterParams, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
