package domain

import "errors"

var (
	// ErrProductNotFound is returned when no catalog record matches a lookup
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogUnavailable is returned when the catalog export could not be read
	ErrCatalogUnavailable = errors.New("catalog data unavailable")

	// ErrInterpreterFailure is returned when the query interpreter request fails
	ErrInterpreterFailure = errors.New("query interpreter request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
