package ports

import (
	"context"

	"cargo-route-service/internal/domain"
)

// Contract for caching computed route results by request digest.
// The cache is an optimization only: callers must treat every error and miss
// as a signal to recompute, never as a request failure.
type RouteCache interface {
	// Get returns the cached result for key, reporting whether it was found.
	Get(ctx context.Context, key string) (*domain.RouteResult, bool, error)

	// Put stores the result under key, subject to the adapter's TTL policy.
	Put(ctx context.Context, key string, result *domain.RouteResult) error
}
