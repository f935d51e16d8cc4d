package services

import (
	"context"
	"fmt"
	"sync"

	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/ports"
)

// CatalogService coordinates access to the location catalog and the distance
// index derived from it.
//
// The catalog is loaded once and shared read-only across concurrent route
// computations. When the backing store has no data yet, the service reseeds
// it once and retries before reporting ErrLocationDataUnavailable.
// It is safe for concurrent use.
type CatalogService struct {
	repo ports.LocationRepository

	mu        sync.RWMutex
	locations []domain.Location
	index     *DistanceIndex
}

func NewCatalogService(repo ports.LocationRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Locations returns the cached catalog, loading it on first use.
func (c *CatalogService) Locations(ctx context.Context) ([]domain.Location, error) {
	if _, err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Location(nil), c.locations...), nil
}

// Index returns the shared distance index, loading the catalog on first use.
func (c *CatalogService) Index(ctx context.Context) (*DistanceIndex, error) {
	return c.ensureLoaded(ctx)
}

func (c *CatalogService) ensureLoaded(ctx context.Context) (*DistanceIndex, error) {
	c.mu.RLock()
	idx := c.index
	c.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index != nil {
		return c.index, nil
	}

	locations, err := c.repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list locations: %w", err)
	}

	// Regenerate the catalog exactly once when the store is empty, then fail
	// rather than silently defaulting.
	if len(locations) == 0 {
		if err := c.repo.Reseed(ctx); err != nil {
			return nil, fmt.Errorf("catalog: reseed: %w", err)
		}

		locations, err = c.repo.ListLocations(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog: list locations after reseed: %w", err)
		}
		if len(locations) == 0 {
			return nil, domain.ErrLocationDataUnavailable
		}
	}

	c.locations = locations
	c.index = NewDistanceIndex(locations)

	return c.index, nil
}
