package ports

import (
	"context"

	"cargo-route-service/internal/domain"
)

// Port: a boundary for retrieving the location catalog from a data source.
type LocationRepository interface {
	// Retrieve the full location catalog in a stable order.
	ListLocations(ctx context.Context) ([]domain.Location, error)

	// Regenerate the catalog from its seed data asset. Used by the request
	// layer to recover from missing data before failing a request.
	Reseed(ctx context.Context) error
}
