package handlers

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cargo-route-service/internal/adapters/ships"
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/services"
)

// stubLocationRepo serves a fixed catalog and records reseed calls. When
// seedOnReseed is set, Reseed swaps it in, mimicking a store that starts
// empty until its seed asset is applied.
type stubLocationRepo struct {
	mu           sync.Mutex
	locations    []domain.Location
	listErr      error
	reseedErr    error
	reseeds      int
	seedOnReseed []domain.Location
}

func (s *stubLocationRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.locations, nil
}

func (s *stubLocationRepo) Reseed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reseeds++
	if s.reseedErr != nil {
		return s.reseedErr
	}
	s.locations = s.seedOnReseed
	return nil
}

func stantonLocations() []domain.Location {
	return []domain.Location{
		{Name: "Area18", Type: "City", Parent: "ArcCorp", Coords: domain.Coordinates{X: 3000}},
		{Name: "Lorville", Type: "City", Parent: "Hurston", Coords: domain.Coordinates{Y: 4000}},
		{Name: "Port Olisar", Type: "Station", Parent: "Crusader"},
	}
}

func testCatalog(locations []domain.Location) *services.CatalogService {
	return services.NewCatalogService(&stubLocationRepo{locations: locations})
}

func testShipCatalog(t *testing.T) *ships.Catalog {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ships.yaml")
	contents := `default: taurus
ships:
  - id: taurus
    name: Constellation Taurus
    cargo_capacity: 168
  - id: c2_hercules
    name: C2 Hercules
    cargo_capacity: 696
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing ship fixture: %v", err)
	}

	c, err := ships.Load(path)
	if err != nil {
		t.Fatalf("loading ship fixture: %v", err)
	}
	return c
}

// memoryRouteCache is a map-backed stand-in for the Redis adapter.
type memoryRouteCache struct {
	mu      sync.Mutex
	entries map[string]*domain.RouteResult
	gets    int
	puts    int
}

func newMemoryRouteCache() *memoryRouteCache {
	return &memoryRouteCache{entries: map[string]*domain.RouteResult{}}
}

func (c *memoryRouteCache) Get(ctx context.Context, key string) (*domain.RouteResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	res, ok := c.entries[key]
	return res, ok, nil
}

func (c *memoryRouteCache) Put(ctx context.Context, key string, result *domain.RouteResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[key] = result
	return nil
}
