package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cargo-route-service/internal/domain"
)

type fakeLocationRepo struct {
	mu           sync.Mutex
	locations    []domain.Location
	listErr      error
	reseedErr    error
	lists        int
	reseeds      int
	seedOnReseed []domain.Location
}

func (f *fakeLocationRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.locations, nil
}

func (f *fakeLocationRepo) Reseed(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reseeds++
	if f.reseedErr != nil {
		return f.reseedErr
	}
	f.locations = f.seedOnReseed
	return nil
}

func TestCatalogServiceLoadsOnce(t *testing.T) {
	repo := &fakeLocationRepo{locations: testLocations()}
	svc := NewCatalogService(repo)
	ctx := context.Background()

	idx, err := svc.Index(ctx)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if idx.Len() != 3 {
		t.Errorf("index size = %d, want 3", idx.Len())
	}

	again, err := svc.Index(ctx)
	if err != nil {
		t.Fatalf("second index: %v", err)
	}
	if again != idx {
		t.Error("index not shared across calls")
	}
	if repo.lists != 1 {
		t.Errorf("repository listed %d times, want 1", repo.lists)
	}
	if repo.reseeds != 0 {
		t.Errorf("reseeds = %d, want 0 for a populated store", repo.reseeds)
	}
}

func TestCatalogServiceReseedsEmptyStoreOnce(t *testing.T) {
	repo := &fakeLocationRepo{seedOnReseed: testLocations()}
	svc := NewCatalogService(repo)

	locations, err := svc.Locations(context.Background())
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	if len(locations) != 3 {
		t.Errorf("locations = %d, want 3 after reseed", len(locations))
	}
	if repo.reseeds != 1 {
		t.Errorf("reseeds = %d, want 1", repo.reseeds)
	}
}

func TestCatalogServiceUnavailableWhenReseedYieldsNothing(t *testing.T) {
	svc := NewCatalogService(&fakeLocationRepo{})

	_, err := svc.Index(context.Background())
	if !errors.Is(err, domain.ErrLocationDataUnavailable) {
		t.Fatalf("expected ErrLocationDataUnavailable, got %v", err)
	}
}

func TestCatalogServicePropagatesRepositoryErrors(t *testing.T) {
	listErr := errors.New("disk on fire")
	svc := NewCatalogService(&fakeLocationRepo{listErr: listErr})

	if _, err := svc.Index(context.Background()); !errors.Is(err, listErr) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}

	reseedErr := errors.New("seed missing")
	svc = NewCatalogService(&fakeLocationRepo{reseedErr: reseedErr})
	if _, err := svc.Index(context.Background()); !errors.Is(err, reseedErr) {
		t.Fatalf("expected wrapped reseed error, got %v", err)
	}
}

func TestCatalogServiceConcurrentAccess(t *testing.T) {
	repo := &fakeLocationRepo{locations: testLocations()}
	svc := NewCatalogService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Index(context.Background()); err != nil {
				t.Errorf("concurrent index: %v", err)
			}
		}()
	}
	wg.Wait()

	if repo.lists != 1 {
		t.Errorf("repository listed %d times under concurrency, want 1", repo.lists)
	}
}
