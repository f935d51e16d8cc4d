package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cargo-route-service/internal/domain"
)

// SQLite-backed implementation of the LocationRepository port.
type SqliteLocationRepository struct {
	DB *sql.DB

	// SeedPath is the JSON data asset used to regenerate the catalog.
	SeedPath string
}

func NewSqliteLocationRepository(db *sql.DB, seedPath string) *SqliteLocationRepository {
	return &SqliteLocationRepository{DB: db, SeedPath: seedPath}
}

// Return the full location catalog ordered by name.
func (s *SqliteLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite location repository: DB is nil")
	}

	query := `
	SELECT
		name,
		type,
		parent,
		x,
		y,
		z
	FROM locations
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0, 32)
	for rows.Next() {
		var loc domain.Location
		err := rows.Scan(&loc.Name, &loc.Type, &loc.Parent, &loc.Coords.X, &loc.Coords.Y, &loc.Coords.Z)
		if err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}

// Regenerate the catalog from the seed data asset.
func (s *SqliteLocationRepository) Reseed(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sqlite location repository: DB is nil")
	}

	if err := InitSchema(s.DB); err != nil {
		return fmt.Errorf("reseed locations: %w", err)
	}

	if err := SeedFromJSON(s.DB, s.SeedPath); err != nil {
		return fmt.Errorf("reseed locations: %w", err)
	}

	return nil
}
