package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for hosted deployments (used by cmd/dbtool).
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS locations (
		name TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		parent TEXT NOT NULL DEFAULT '',
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		z DOUBLE PRECISION NOT NULL
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init postgres schema: create locations table: %w", err)
	}

	return nil
}

// Populate a Postgres database with the location catalog from a JSON data asset.
func SeedFromJSONPostgres(db *sql.DB, jsonPath string) error {
	rows, err := readSeed(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO locations (name, type, parent, x, y, z)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (name) DO UPDATE SET
		type = EXCLUDED.type,
		parent = EXCLUDED.parent,
		x = EXCLUDED.x,
		y = EXCLUDED.y,
		z = EXCLUDED.z;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.Exec(l.Name, l.Type, l.Parent, l.X, l.Y, l.Z); err != nil {
			return fmt.Errorf("seed locations: insert %q: %w", l.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
