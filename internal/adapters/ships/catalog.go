package ships

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ship is one entry of the static vehicle capacity catalog.
type Ship struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	CargoCapacity float64 `yaml:"cargo_capacity" json:"cargo_capacity"`
}

type catalogFile struct {
	Default string `yaml:"default"`
	Ships   []Ship `yaml:"ships"`
}

// Catalog is the immutable ship capacity lookup used by the request layer to
// resolve a ship id to a cargo capacity before invoking the route engine.
type Catalog struct {
	ships     []Ship
	byID      map[string]Ship
	defaultID string
}

// Load reads the catalog from a YAML data asset.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ship catalog: read %q: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("ship catalog: parse %q: %w", path, err)
	}

	if len(file.Ships) == 0 {
		return nil, fmt.Errorf("ship catalog: %q lists no ships", path)
	}

	c := &Catalog{
		ships: file.Ships,
		byID:  make(map[string]Ship, len(file.Ships)),
	}

	for i, s := range file.Ships {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, fmt.Errorf("ship catalog: ship at index %d has no id", i+1)
		}
		if s.CargoCapacity <= 0 {
			return nil, fmt.Errorf("ship catalog: ship %q: cargo_capacity must be positive", id)
		}
		c.byID[id] = s
	}

	c.defaultID = strings.TrimSpace(file.Default)
	if c.defaultID == "" {
		c.defaultID = file.Ships[0].ID
	}
	if _, ok := c.byID[c.defaultID]; !ok {
		return nil, fmt.Errorf("ship catalog: default ship %q is not listed", c.defaultID)
	}

	return c, nil
}

// Ships returns all catalog entries in file order.
func (c *Catalog) Ships() []Ship {
	return append([]Ship(nil), c.ships...)
}

// Capacity resolves a ship id to its cargo capacity. Unknown or empty ids
// fall back to the default ship.
func (c *Catalog) Capacity(id string) float64 {
	if s, ok := c.byID[id]; ok {
		return s.CargoCapacity
	}
	return c.byID[c.defaultID].CargoCapacity
}

// DefaultShip returns the catalog's default entry.
func (c *Catalog) DefaultShip() (Ship, error) {
	s, ok := c.byID[c.defaultID]
	if !ok {
		return Ship{}, errors.New("ship catalog: no default ship")
	}
	return s, nil
}
