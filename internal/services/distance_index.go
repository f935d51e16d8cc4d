package services

import (
	"math"

	"cargo-route-service/internal/domain"
)

// DistanceIndex is an immutable lookup from location name to the distance to
// any other cataloged location.
//
// It holds a dense matrix of pairwise Euclidean distances derived once from
// the catalog coordinates. Because it is read-only after construction it may
// be shared freely across concurrent route computations.
type DistanceIndex struct {
	names   []string
	indices map[string]int
	matrix  [][]float64
}

// NewDistanceIndex derives the pairwise distance matrix from the catalog.
func NewDistanceIndex(locations []domain.Location) *DistanceIndex {
	n := len(locations)

	idx := &DistanceIndex{
		names:   make([]string, 0, n),
		indices: make(map[string]int, n),
		matrix:  make([][]float64, n),
	}

	for i, loc := range locations {
		idx.names = append(idx.names, loc.Name)
		idx.indices[loc.Name] = i
	}

	for i := range locations {
		idx.matrix[i] = make([]float64, n)
		for j := range locations {
			if i == j {
				continue
			}
			idx.matrix[i][j] = euclidean(locations[i].Coords, locations[j].Coords)
		}
	}

	return idx
}

func euclidean(a, b domain.Coordinates) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Distance returns the distance between two cataloged locations.
// The distance from a location to itself is 0. Either name being absent from
// the index is an UnknownLocationError; callers should pre-validate.
func (d *DistanceIndex) Distance(a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}

	ia, ok := d.indices[a]
	if !ok {
		return 0, &domain.UnknownLocationError{Name: a}
	}

	ib, ok := d.indices[b]
	if !ok {
		return 0, &domain.UnknownLocationError{Name: b}
	}

	return d.matrix[ia][ib], nil
}

// Has reports whether the given name is present in the index.
func (d *DistanceIndex) Has(name string) bool {
	_, ok := d.indices[name]
	return ok
}

// Names returns all cataloged location names in index order.
func (d *DistanceIndex) Names() []string {
	return append([]string(nil), d.names...)
}

// Len returns the number of cataloged locations.
func (d *DistanceIndex) Len() int { return len(d.names) }
