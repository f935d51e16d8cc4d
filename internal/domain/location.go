package domain

// Immutable 3-D position within the star system, in meters.
type Coordinates struct {
	X float64
	Y float64
	Z float64
}

// Location is one entry of the immutable location catalog: a named body,
// station or landing zone with a category tag and an optional parent body.
type Location struct {
	Name   string
	Type   string
	Parent string
	Coords Coordinates
}
