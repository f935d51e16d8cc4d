package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMissions is returned when a route computation receives no missions.
var ErrNoMissions = errors.New("no missions provided")

// ErrLocationDataUnavailable is returned when the location catalog has not
// produced its artifacts yet. The request layer may regenerate the catalog
// and retry once before surfacing this to the caller.
var ErrLocationDataUnavailable = errors.New("location data not loaded")

// UnknownLocationError reports a distance lookup against a name absent from
// the location index. Callers are expected to pre-validate all locations.
type UnknownLocationError struct {
	Name string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("unknown location %q", e.Name)
}

// InvalidLocationsError reports request locations absent from the catalog,
// together with the full list of valid names to aid correction.
type InvalidLocationsError struct {
	Names          []string
	ValidLocations []string
}

func (e *InvalidLocationsError) Error() string {
	return fmt.Sprintf("invalid locations in request: %s", strings.Join(e.Names, ", "))
}

// InfeasibleError reports that the greedy loop could not place a remaining
// mission under the given ship capacity. It carries the partial progress made
// before the computation halted; it is a structured failure, not a crash.
type InfeasibleError struct {
	RouteSoFar        []string
	CompletedMissions []string
	RemainingMissions []string
}

func (e *InfeasibleError) Error() string {
	return "cannot complete all missions with the given ship capacity"
}
