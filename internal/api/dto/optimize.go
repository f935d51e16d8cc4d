package dto

import "encoding/json"

// MissionRequest is one cargo obligation as submitted by a client.
//
// Numeric fields arrive as json.RawMessage because clients send them loosely
// typed (numbers or strings); the handler layer parses them leniently rather
// than rejecting the whole request.
type MissionRequest struct {
	ID          string `json:"id"`
	Pickup      string `json:"pickup"`
	Description string `json:"description"`

	// Dropoff is the legacy scalar form, normalized to a one-element Dropoffs.
	Dropoff  *string  `json:"dropoff"`
	Dropoffs []string `json:"dropoffs"`

	CargoSCU  json.RawMessage `json:"cargo_scu"`
	CargoType string          `json:"cargo_type"`

	DropoffCargoTypes   []string          `json:"dropoff_cargo_types"`
	DropoffCargoAmounts []json.RawMessage `json:"dropoff_cargo_amounts"`

	Payout json.RawMessage `json:"payout"`
}

type OptimizeRequest struct {
	Missions      []MissionRequest `json:"missions"`
	StartLocation string           `json:"start_location"`
	ShipID        string           `json:"ship_id"`
	ShipCapacity  *float64         `json:"ship_capacity"`
}

// OptimizeResponse mirrors domain.RouteResult on the wire.
type OptimizeResponse struct {
	Route             []string             `json:"route"`
	MissionOrder      []string             `json:"mission_order"`
	CargoAtEachStep   []float64            `json:"cargo_at_each_step"`
	CargoTypesAtSteps []map[string]float64 `json:"cargo_types_at_steps"`
	TotalDistance     float64              `json:"total_distance"`
	TotalPayout       float64              `json:"total_payout"`
	CompletedMissions []string             `json:"completed_missions"`
}

// InvalidLocationsResponse reports unknown request locations together with
// the full valid catalog to aid correction.
type InvalidLocationsResponse struct {
	Error            string   `json:"error"`
	InvalidLocations []string `json:"invalid_locations"`
	ValidLocations   []string `json:"valid_locations"`
}

// InfeasibleResponse reports partial progress when the greedy loop cannot
// place a remaining mission under the given capacity.
type InfeasibleResponse struct {
	Error             string   `json:"error"`
	RouteSoFar        []string `json:"route_so_far"`
	CompletedMissions []string `json:"completed_missions"`
	RemainingMissions []string `json:"remaining_missions"`
}
