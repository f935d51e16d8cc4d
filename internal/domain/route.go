package domain

// RouteResult is the outcome of one successful route computation.
// It is immutable output data and contains no side effects.
type RouteResult struct {
	// Route is the ordered sequence of visited locations, starting with the
	// caller-supplied start location. Consecutive entries may repeat when
	// several actions execute at the same location.
	Route []string `json:"route"`

	// MissionOrder is the human-readable action log, one entry per executed
	// pickup or dropoff.
	MissionOrder []string `json:"mission_order"`

	// CargoAtEachStep tracks the total SCU aboard after each route step.
	CargoAtEachStep []float64 `json:"cargo_at_each_step"`

	// CargoTypesAtSteps tracks the cargo composition (type to quantity)
	// aboard after each route step.
	CargoTypesAtSteps []map[string]float64 `json:"cargo_types_at_steps"`

	TotalDistance     float64  `json:"total_distance"`
	TotalPayout       float64  `json:"total_payout"`
	CompletedMissions []string `json:"completed_missions"`
}
