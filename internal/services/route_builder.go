package services

import (
	"fmt"

	"cargo-route-service/internal/domain"
)

// RouteBuilder sequences cargo missions into a single vehicle route under a
// hard capacity constraint using a greedy, score-driven selection loop.
//
// The builder itself is stateless and safe to share: every ComputeRoute call
// allocates its own ledger and working state, and the distance index is
// read-only.
type RouteBuilder struct {
	index        *DistanceIndex
	shipCapacity float64
}

func NewRouteBuilder(index *DistanceIndex, shipCapacity float64) *RouteBuilder {
	return &RouteBuilder{index: index, shipCapacity: shipCapacity}
}

// routeState is the mutable working set owned by one computation.
type routeState struct {
	current   string
	route     []string
	order     []string
	cargo     []float64
	types     []map[string]float64
	distance  float64
	payout    float64
	completed []string
}

type candidate struct {
	pickup  bool
	mission *domain.CargoMission
	target  string
	score   float64
}

// ComputeRoute drives the ledger through successive pickup and dropoff
// actions until no obligations remain, or reports an InfeasibleError with
// partial progress when no feasible action exists.
func (b *RouteBuilder) ComputeRoute(missions []*domain.CargoMission, startLocation string) (*domain.RouteResult, error) {
	if len(missions) == 0 {
		return nil, domain.ErrNoMissions
	}

	if b.index == nil || b.index.Len() == 0 {
		return nil, domain.ErrLocationDataUnavailable
	}

	if err := b.validateLocations(missions, startLocation); err != nil {
		return nil, err
	}

	scorer, err := NewOptionScorer(b.index, b.shipCapacity, missions)
	if err != nil {
		return nil, fmt.Errorf("compute route: %w", err)
	}

	ledger := NewMissionLedger(missions)
	st := &routeState{
		current:   startLocation,
		route:     []string{startLocation},
		order:     []string{},
		cargo:     []float64{0},
		types:     []map[string]float64{{}},
		completed: []string{},
	}

	for !ledger.Done() {
		// Local phase: free actions at the current location collapse before
		// any travel is counted. Dropoffs always go first to free capacity
		// before adding more.
		if b.executeLocal(ledger, st) {
			continue
		}

		// Travel phase: score every feasible candidate and commit to the best.
		best, err := b.selectNext(scorer, ledger, st)
		if err != nil {
			return nil, fmt.Errorf("compute route: %w", err)
		}

		if best == nil {
			return nil, b.infeasible(ledger, st)
		}

		dist, err := b.index.Distance(st.current, best.target)
		if err != nil {
			return nil, fmt.Errorf("compute route: travel to %q: %w", best.target, err)
		}
		st.distance += dist
		st.current = best.target

		if best.pickup {
			if err := b.executePickup(ledger, st, best.mission); err != nil {
				return nil, fmt.Errorf("compute route: %w", err)
			}
		} else {
			if err := b.executeDropoff(ledger, st, best.mission); err != nil {
				return nil, fmt.Errorf("compute route: %w", err)
			}
		}
	}

	return &domain.RouteResult{
		Route:             st.route,
		MissionOrder:      st.order,
		CargoAtEachStep:   st.cargo,
		CargoTypesAtSteps: st.types,
		TotalDistance:     st.distance,
		TotalPayout:       st.payout,
		CompletedMissions: st.completed,
	}, nil
}

// validateLocations checks every request location against the index up front
// so the loop never has to handle unknown-location errors mid-route.
func (b *RouteBuilder) validateLocations(missions []*domain.CargoMission, startLocation string) error {
	seen := map[string]struct{}{}
	var invalid []string

	check := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		if !b.index.Has(name) {
			invalid = append(invalid, name)
		}
	}

	check(startLocation)
	for _, m := range missions {
		check(m.Pickup)
		for _, d := range m.Dropoffs {
			check(d)
		}
	}

	if len(invalid) > 0 {
		return &domain.InvalidLocationsError{
			Names:          invalid,
			ValidLocations: b.index.Names(),
		}
	}

	return nil
}

// executeLocal performs at most one zero-distance action at the current
// location and reports whether one was executed. In-progress dropoffs take
// priority over pickups; within each partition the first match in mission
// input order wins.
func (b *RouteBuilder) executeLocal(ledger *MissionLedger, st *routeState) bool {
	for _, m := range ledger.InProgress() {
		if loc, _, _, ok := ledger.NextDropoff(m.ID); ok && loc == st.current {
			// Errors cannot occur here: the mission was just observed in progress.
			_ = b.executeDropoff(ledger, st, m)
			return true
		}
	}

	for _, m := range ledger.Pending() {
		if m.Pickup == st.current && ledger.CargoAboard()+m.CargoSCU <= b.shipCapacity {
			_ = b.executePickup(ledger, st, m)
			return true
		}
	}

	return false
}

// selectNext scores every feasible candidate action and returns the one with
// the strictly greatest score, or nil when none is feasible.
//
// Tie-break: candidates are scanned in mission input order, pending pickups
// before in-progress dropoffs, and only a strictly greater score displaces
// the incumbent. Exact score ties therefore resolve to the earliest-scanned
// candidate, which keeps results reproducible for identical input.
func (b *RouteBuilder) selectNext(scorer *OptionScorer, ledger *MissionLedger, st *routeState) (*candidate, error) {
	var best *candidate

	for _, m := range ledger.Pending() {
		// Over-capacity pickups are not candidates at all.
		if ledger.CargoAboard()+m.CargoSCU > b.shipCapacity {
			continue
		}

		score, err := scorer.PickupScore(ledger, st.current, m)
		if err != nil {
			return nil, err
		}

		if best == nil || score > best.score {
			best = &candidate{pickup: true, mission: m, target: m.Pickup, score: score}
		}
	}

	for _, m := range ledger.InProgress() {
		target, _, _, ok := ledger.NextDropoff(m.ID)
		if !ok {
			continue
		}

		score, err := scorer.DropoffScore(ledger, st.current, m)
		if err != nil {
			return nil, err
		}

		if best == nil || score > best.score {
			best = &candidate{mission: m, target: target, score: score}
		}
	}

	return best, nil
}

func (b *RouteBuilder) executePickup(ledger *MissionLedger, st *routeState, m *domain.CargoMission) error {
	if err := ledger.Pickup(m.ID); err != nil {
		return err
	}

	st.appendStep(ledger, fmt.Sprintf("Pickup %s - %s", m.ID, m.CargoType))
	return nil
}

func (b *RouteBuilder) executeDropoff(ledger *MissionLedger, st *routeState, m *domain.CargoMission) error {
	target, _, cargoType, ok := ledger.NextDropoff(m.ID)
	if !ok {
		return fmt.Errorf("dropoff: mission %q has no outstanding dropoff", m.ID)
	}

	completed, err := ledger.Dropoff(m.ID)
	if err != nil {
		return err
	}

	st.appendStep(ledger, fmt.Sprintf("Dropoff %s at %s - %s", m.ID, target, cargoType))

	// Payout is credited only when the mission's last dropoff completes.
	if completed {
		st.payout += m.Payout
		st.completed = append(st.completed, m.ID)
	}

	return nil
}

func (st *routeState) appendStep(ledger *MissionLedger, action string) {
	st.route = append(st.route, st.current)
	st.order = append(st.order, action)
	st.cargo = append(st.cargo, ledger.CargoAboard())
	st.types = append(st.types, ledger.Composition())
}

func (b *RouteBuilder) infeasible(ledger *MissionLedger, st *routeState) error {
	remaining := make([]string, 0)
	for _, m := range ledger.Pending() {
		remaining = append(remaining, m.ID)
	}
	for _, m := range ledger.InProgress() {
		remaining = append(remaining, m.ID)
	}

	return &domain.InfeasibleError{
		RouteSoFar:        st.route,
		CompletedMissions: append([]string{}, st.completed...),
		RemainingMissions: remaining,
	}
}
