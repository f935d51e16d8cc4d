package services

import (
	"fmt"
	"math"

	"cargo-route-service/internal/domain"
)

// Hand-tuned additive scoring weights. These are load-bearing for output
// compatibility with existing clients and must not be retuned casually.
const (
	efficiencyScale = 10000

	pickupCargoWeight  = 2000
	pickupFitWeight    = 3000
	coLocatedDropBonus = 5000

	dropoffCargoWeight  = 3000
	dropoffUrgencyScale = 4000
	coLocatedPickBonus  = 3000
)

// OptionScorer ranks candidate next actions (pick up a pending mission, or
// deliver an in-progress mission's next dropoff) from the route's current
// state. It is a pure function over the ledger plus precomputed per-mission
// constants; it never mutates anything.
//
// Dropoffs are weighted to dominate when cargo utilization is high (free up
// capacity); pickups dominate when utilization is low and a co-located
// dropoff exists (avoid wasted detours).
type OptionScorer struct {
	index        *DistanceIndex
	shipCapacity float64

	// payout-per-distance signal per mission, computed once from the
	// mission's own pickup-to-dropoff distances, not the achieved route.
	efficiency map[string]float64
}

func NewOptionScorer(
	index *DistanceIndex,
	shipCapacity float64,
	missions []*domain.CargoMission,
) (*OptionScorer, error) {
	s := &OptionScorer{
		index:        index,
		shipCapacity: shipCapacity,
		efficiency:   make(map[string]float64, len(missions)),
	}

	for _, m := range missions {
		total := 0.0
		for _, d := range m.Dropoffs {
			dist, err := index.Distance(m.Pickup, d)
			if err != nil {
				return nil, fmt.Errorf("score setup: mission %q: %w", m.ID, err)
			}
			total += dist
		}
		s.efficiency[m.ID] = m.Payout / math.Max(1, total)
	}

	return s, nil
}

// PickupScore scores picking up a pending mission from the current location.
// Callers must filter out pickups that would exceed capacity before scoring;
// a fitting pickup always carries the full fit weight.
func (s *OptionScorer) PickupScore(ledger *MissionLedger, current string, m *domain.CargoMission) (float64, error) {
	dist, err := s.index.Distance(current, m.Pickup)
	if err != nil {
		return 0, fmt.Errorf("pickup score: mission %q: %w", m.ID, err)
	}

	cargoFactor := 1 - ledger.CargoAboard()/s.shipCapacity

	dropoffBonus := 0.0
	for _, ip := range ledger.InProgress() {
		if loc, _, _, ok := ledger.NextDropoff(ip.ID); ok && loc == m.Pickup {
			dropoffBonus = coLocatedDropBonus
			break
		}
	}

	return -dist +
		s.efficiency[m.ID]*efficiencyScale +
		cargoFactor*pickupCargoWeight +
		dropoffBonus +
		pickupFitWeight, nil
}

// DropoffScore scores delivering an in-progress mission's next dropoff from
// the current location.
func (s *OptionScorer) DropoffScore(ledger *MissionLedger, current string, m *domain.CargoMission) (float64, error) {
	target, quantity, _, ok := ledger.NextDropoff(m.ID)
	if !ok {
		return 0, fmt.Errorf("dropoff score: mission %q has no outstanding dropoff", m.ID)
	}

	dist, err := s.index.Distance(current, target)
	if err != nil {
		return 0, fmt.Errorf("dropoff score: mission %q: %w", m.ID, err)
	}

	cargoFactor := ledger.CargoAboard() / s.shipCapacity
	cargoUrgency := quantity / s.shipCapacity

	pickupBonus := 0.0
	for _, p := range ledger.Pending() {
		if p.Pickup == target {
			pickupBonus = coLocatedPickBonus
			break
		}
	}

	return -dist +
		s.efficiency[m.ID]*efficiencyScale +
		cargoFactor*dropoffCargoWeight +
		cargoUrgency*dropoffUrgencyScale +
		pickupBonus, nil
}
