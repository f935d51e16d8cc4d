package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCargoType is used when a mission does not name its cargo.
const DefaultCargoType = "General"

// CargoMission is an immutable description of one obligation: pick cargo up
// at a single location and deliver it across one or more ordered dropoffs.
// Delivery progress is tracked separately per route computation, never on the
// mission itself, so descriptors can be reused across computations.
type CargoMission struct {
	ID          string
	Pickup      string
	Dropoffs    []string
	CargoSCU    float64
	CargoType   string
	Payout      float64
	Description string

	// Per-dropoff delivery plan, always exactly one entry per dropoff.
	DropoffCargoTypes   []string
	DropoffCargoAmounts []float64
}

// NewCargoMission builds a mission descriptor and derives its per-dropoff
// delivery plan.
//
// Cargo types are positional: missing entries are padded with the
// mission-level type, extra entries are truncated. Cargo amounts follow the
// same truncation rule; when absent they default to an even split of the
// total, and when partially supplied the explicit amounts are honored and the
// remainder (clamped at zero) is split evenly across the unspecified dropoffs.
func NewCargoMission(
	id string,
	pickup string,
	dropoffs []string,
	cargoSCU float64,
	cargoType string,
	dropoffCargoTypes []string,
	dropoffCargoAmounts []float64,
	payout float64,
	description string,
) (*CargoMission, error) {
	if strings.TrimSpace(pickup) == "" {
		return nil, errors.New("new cargo mission: pickup must be non-empty")
	}

	if len(dropoffs) == 0 {
		return nil, fmt.Errorf("new cargo mission %q: at least one dropoff is required", id)
	}

	if cargoType == "" {
		cargoType = DefaultCargoType
	}

	m := &CargoMission{
		ID:          id,
		Pickup:      pickup,
		Dropoffs:    append([]string(nil), dropoffs...),
		CargoSCU:    cargoSCU,
		CargoType:   cargoType,
		Payout:      payout,
		Description: description,
	}

	m.DropoffCargoTypes = deriveDropoffTypes(dropoffs, cargoType, dropoffCargoTypes)
	m.DropoffCargoAmounts = deriveDropoffAmounts(dropoffs, cargoSCU, dropoffCargoAmounts)

	return m, nil
}

func deriveDropoffTypes(dropoffs []string, cargoType string, supplied []string) []string {
	types := make([]string, 0, len(dropoffs))
	for i := range dropoffs {
		if i < len(supplied) && supplied[i] != "" {
			types = append(types, supplied[i])
			continue
		}
		types = append(types, cargoType)
	}
	return types
}

func deriveDropoffAmounts(dropoffs []string, totalSCU float64, supplied []float64) []float64 {
	n := len(dropoffs)

	if len(supplied) >= n {
		return append([]float64(nil), supplied[:n]...)
	}

	amounts := make([]float64, 0, n)
	amounts = append(amounts, supplied...)

	// Remainder clamps at zero when the explicit amounts already exceed the
	// mission total.
	specified := 0.0
	for _, a := range supplied {
		specified += a
	}
	remaining := totalSCU - specified
	if remaining < 0 {
		remaining = 0
	}

	perDropoff := remaining / float64(n-len(supplied))
	for i := len(supplied); i < n; i++ {
		amounts = append(amounts, perDropoff)
	}

	return amounts
}

// DropoffAt returns the dropoff location at the given cursor position.
func (m *CargoMission) DropoffAt(i int) string { return m.Dropoffs[i] }

// CargoTypeAt returns the cargo type delivered at the given cursor position.
func (m *CargoMission) CargoTypeAt(i int) string {
	if i < len(m.DropoffCargoTypes) {
		return m.DropoffCargoTypes[i]
	}
	return m.CargoType
}

// CargoAmountAt returns the cargo quantity delivered at the given cursor position.
func (m *CargoMission) CargoAmountAt(i int) float64 {
	if i < len(m.DropoffCargoAmounts) {
		return m.DropoffCargoAmounts[i]
	}
	return m.CargoSCU / float64(len(m.Dropoffs))
}
