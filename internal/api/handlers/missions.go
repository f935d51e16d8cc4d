package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/domain"
)

// validateMissionShape rejects structurally broken missions before any
// normalization. Loosely-typed numeric values are not shape errors; they are
// handled leniently by buildMissions.
func validateMissionShape(m dto.MissionRequest) error {
	if strings.TrimSpace(m.Pickup) == "" {
		return errors.New("invalid mission format: missing pickup location")
	}

	if len(m.Dropoffs) == 0 && (m.Dropoff == nil || strings.TrimSpace(*m.Dropoff) == "") {
		if m.Dropoffs != nil {
			return errors.New("invalid mission format: at least one dropoff location is required")
		}
		return errors.New("invalid mission format: missing dropoff location(s)")
	}

	return nil
}

// buildMissions normalizes client mission requests into domain descriptors.
//
// Leniency rules carried over from the legacy service: a legacy scalar
// "dropoff" becomes a one-element dropoff list; malformed per-dropoff amounts
// degrade to the even-split path; a missing or malformed cargo_scu falls back
// to the sum of the explicit per-dropoff amounts. Mission ids default to
// M1..Mn by submission order.
func buildMissions(reqs []dto.MissionRequest) ([]*domain.CargoMission, error) {
	missions := make([]*domain.CargoMission, 0, len(reqs))

	for i, mr := range reqs {
		id := strings.TrimSpace(mr.ID)
		if id == "" {
			id = fmt.Sprintf("M%d", i+1)
		}

		dropoffs := mr.Dropoffs
		if len(dropoffs) == 0 && mr.Dropoff != nil {
			dropoffs = []string{*mr.Dropoff}
		}

		payout, _ := parseNumber(mr.Payout)

		amounts := make([]float64, 0, len(mr.DropoffCargoAmounts))
		amountsOK := true
		for _, raw := range mr.DropoffCargoAmounts {
			n, ok := parseNumber(raw)
			if !ok {
				amountsOK = false
				break
			}
			amounts = append(amounts, n)
		}
		if !amountsOK {
			log.Printf("mission=%s dropping malformed dropoff_cargo_amounts, using even split", id)
			amounts = nil
		}

		cargoSCU, ok := parseNumber(mr.CargoSCU)
		if !ok {
			for _, a := range amounts {
				cargoSCU += a
			}
			log.Printf("mission=%s cargo_scu absent or malformed, derived=%g", id, cargoSCU)
		}

		m, err := domain.NewCargoMission(
			id,
			mr.Pickup,
			dropoffs,
			cargoSCU,
			mr.CargoType,
			mr.DropoffCargoTypes,
			amounts,
			payout,
			mr.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("mission %d: %w", i+1, err)
		}

		missions = append(missions, m)
	}

	return missions, nil
}
