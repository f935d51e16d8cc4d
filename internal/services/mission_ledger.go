package services

import (
	"fmt"

	"cargo-route-service/internal/domain"
)

// MissionStatus is the state machine tag for one mission within a single
// route computation: Pending -> InProgress -> Completed, never backward.
type MissionStatus int

const (
	StatusPending MissionStatus = iota
	StatusInProgress
	StatusCompleted
)

// compositionEpsilon absorbs float dust when a dropoff empties a cargo type.
const compositionEpsilon = 1e-9

type missionEntry struct {
	mission *domain.CargoMission
	status  MissionStatus
	cursor  int
}

// MissionLedger tracks per-mission delivery progress and the running cargo
// composition for one route computation.
//
// Mission descriptors stay immutable; the ledger owns the route-scoped
// cursors and the pending/in-progress/completed partitioning. Every mission
// belongs to exactly one partition at all times, and partitions are always
// iterated in mission input order so results are deterministic. A ledger is
// owned by exactly one computation and must not be shared.
type MissionLedger struct {
	entries     []*missionEntry
	byID        map[string]*missionEntry
	cargoAboard float64
	composition map[string]float64
}

func NewMissionLedger(missions []*domain.CargoMission) *MissionLedger {
	l := &MissionLedger{
		entries:     make([]*missionEntry, 0, len(missions)),
		byID:        make(map[string]*missionEntry, len(missions)),
		composition: make(map[string]float64),
	}

	for _, m := range missions {
		e := &missionEntry{mission: m, status: StatusPending}
		l.entries = append(l.entries, e)
		l.byID[m.ID] = e
	}

	return l
}

// CargoAboard returns the total SCU currently aboard.
func (l *MissionLedger) CargoAboard() float64 { return l.cargoAboard }

// Composition returns a snapshot of the cargo composition aboard.
func (l *MissionLedger) Composition() map[string]float64 {
	out := make(map[string]float64, len(l.composition))
	for t, q := range l.composition {
		out[t] = q
	}
	return out
}

// Pending returns not-yet-picked-up missions in input order.
func (l *MissionLedger) Pending() []*domain.CargoMission {
	return l.withStatus(StatusPending)
}

// InProgress returns picked-up missions with dropoffs remaining, in input order.
func (l *MissionLedger) InProgress() []*domain.CargoMission {
	return l.withStatus(StatusInProgress)
}

func (l *MissionLedger) withStatus(s MissionStatus) []*domain.CargoMission {
	out := make([]*domain.CargoMission, 0, len(l.entries))
	for _, e := range l.entries {
		if e.status == s {
			out = append(out, e.mission)
		}
	}
	return out
}

// Done reports whether both the pending and in-progress partitions are empty.
func (l *MissionLedger) Done() bool {
	for _, e := range l.entries {
		if e.status != StatusCompleted {
			return false
		}
	}
	return true
}

// Status returns the partition the given mission currently belongs to.
func (l *MissionLedger) Status(id string) (MissionStatus, bool) {
	e, ok := l.byID[id]
	if !ok {
		return 0, false
	}
	return e.status, true
}

// NextDropoff returns the location, quantity and cargo type of the given
// in-progress mission's next outstanding dropoff.
func (l *MissionLedger) NextDropoff(id string) (location string, quantity float64, cargoType string, ok bool) {
	e, found := l.byID[id]
	if !found || e.status != StatusInProgress {
		return "", 0, "", false
	}

	m := e.mission
	return m.DropoffAt(e.cursor), m.CargoAmountAt(e.cursor), m.CargoTypeAt(e.cursor), true
}

// Pickup transitions a pending mission to in-progress and loads its full
// cargo total aboard under the mission-level cargo type. The caller is
// responsible for the capacity precondition.
func (l *MissionLedger) Pickup(id string) error {
	e, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("ledger pickup: unknown mission %q", id)
	}

	if e.status != StatusPending {
		return fmt.Errorf("ledger pickup: mission %q is not pending", id)
	}

	e.status = StatusInProgress
	l.cargoAboard += e.mission.CargoSCU
	l.composition[e.mission.CargoType] += e.mission.CargoSCU

	return nil
}

// Dropoff executes the next outstanding dropoff of an in-progress mission,
// advancing its cursor and reducing the cargo composition by that dropoff's
// quantity under that dropoff's cargo type. It reports whether the dropoff
// was the mission's last, which transitions the mission to completed.
func (l *MissionLedger) Dropoff(id string) (completed bool, err error) {
	e, ok := l.byID[id]
	if !ok {
		return false, fmt.Errorf("ledger dropoff: unknown mission %q", id)
	}

	if e.status != StatusInProgress {
		return false, fmt.Errorf("ledger dropoff: mission %q is not in progress", id)
	}

	m := e.mission
	quantity := m.CargoAmountAt(e.cursor)
	cargoType := m.CargoTypeAt(e.cursor)

	l.cargoAboard -= quantity
	if l.cargoAboard < 0 {
		l.cargoAboard = 0
	}

	// Type quantities never go negative; an emptied type drops out of the
	// composition entirely.
	if remaining := l.composition[cargoType] - quantity; remaining <= compositionEpsilon {
		delete(l.composition, cargoType)
	} else {
		l.composition[cargoType] = remaining
	}

	e.cursor++
	if e.cursor >= len(m.Dropoffs) {
		e.status = StatusCompleted
		return true, nil
	}

	return false, nil
}
