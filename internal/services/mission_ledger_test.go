package services

import (
	"math"
	"testing"

	"cargo-route-service/internal/domain"
)

func mustMission(t *testing.T, id, pickup string, dropoffs []string, scu float64, cargoType string, amounts []float64, payout float64) *domain.CargoMission {
	t.Helper()
	m, err := domain.NewCargoMission(id, pickup, dropoffs, scu, cargoType, nil, amounts, payout, "")
	if err != nil {
		t.Fatalf("building mission %s: %v", id, err)
	}
	return m
}

func TestMissionLedgerLifecycle(t *testing.T) {
	m1 := mustMission(t, "M1", "A", []string{"B", "C"}, 90, "Ore", nil, 1000)
	m2 := mustMission(t, "M2", "B", []string{"C"}, 30, "Gold", nil, 500)
	l := NewMissionLedger([]*domain.CargoMission{m1, m2})

	if got := len(l.Pending()); got != 2 {
		t.Fatalf("pending = %d, want 2", got)
	}
	if l.Done() {
		t.Fatal("fresh ledger reported done")
	}

	if err := l.Pickup("M1"); err != nil {
		t.Fatalf("pickup M1: %v", err)
	}
	if st, _ := l.Status("M1"); st != StatusInProgress {
		t.Errorf("M1 status = %v, want in progress", st)
	}
	if math.Abs(l.CargoAboard()-90) > 1e-9 {
		t.Errorf("cargo aboard = %g, want 90", l.CargoAboard())
	}

	// Double pickup and out-of-order dropoff are rejected.
	if err := l.Pickup("M1"); err == nil {
		t.Error("expected error picking up M1 twice")
	}
	if _, err := l.Dropoff("M2"); err == nil {
		t.Error("expected error dropping off pending M2")
	}

	loc, qty, cargoType, ok := l.NextDropoff("M1")
	if !ok || loc != "B" || math.Abs(qty-45) > 1e-9 || cargoType != "Ore" {
		t.Fatalf("NextDropoff = (%q, %g, %q, %v), want (B, 45, Ore, true)", loc, qty, cargoType, ok)
	}

	completed, err := l.Dropoff("M1")
	if err != nil {
		t.Fatalf("dropoff M1: %v", err)
	}
	if completed {
		t.Error("first of two dropoffs reported mission completed")
	}
	if loc, _, _, _ := l.NextDropoff("M1"); loc != "C" {
		t.Errorf("cursor did not advance, next dropoff = %q", loc)
	}

	completed, err = l.Dropoff("M1")
	if err != nil {
		t.Fatalf("final dropoff M1: %v", err)
	}
	if !completed {
		t.Error("final dropoff did not report completion")
	}
	if st, _ := l.Status("M1"); st != StatusCompleted {
		t.Errorf("M1 status = %v, want completed", st)
	}
	if math.Abs(l.CargoAboard()) > 1e-9 {
		t.Errorf("cargo aboard after full delivery = %g, want 0", l.CargoAboard())
	}

	if l.Done() {
		t.Fatal("ledger done while M2 still pending")
	}
}

func TestMissionLedgerComposition(t *testing.T) {
	m1 := mustMission(t, "M1", "A", []string{"B", "C"}, 60, "Ore", nil, 0)
	m2 := mustMission(t, "M2", "A", []string{"B"}, 10, "Gold", nil, 0)
	l := NewMissionLedger([]*domain.CargoMission{m1, m2})

	if err := l.Pickup("M1"); err != nil {
		t.Fatal(err)
	}
	if err := l.Pickup("M2"); err != nil {
		t.Fatal(err)
	}

	comp := l.Composition()
	if math.Abs(comp["Ore"]-60) > 1e-9 || math.Abs(comp["Gold"]-10) > 1e-9 {
		t.Fatalf("composition = %v, want Ore=60 Gold=10", comp)
	}

	// Snapshot is a copy.
	comp["Ore"] = -1
	if math.Abs(l.Composition()["Ore"]-60) > 1e-9 {
		t.Error("Composition exposed internal map")
	}

	if _, err := l.Dropoff("M1"); err != nil {
		t.Fatal(err)
	}
	if got := l.Composition()["Ore"]; math.Abs(got-30) > 1e-9 {
		t.Errorf("Ore after partial delivery = %g, want 30", got)
	}

	// Delivering a type to zero removes its composition entry entirely.
	if _, err := l.Dropoff("M2"); err != nil {
		t.Fatal(err)
	}
	if _, present := l.Composition()["Gold"]; present {
		t.Error("emptied cargo type still present in composition")
	}

	if _, err := l.Dropoff("M1"); err != nil {
		t.Fatal(err)
	}
	if len(l.Composition()) != 0 {
		t.Errorf("composition after all deliveries = %v, want empty", l.Composition())
	}
	if !l.Done() {
		t.Error("ledger not done after all deliveries")
	}
}

func TestMissionLedgerInputOrder(t *testing.T) {
	missions := []*domain.CargoMission{
		mustMission(t, "M3", "A", []string{"B"}, 1, "", nil, 0),
		mustMission(t, "M1", "A", []string{"B"}, 1, "", nil, 0),
		mustMission(t, "M2", "A", []string{"B"}, 1, "", nil, 0),
	}
	l := NewMissionLedger(missions)

	pending := l.Pending()
	want := []string{"M3", "M1", "M2"}
	for i, w := range want {
		if pending[i].ID != w {
			t.Errorf("pending[%d] = %s, want %s", i, pending[i].ID, w)
		}
	}
}
