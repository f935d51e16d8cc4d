package services

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"cargo-route-service/internal/domain"
)

func stantonIndex() *DistanceIndex {
	return NewDistanceIndex([]domain.Location{
		{Name: "Area18", Type: "City", Parent: "ArcCorp", Coords: domain.Coordinates{X: 3000}},
		{Name: "Lorville", Type: "City", Parent: "Hurston", Coords: domain.Coordinates{Y: 4000}},
		{Name: "Port Olisar", Type: "Station", Parent: "Crusader"},
	})
}

func feasibleMissions(t *testing.T) []*domain.CargoMission {
	t.Helper()
	return []*domain.CargoMission{
		mustMission(t, "M1", "Port Olisar", []string{"Area18", "Lorville"}, 50, "", nil, 15000),
		mustMission(t, "M2", "Area18", []string{"Lorville"}, 70, "", nil, 22000),
		mustMission(t, "M3", "Lorville", []string{"Port Olisar"}, 60, "", nil, 18000),
	}
}

// actionIndex returns the position of the first action in the mission order
// log with the given prefix, or -1.
func actionIndex(order []string, prefix string) int {
	for i, a := range order {
		if strings.HasPrefix(a, prefix) {
			return i
		}
	}
	return -1
}

func TestComputeRouteFeasibleThreeMissions(t *testing.T) {
	b := NewRouteBuilder(stantonIndex(), 168)

	res, err := b.ComputeRoute(feasibleMissions(t), "Port Olisar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.TotalPayout-55000) > 1e-9 {
		t.Errorf("total payout = %g, want 55000", res.TotalPayout)
	}
	if len(res.CompletedMissions) != 3 {
		t.Fatalf("completed = %v, want all three missions", res.CompletedMissions)
	}
	completed := map[string]bool{}
	for _, id := range res.CompletedMissions {
		completed[id] = true
	}
	for _, id := range []string{"M1", "M2", "M3"} {
		if !completed[id] {
			t.Errorf("mission %s not completed", id)
		}
	}

	// Route starts at the requested location and every step logs its cargo.
	if res.Route[0] != "Port Olisar" {
		t.Errorf("route starts at %q, want Port Olisar", res.Route[0])
	}
	if len(res.Route) != len(res.CargoAtEachStep) || len(res.Route) != len(res.MissionOrder)+1 {
		t.Fatalf("inconsistent step counts: route=%d cargo=%d order=%d",
			len(res.Route), len(res.CargoAtEachStep), len(res.MissionOrder))
	}

	// Capacity is never exceeded and cargo never goes negative.
	for i, c := range res.CargoAtEachStep {
		if c < 0 || c > 168 {
			t.Errorf("cargo at step %d = %g, outside [0, 168]", i, c)
		}
	}

	// Everything delivered: vehicle ends empty.
	if last := res.CargoAtEachStep[len(res.CargoAtEachStep)-1]; math.Abs(last) > 1e-9 {
		t.Errorf("final cargo = %g, want 0", last)
	}
	if last := res.CargoTypesAtSteps[len(res.CargoTypesAtSteps)-1]; len(last) != 0 {
		t.Errorf("final cargo composition = %v, want empty", last)
	}

	// Every pickup precedes that mission's dropoffs.
	for _, id := range []string{"M1", "M2", "M3"} {
		pi := actionIndex(res.MissionOrder, "Pickup "+id+" ")
		di := actionIndex(res.MissionOrder, "Dropoff "+id+" ")
		if pi == -1 || di == -1 {
			t.Fatalf("mission %s missing actions in %v", id, res.MissionOrder)
		}
		if pi >= di {
			t.Errorf("mission %s dropped off (step %d) before pickup (step %d)", id, di, pi)
		}
	}
}

func TestComputeRouteDeterministic(t *testing.T) {
	b := NewRouteBuilder(stantonIndex(), 168)

	first, err := b.ComputeRoute(feasibleMissions(t), "Port Olisar")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := b.ComputeRoute(feasibleMissions(t), "Port Olisar")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input produced different results:\n%+v\n%+v", first, second)
	}
}

func TestComputeRouteInfeasibleOversizeMission(t *testing.T) {
	b := NewRouteBuilder(stantonIndex(), 168)
	missions := []*domain.CargoMission{
		mustMission(t, "M1", "Port Olisar", []string{"Area18"}, 200, "", nil, 30000),
	}

	_, err := b.ComputeRoute(missions, "Port Olisar")
	var infeasible *domain.InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}

	if len(infeasible.CompletedMissions) != 0 {
		t.Errorf("completed = %v, want empty", infeasible.CompletedMissions)
	}
	if len(infeasible.RemainingMissions) != 1 || infeasible.RemainingMissions[0] != "M1" {
		t.Errorf("remaining = %v, want [M1]", infeasible.RemainingMissions)
	}
	if len(infeasible.RouteSoFar) != 1 || infeasible.RouteSoFar[0] != "Port Olisar" {
		t.Errorf("route so far = %v, want just the start", infeasible.RouteSoFar)
	}
}

func TestComputeRouteInvalidLocations(t *testing.T) {
	b := NewRouteBuilder(stantonIndex(), 168)
	missions := []*domain.CargoMission{
		mustMission(t, "M1", "Nonexistent Base", []string{"Area18"}, 10, "", nil, 1000),
	}

	_, err := b.ComputeRoute(missions, "Port Olisar")
	var invalid *domain.InvalidLocationsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidLocationsError, got %v", err)
	}

	if len(invalid.Names) != 1 || invalid.Names[0] != "Nonexistent Base" {
		t.Errorf("invalid names = %v, want [Nonexistent Base]", invalid.Names)
	}
	if len(invalid.ValidLocations) != 3 {
		t.Errorf("valid locations = %v, want the full catalog", invalid.ValidLocations)
	}
}

func TestComputeRouteNoMissions(t *testing.T) {
	b := NewRouteBuilder(stantonIndex(), 168)

	if _, err := b.ComputeRoute(nil, "Port Olisar"); !errors.Is(err, domain.ErrNoMissions) {
		t.Errorf("expected ErrNoMissions, got %v", err)
	}
}

func TestComputeRouteEmptyIndex(t *testing.T) {
	b := NewRouteBuilder(NewDistanceIndex(nil), 168)
	missions := []*domain.CargoMission{
		mustMission(t, "M1", "Port Olisar", []string{"Area18"}, 10, "", nil, 1000),
	}

	if _, err := b.ComputeRoute(missions, "Port Olisar"); !errors.Is(err, domain.ErrLocationDataUnavailable) {
		t.Errorf("expected ErrLocationDataUnavailable, got %v", err)
	}
}

func TestComputeRouteMultiDropoffEvenSplit(t *testing.T) {
	b := NewRouteBuilder(stantonIndex(), 168)
	missions := []*domain.CargoMission{
		mustMission(t, "M1", "Port Olisar", []string{"Area18", "Lorville"}, 90, "", nil, 5000),
	}

	res, err := b.ComputeRoute(missions, "Port Olisar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pickup at the start is a zero-distance local action, then each of the
	// two dropoffs sheds half the load.
	wantCargo := []float64{0, 90, 45, 0}
	if len(res.CargoAtEachStep) != len(wantCargo) {
		t.Fatalf("cargo steps = %v, want %v", res.CargoAtEachStep, wantCargo)
	}
	for i, w := range wantCargo {
		if math.Abs(res.CargoAtEachStep[i]-w) > 1e-9 {
			t.Errorf("cargo[%d] = %g, want %g", i, res.CargoAtEachStep[i], w)
		}
	}

	wantRoute := []string{"Port Olisar", "Port Olisar", "Area18", "Lorville"}
	if !reflect.DeepEqual(res.Route, wantRoute) {
		t.Errorf("route = %v, want %v", res.Route, wantRoute)
	}
}

func TestComputeRouteLocalActionsSkipTravel(t *testing.T) {
	// M2's pickup sits at M1's dropoff site. Capacity forces M1 to be
	// delivered first; M2's pickup must then happen in place, without an
	// extra travel leg.
	b := NewRouteBuilder(stantonIndex(), 120)
	missions := []*domain.CargoMission{
		mustMission(t, "M1", "Port Olisar", []string{"Area18"}, 100, "", nil, 8000),
		mustMission(t, "M2", "Area18", []string{"Port Olisar"}, 100, "", nil, 8000),
	}

	res, err := b.ComputeRoute(missions, "Port Olisar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRoute := []string{"Port Olisar", "Port Olisar", "Area18", "Area18", "Port Olisar"}
	if !reflect.DeepEqual(res.Route, wantRoute) {
		t.Fatalf("route = %v, want %v", res.Route, wantRoute)
	}
	if math.Abs(res.TotalDistance-6000) > 1e-9 {
		t.Errorf("total distance = %g, want 6000", res.TotalDistance)
	}

	wantOrder := []string{
		"Pickup M1 - General",
		"Dropoff M1 at Area18 - General",
		"Pickup M2 - General",
		"Dropoff M2 at Port Olisar - General",
	}
	if !reflect.DeepEqual(res.MissionOrder, wantOrder) {
		t.Errorf("mission order = %v, want %v", res.MissionOrder, wantOrder)
	}
}

func TestComputeRoutePayoutOnlyOnCompletion(t *testing.T) {
	b := NewRouteBuilder(stantonIndex(), 168)
	missions := []*domain.CargoMission{
		mustMission(t, "M1", "Port Olisar", []string{"Area18", "Lorville"}, 60, "", nil, 9000),
		mustMission(t, "M2", "Port Olisar", []string{"Area18"}, 300, "", nil, 99999),
	}

	_, err := b.ComputeRoute(missions, "Port Olisar")
	var infeasible *domain.InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}

	// M1 completes before the oversize M2 halts the loop.
	if len(infeasible.CompletedMissions) != 1 || infeasible.CompletedMissions[0] != "M1" {
		t.Errorf("completed = %v, want [M1]", infeasible.CompletedMissions)
	}
	if len(infeasible.RemainingMissions) != 1 || infeasible.RemainingMissions[0] != "M2" {
		t.Errorf("remaining = %v, want [M2]", infeasible.RemainingMissions)
	}
}
