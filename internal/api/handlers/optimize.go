package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"cargo-route-service/internal/adapters/ships"
	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
)

// OptimizeHandler computes cargo routes for submitted mission sets.
// It coordinates shape validation, capacity resolution, the optional result
// cache, and the route engine; the engine itself stays transport-unaware.
type OptimizeHandler struct {
	Catalog *services.CatalogService
	Ships   *ships.Catalog

	// Cache is optional; nil disables result caching.
	Cache ports.RouteCache
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Missions) == 0 {
		obs.RouteComputations.WithLabelValues("no_missions").Inc()
		writeError(w, r, http.StatusBadRequest, "no missions provided")
		return
	}

	if strings.TrimSpace(req.StartLocation) == "" {
		writeError(w, r, http.StatusBadRequest, "no start location provided")
		return
	}

	for _, mr := range req.Missions {
		if err := validateMissionShape(mr); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	missions, err := buildMissions(req.Missions)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// Explicit capacity wins over the ship catalog; unknown ship ids resolve
	// to the default ship.
	capacity := h.Ships.Capacity(req.ShipID)
	if req.ShipCapacity != nil && *req.ShipCapacity > 0 {
		capacity = *req.ShipCapacity
	}

	ctx := r.Context()
	key := routeCacheKey(missions, req.StartLocation, capacity)

	if h.Cache != nil {
		if cached, ok, err := h.Cache.Get(ctx, key); err != nil {
			log.Printf("req_id=%s route cache read failed: %v", obs.RequestID(ctx), err)
		} else if ok {
			obs.RouteComputations.WithLabelValues("cache_hit").Inc()
			writeJSON(w, r, http.StatusOK, toOptimizeResponse(cached))
			return
		}
	}

	index, err := h.Catalog.Index(ctx)
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}

	done := obs.Time(ctx, "optimize.ComputeRoute")
	start := time.Now()

	builder := services.NewRouteBuilder(index, capacity)
	result, computeErr := builder.ComputeRoute(missions, req.StartLocation)

	obs.RouteComputeDuration.Observe(time.Since(start).Seconds())
	done(&computeErr)

	if computeErr != nil {
		h.writeComputeError(w, r, computeErr)
		return
	}

	obs.RouteComputations.WithLabelValues("ok").Inc()

	if h.Cache != nil {
		if err := h.Cache.Put(ctx, key, result); err != nil {
			log.Printf("req_id=%s route cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	writeJSON(w, r, http.StatusOK, toOptimizeResponse(result))
}

// writeComputeError maps the engine's error taxonomy onto HTTP statuses.
// Every variant is recoverable at this boundary; none is treated as a crash.
func (h *OptimizeHandler) writeComputeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidLoc *domain.InvalidLocationsError
	if errors.As(err, &invalidLoc) {
		obs.RouteComputations.WithLabelValues("invalid_locations").Inc()
		writeJSON(w, r, http.StatusBadRequest, dto.InvalidLocationsResponse{
			Error:            invalidLoc.Error(),
			InvalidLocations: invalidLoc.Names,
			ValidLocations:   invalidLoc.ValidLocations,
		})
		return
	}

	var infeasible *domain.InfeasibleError
	if errors.As(err, &infeasible) {
		obs.RouteComputations.WithLabelValues("infeasible").Inc()
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.InfeasibleResponse{
			Error:             infeasible.Error(),
			RouteSoFar:        infeasible.RouteSoFar,
			CompletedMissions: infeasible.CompletedMissions,
			RemainingMissions: infeasible.RemainingMissions,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNoMissions):
		obs.RouteComputations.WithLabelValues("no_missions").Inc()
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrLocationDataUnavailable):
		obs.RouteComputations.WithLabelValues("unavailable").Inc()
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		obs.RouteComputations.WithLabelValues("error").Inc()
		log.Printf("compute route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func toOptimizeResponse(res *domain.RouteResult) dto.OptimizeResponse {
	return dto.OptimizeResponse{
		Route:             res.Route,
		MissionOrder:      res.MissionOrder,
		CargoAtEachStep:   res.CargoAtEachStep,
		CargoTypesAtSteps: res.CargoTypesAtSteps,
		TotalDistance:     res.TotalDistance,
		TotalPayout:       res.TotalPayout,
		CompletedMissions: res.CompletedMissions,
	}
}

// routeCacheKey digests the normalized request so identical inputs (missions,
// start, capacity) share one cache entry regardless of field ordering or
// loose typing in the raw body.
func routeCacheKey(missions []*domain.CargoMission, start string, capacity float64) string {
	payload, err := json.Marshal(struct {
		Missions []*domain.CargoMission
		Start    string
		Capacity float64
	}{missions, start, capacity})
	if err != nil {
		// Marshaling plain structs cannot fail; fall back to an empty key
		// which disables caching for this request.
		return ""
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
