package handlers

import (
	"errors"
	"log"
	"net/http"

	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/services"
)

// coordScale converts catalog meters to millions of kilometers for display.
const coordScale = 1e6

// LocationHandler exposes the read-only location catalog.
type LocationHandler struct {
	Catalog *services.CatalogService
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	locations, err := h.Catalog.Locations(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrLocationDataUnavailable) {
			writeError(w, r, http.StatusServiceUnavailable, err.Error())
			return
		}

		log.Printf("list locations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		res = append(res, dto.LocationResponse{
			Name:        loc.Name,
			Type:        loc.Type,
			Coordinates: [2]float64{loc.Coords.X / coordScale, loc.Coords.Z / coordScale},
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
