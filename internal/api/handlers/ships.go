package handlers

import (
	"net/http"

	"cargo-route-service/internal/adapters/ships"
	"cargo-route-service/internal/api/dto"
)

// ShipHandler exposes the static vehicle capacity catalog.
type ShipHandler struct {
	Catalog *ships.Catalog
}

func (h *ShipHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.Catalog.Ships()
	res := make([]dto.ShipResponse, 0, len(entries))
	for _, s := range entries {
		res = append(res, dto.ShipResponse{
			ID:            s.ID,
			Name:          s.Name,
			CargoCapacity: s.CargoCapacity,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
