package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cargo-route-service/internal/adapters/ships"
	"cargo-route-service/internal/api/handlers"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(catalog *services.CatalogService, shipCatalog *ships.Catalog, routeCache ports.RouteCache) http.Handler {
	obs.RegisterDefault()

	mux := http.NewServeMux()

	locHandler := &handlers.LocationHandler{Catalog: catalog}
	shipHandler := &handlers.ShipHandler{Catalog: shipCatalog}
	optHandler := &handlers.OptimizeHandler{
		Catalog: catalog,
		Ships:   shipCatalog,
		Cache:   routeCache,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/locations", locHandler.List)
	mux.HandleFunc("/api/ships", shipHandler.List)
	mux.HandleFunc("/api/optimize", optHandler.Optimize)
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
