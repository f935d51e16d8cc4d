package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"cargo-route-service/internal/adapters/cache"
	"cargo-route-service/internal/adapters/repositories"
	"cargo-route-service/internal/adapters/ships"
	"cargo-route-service/internal/api"
	"cargo-route-service/internal/config"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, YAML catalog, optional Redis) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("LOCATIONS_SEED_PATH", "data/seeds/locations.json")
	shipsPath := config.Get("SHIPS_PATH", "data/ships.yaml")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed the location catalog on startup so the
	// distance index is fresh before the first request.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteLocationRepository(db, seedPath)
	catalog := services.NewCatalogService(repo)

	// Warm the distance index once at boot; later requests share it read-only.
	index, err := catalog.Index(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("locations=%d distance index ready", index.Len())

	shipCatalog, err := ships.Load(shipsPath)
	if err != nil {
		log.Fatal(err)
	}

	var routeCache ports.RouteCache
	if redisURL := strings.TrimSpace(os.Getenv("REDIS_URL")); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}

		ttl := config.GetDuration("ROUTE_CACHE_TTL", 10*time.Minute)
		routeCache = cache.NewRedisRouteCache(redis.NewClient(opts), ttl)
		log.Printf("route cache enabled ttl=%s", ttl)
	}

	router := api.NewRouter(catalog, shipCatalog, routeCache)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
