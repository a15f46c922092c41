package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"fleet-routing-service/internal/adapters/cache"
	"fleet-routing-service/internal/adapters/geocode"
	"fleet-routing-service/internal/adapters/osrm"
	"fleet-routing-service/internal/api"
	"fleet-routing-service/internal/config"
	"fleet-routing-service/internal/platform/db"
	"fleet-routing-service/internal/ports"
	"fleet-routing-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, OSRM, cache backend) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.FromEnv()
	port := config.Get("PORT", "8080")

	geocodeCache, closeCache, err := openGeocodeCache()
	if err != nil {
		log.Fatal(err)
	}
	if closeCache != nil {
		defer closeCache()
	}

	geocodingClient := geocode.NewClient(cfg.GeocodeBaseURL, cfg.HTTPTimeout)
	osrmClient := osrm.NewClient(cfg.OSRMBaseURL, cfg.HTTPTimeout)

	geocoder := services.NewCascadeGeocoder(geocodingClient, geocodeCache, services.GeocoderOptions{
		Throttle:        cfg.ThrottleDelay,
		WeakImportance:  cfg.WeakImportance,
		RetryImportance: cfg.RetryImportance,
	})
	sequencer := services.NewSequencer(osrmClient, cfg.BatchLimit, cfg.ThrottleDelay)
	estimator := services.NewEstimator(osrmClient, cfg.BatchLimit, cfg.ThrottleDelay)

	router := api.NewRouter(geocoder, sequencer, estimator)

	// Timeouts are tuned for multi-batch optimization runs against the
	// external routing service, throttle delays included.
	log.Printf("Server listening addr=:%s cache=%s batch_limit=%d", port, config.Get("CACHE_BACKEND", "none"), cfg.BatchLimit)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openGeocodeCache selects the cache backend from CACHE_BACKEND.
// "none" (the default) disables caching; a nil port is a supported no-op.
func openGeocodeCache() (ports.GeocodeCache, func(), error) {
	switch backend := strings.ToLower(config.Get("CACHE_BACKEND", "none")); backend {
	case "none", "":
		return nil, nil, nil

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres cache backend")
		}
		pool, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewPGGeocodeCache(pool), func() { pool.Close() }, nil

	case "sqlite":
		path := config.Get("DB_PATH", "data/geocode.db")
		sqliteDB, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite database %q: %w", path, err)
		}
		if err := cache.InitSqliteSchema(sqliteDB); err != nil {
			sqliteDB.Close()
			return nil, nil, err
		}
		return cache.NewSqliteGeocodeCache(sqliteDB), func() { sqliteDB.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: config.Get("REDIS_ADDR", "localhost:6379"),
		})
		ttl := 30 * 24 * time.Hour
		if v, err := strconv.Atoi(config.Get("CACHE_TTL_HOURS", "")); err == nil && v >= 0 {
			ttl = time.Duration(v) * time.Hour
		}
		return cache.NewRedisGeocodeCache(client, ttl), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown CACHE_BACKEND %q", backend)
	}
}
