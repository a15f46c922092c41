package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"fleet-routing-service/internal/platform/db"
)

// dbtool prepares the Postgres geocode cache schema. Run once before
// pointing the server at a fresh database with CACHE_BACKEND=postgres.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	log.Println("Initializing geocode cache schema...")
	if err := initSchema(pool); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func initSchema(pool *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query_key TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		importance DOUBLE PRECISION NOT NULL,
		fuzzy BOOLEAN NOT NULL
	);
	`
	_, err := pool.Exec(q)
	return err
}
