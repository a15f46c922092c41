package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fleet-routing-service/internal/domain"
)

// SQLite-backed cache mapping normalized geocode query keys to resolved
// results. Intended for single-binary deployments without Postgres.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// InitSqliteSchema creates the cache table when it does not exist yet.
func InitSqliteSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query_key TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		importance REAL NOT NULL,
		fuzzy INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init sqlite geocode cache schema: %w", err)
	}
	return nil
}

// Fetch a cached result for the given query key.
func (s *SqliteGeocodeCache) Get(ctx context.Context, key string) (domain.GeocodeResult, bool, error) {
	if s.DB == nil {
		return domain.GeocodeResult{}, false, errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.GeocodeResult{}, false, nil
	}

	q := `
	SELECT lat, lon, importance, fuzzy
	FROM geocode_cache
	WHERE query_key = ?;
	`

	var res domain.GeocodeResult
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&res.Lat, &res.Lng, &res.Importance, &res.Fuzzy)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeocodeResult{}, false, nil
	}
	if err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return res, true, nil
}

// Store a resolved result under its query key.
func (s *SqliteGeocodeCache) Put(ctx context.Context, key string, res domain.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert geocode cache: empty query key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (query_key, lat, lon, importance, fuzzy)
	VALUES (?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, res.Lat, res.Lng, res.Importance, res.Fuzzy); err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}
