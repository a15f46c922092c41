package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fleet-routing-service/internal/domain"
)

// Postgres-backed cache mapping normalized geocode query keys to resolved
// results. Keys are expected to be normalized by the caller.
type PGGeocodeCache struct {
	DB *sql.DB
}

func NewPGGeocodeCache(db *sql.DB) *PGGeocodeCache {
	return &PGGeocodeCache{DB: db}
}

// Fetch a cached result for the given query key.
func (s *PGGeocodeCache) Get(ctx context.Context, key string) (domain.GeocodeResult, bool, error) {
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
	WHERE query_key = $1;
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
func (s *PGGeocodeCache) Put(ctx context.Context, key string, res domain.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert geocode cache: empty query key")
	}

	q := `
	INSERT INTO geocode_cache (query_key, lat, lon, importance, fuzzy)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (query_key) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		importance = EXCLUDED.importance,
		fuzzy = EXCLUDED.fuzzy;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, res.Lat, res.Lng, res.Importance, res.Fuzzy); err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}
