package ports

import (
	"context"

	"fleet-routing-service/internal/domain"
)

// Port: persistent cache of resolved geocode queries.
// Keys are normalized query strings produced by the cascade; a nil cache is
// a supported configuration and disables caching entirely.
type GeocodeCache interface {
	// Look up a cached result. The second return reports presence.
	Get(ctx context.Context, key string) (domain.GeocodeResult, bool, error)
	// Store a resolved result under its query key.
	Put(ctx context.Context, key string, res domain.GeocodeResult) error
}
