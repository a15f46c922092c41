package ports

import (
	"context"
	"errors"

	"fleet-routing-service/internal/domain"
)

// ErrNotFound reports that every applicable query tier missed.
// It is a normal outcome, not a fault; callers decide the fallback.
var ErrNotFound = errors.New("geocode: no match found")

// One geocoding query at a chosen precision level. Empty fields are omitted
// from the outgoing request.
type GeocodeQuery struct {
	Street       string
	Neighborhood string
	City         string
	State        string
}

// Top candidate returned by the external geocoding service.
// City is the reverse-geocoded administrative locality and may be empty when
// the service reports none.
type GeocodeCandidate struct {
	Lat        float64
	Lng        float64
	Importance float64
	City       string
}

// Port: boundary to the external geocoding service.
type GeocodingService interface {
	// Return the best candidate for a query, or ErrNotFound when the
	// service has no results for it.
	Search(ctx context.Context, q GeocodeQuery) (GeocodeCandidate, error)
}

// Port: resolves a postal address (possibly partial) into coordinates with
// a confidence score. Implemented by the cascading geocoder service.
type Geocoder interface {
	Resolve(ctx context.Context, street, city, state, neighborhood string) (domain.GeocodeResult, error)
}
