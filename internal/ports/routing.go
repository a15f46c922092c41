package ports

import (
	"context"

	"fleet-routing-service/internal/domain"
)

// Result of one trip-optimization call over a single batch of points.
// WaypointOrder holds, for each input point position, the visitation rank the
// service assigned to it (0 = visited first).
type TripResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        string
	WaypointOrder   []int
}

// Distance and duration along a fixed sequence of points.
type RouteSummary struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Port: boundary to the external trip-optimization service.
// The service may reorder intermediate points; the first point is always a
// fixed source and, when fixEnd is set, the last point a fixed destination.
type TripService interface {
	OptimizeTrip(ctx context.Context, points []domain.GeoPoint, fixEnd bool) (TripResult, error)
}

// Port: boundary to the external fixed-order routing service.
// Points are visited exactly in the order given.
type RouteService interface {
	FixedRoute(ctx context.Context, points []domain.GeoPoint) (RouteSummary, error)
}
