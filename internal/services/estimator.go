package services

import (
	"context"
	"log"
	"time"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/ports"
)

// Estimator computes distance and duration for a fixed, already-decided stop
// order. Used for cost estimation and display refresh without re-optimizing.
type Estimator struct {
	routes     ports.RouteService
	batchLimit int
	throttle   time.Duration
}

func NewEstimator(routes ports.RouteService, batchLimit int, throttle time.Duration) *Estimator {
	return &Estimator{routes: routes, batchLimit: batchLimit, throttle: throttle}
}

// EstimateFixedOrder sums distance/duration over [start, stops..., end?]
// visited exactly in that order. OptimizedOrder is always the identity
// permutation of the stops.
//
// The sequence is split into overlapping sliding windows of at most the
// batch limit, each window's last point doubling as the next window's first
// so chunk boundaries introduce no distance discontinuity. A failed window
// degrades to straight-line distance for that window's legs only.
func (e *Estimator) EstimateFixedOrder(ctx context.Context, start domain.GeoPoint, stops []domain.GeoPoint, end *domain.GeoPoint) (domain.RouteResult, error) {
	order := make([]int, len(stops))
	for i := range stops {
		order[i] = i
	}
	result := domain.RouteResult{OptimizedOrder: order}

	sequence := make([]domain.GeoPoint, 0, len(stops)+2)
	sequence = append(sequence, start)
	sequence = append(sequence, stops...)
	if end != nil {
		sequence = append(sequence, *end)
	}

	if len(sequence) < 2 {
		return result, nil
	}

	windows := slidingWindows(sequence, e.batchLimit)
	for wi, window := range windows {
		if wi > 0 {
			pause(ctx, e.throttle)
		}

		summary, err := e.routes.FixedRoute(ctx, window)
		if err != nil {
			log.Printf("estimator: window=%d/%d falling back to straight-line distance: %v", wi+1, len(windows), err)
			summary = haversineSummary(window)
		}

		result.TotalDistanceKm += summary.DistanceMeters / 1000
		result.TotalDurationSeconds += summary.DurationSeconds
	}

	return result, nil
}

// slidingWindows cuts a sequence into windows of at most limit points where
// consecutive windows share their boundary point.
func slidingWindows(sequence []domain.GeoPoint, limit int) [][]domain.GeoPoint {
	if limit < 2 {
		limit = 2
	}

	var windows [][]domain.GeoPoint
	for i := 0; i < len(sequence)-1; i += limit - 1 {
		end := min(i+limit, len(sequence))
		windows = append(windows, sequence[i:end])
	}
	return windows
}

// haversineSummary approximates a window with great-circle leg distances.
// Duration stays zero: guessing driving time from straight lines would be
// misleading in cost summaries.
func haversineSummary(window []domain.GeoPoint) ports.RouteSummary {
	var meters float64
	for i := 1; i < len(window); i++ {
		meters += domain.HaversineMeters(window[i-1], window[i])
	}
	return ports.RouteSummary{DistanceMeters: meters}
}
