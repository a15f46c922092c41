package services

import (
	"context"
	"log"
	"slices"
	"time"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/ports"
)

// Sequencer orders a technician's stops into a visitation sequence by
// driving the external trip-optimization service in size-bounded batches and
// stitching the partial solutions into one coherent route.
type Sequencer struct {
	trips      ports.TripService
	batchLimit int
	throttle   time.Duration
}

func NewSequencer(trips ports.TripService, batchLimit int, throttle time.Duration) *Sequencer {
	return &Sequencer{trips: trips, batchLimit: batchLimit, throttle: throttle}
}

// Optimize produces a visitation order and aggregate distance/duration for
// one technician's stops. end, when non-nil, is a fixed return base applied
// to the final batch only.
//
// Stops are pre-sorted by greedy nearest-neighbor from start before
// batching, so that slicing into size-limited chunks keeps geographically
// adjacent stops together instead of batching in arrival order. Each chunk
// starts where the previous one ended; a failed chunk is logged and skipped
// rather than aborting the run, so OptimizedOrder may be shorter than the
// input when the external service misbehaved. A zero-value result with no
// error means every chunk failed.
func (s *Sequencer) Optimize(ctx context.Context, start domain.GeoPoint, stops []domain.GeoPoint, end *domain.GeoPoint) (domain.RouteResult, error) {
	result := domain.RouteResult{OptimizedOrder: []int{}}
	if len(stops) == 0 {
		return result, nil
	}

	ordered := nearestNeighborOrder(start, stops)
	chunks := chunkPoints(ordered, s.batchLimit)

	currentStart := start
	for ci, chunk := range chunks {
		if ci > 0 {
			pause(ctx, s.throttle)
		}

		last := ci == len(chunks)-1
		fixEnd := last && end != nil

		points := make([]domain.GeoPoint, 0, len(chunk)+2)
		points = append(points, currentStart)
		for _, ip := range chunk {
			points = append(points, ip.Point)
		}
		if fixEnd {
			points = append(points, *end)
		}

		trip, err := s.trips.OptimizeTrip(ctx, points, fixEnd)
		if err != nil {
			log.Printf("sequencer: batch=%d/%d skipped: %v", ci+1, len(chunks), err)
			// Anchor the next batch at this batch's last pre-sorted stop so
			// the geographic chain continues past the gap.
			currentStart = chunk[len(chunk)-1].Point
			continue
		}

		result.TotalDistanceKm += trip.DistanceMeters / 1000
		result.TotalDurationSeconds += trip.DurationSeconds
		if result.Geometry == "" {
			result.Geometry = trip.Geometry
		}

		visited := chunkVisitOrder(chunk, trip.WaypointOrder, fixEnd)
		for _, ip := range visited {
			result.OptimizedOrder = append(result.OptimizedOrder, ip.Index)
		}
		if len(visited) > 0 {
			currentStart = visited[len(visited)-1].Point
		}
	}

	return result, nil
}

// nearestNeighborOrder sorts stops by repeatedly taking the unvisited stop
// closest to the current position, starting from start. O(n²) in stop count,
// which is fine for per-technician daily workloads. Ties break on the lower
// original index for determinism.
func nearestNeighborOrder(start domain.GeoPoint, stops []domain.GeoPoint) []domain.IndexedPoint {
	remaining := make([]domain.IndexedPoint, len(stops))
	for i, p := range stops {
		remaining[i] = domain.IndexedPoint{Index: i, Point: p}
	}

	ordered := make([]domain.IndexedPoint, 0, len(stops))
	current := start

	for len(remaining) > 0 {
		best := 0
		bestDist := domain.HaversineMeters(current, remaining[0].Point)
		for i := 1; i < len(remaining); i++ {
			d := domain.HaversineMeters(current, remaining[i].Point)
			if d < bestDist || (d == bestDist && remaining[i].Index < remaining[best].Index) {
				best = i
				bestDist = d
			}
		}

		next := remaining[best]
		ordered = append(ordered, next)
		current = next.Point
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered
}

// chunkPoints slices the pre-sorted stops into batches of at most limit.
func chunkPoints(points []domain.IndexedPoint, limit int) [][]domain.IndexedPoint {
	if limit < 1 {
		limit = 1
	}

	var chunks [][]domain.IndexedPoint
	for i := 0; i < len(points); i += limit {
		end := min(i+limit, len(points))
		chunks = append(chunks, points[i:end])
	}
	return chunks
}

// chunkVisitOrder translates the service's per-coordinate visitation ranks
// back into the batch's stops in visit order. Input position 0 is the fixed
// chunk start and, when fixEnd is set, the final position the fixed end;
// both are excluded from the returned stops.
func chunkVisitOrder(chunk []domain.IndexedPoint, waypointOrder []int, fixEnd bool) []domain.IndexedPoint {
	type ranked struct {
		rank int
		stop domain.IndexedPoint
	}

	expected := len(chunk) + 1
	if fixEnd {
		expected++
	}
	if len(waypointOrder) != expected {
		log.Printf("sequencer: waypoint order length %d does not match batch size %d, keeping pre-sorted order", len(waypointOrder), expected)
		return chunk
	}

	stops := make([]ranked, len(chunk))
	for i, ip := range chunk {
		// Stop i occupies input position i+1 (after the chunk start).
		stops[i] = ranked{rank: waypointOrder[i+1], stop: ip}
	}

	slices.SortFunc(stops, func(a, b ranked) int { return a.rank - b.rank })

	out := make([]domain.IndexedPoint, len(stops))
	for i, r := range stops {
		out[i] = r.stop
	}
	return out
}
