package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/ports"
)

type tripCall struct {
	points []domain.GeoPoint
	fixEnd bool
}

// fakeTripService records calls and answers with a configurable visitation
// order (identity by default).
type fakeTripService struct {
	calls   []tripCall
	failOn  map[int]bool
	reorder func(n int) []int
}

func (f *fakeTripService) OptimizeTrip(ctx context.Context, points []domain.GeoPoint, fixEnd bool) (ports.TripResult, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, tripCall{points: append([]domain.GeoPoint{}, points...), fixEnd: fixEnd})

	if f.failOn[idx] {
		return ports.TripResult{}, errors.New("service unavailable")
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	if f.reorder != nil {
		order = f.reorder(len(points))
	}

	return ports.TripResult{
		DistanceMeters:  1000,
		DurationSeconds: 600,
		Geometry:        fmt.Sprintf("geom-%d", idx),
		WaypointOrder:   order,
	}, nil
}

// lineStops puts n stops on a meridian at increasing latitude so the greedy
// pre-sort preserves the input order.
func lineStops(n int) []domain.GeoPoint {
	stops := make([]domain.GeoPoint, n)
	for i := range stops {
		stops[i] = domain.GeoPoint{Lat: float64(i+1) * 0.01, Lng: -49.27}
	}
	return stops
}

func TestOptimizeEmptyStops(t *testing.T) {
	svc := &fakeTripService{}
	s := NewSequencer(svc, 23, 0)

	res, err := s.Optimize(context.Background(), domain.GeoPoint{}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalDistanceKm != 0 || res.TotalDurationSeconds != 0 || res.Geometry != "" {
		t.Errorf("expected zero result, got %+v", res)
	}
	if len(res.OptimizedOrder) != 0 {
		t.Errorf("expected empty order, got %v", res.OptimizedOrder)
	}
	if len(svc.calls) != 0 {
		t.Errorf("no external calls expected, got %d", len(svc.calls))
	}
}

func TestOptimizeBatchingAndChaining(t *testing.T) {
	svc := &fakeTripService{}
	s := NewSequencer(svc, 23, 0)

	start := domain.GeoPoint{Lat: 0, Lng: -49.27}
	end := domain.GeoPoint{Lat: 1, Lng: -49.27}
	stops := lineStops(50)

	res, err := s.Optimize(context.Background(), start, stops, &end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(svc.calls) != 3 {
		t.Fatalf("expected 3 batches for 50 stops at limit 23, got %d", len(svc.calls))
	}

	// Batch sizes: 23, 23, 4 stops (plus chunk start, plus end on the last).
	if got := len(svc.calls[0].points); got != 24 {
		t.Errorf("batch 1 size = %d, want 24", got)
	}
	if got := len(svc.calls[1].points); got != 24 {
		t.Errorf("batch 2 size = %d, want 24", got)
	}
	if got := len(svc.calls[2].points); got != 6 {
		t.Errorf("batch 3 size = %d, want 6 (start + 4 stops + end)", got)
	}

	// Only the final batch pins a destination.
	if svc.calls[0].fixEnd || svc.calls[1].fixEnd || !svc.calls[2].fixEnd {
		t.Errorf("fixEnd flags wrong: %v %v %v", svc.calls[0].fixEnd, svc.calls[1].fixEnd, svc.calls[2].fixEnd)
	}
	last := svc.calls[2].points
	if last[len(last)-1] != end {
		t.Errorf("final batch must end at the fixed end point")
	}

	// Each batch starts where the previous one left off.
	if svc.calls[0].points[0] != start {
		t.Errorf("batch 1 must start at the route start")
	}
	if svc.calls[1].points[0] != stops[22] {
		t.Errorf("batch 2 start = %+v, want last visited stop of batch 1", svc.calls[1].points[0])
	}
	if svc.calls[2].points[0] != stops[45] {
		t.Errorf("batch 3 start = %+v, want last visited stop of batch 2", svc.calls[2].points[0])
	}

	if len(res.OptimizedOrder) != 50 {
		t.Fatalf("order length = %d, want 50", len(res.OptimizedOrder))
	}
	for i, idx := range res.OptimizedOrder {
		if idx != i {
			t.Fatalf("order[%d] = %d, want %d (line stops keep identity order)", i, idx, i)
		}
	}

	if res.TotalDistanceKm != 3 {
		t.Errorf("distance = %v km, want 3 (three 1000m batches)", res.TotalDistanceKm)
	}
	if res.TotalDurationSeconds != 1800 {
		t.Errorf("duration = %v, want 1800", res.TotalDurationSeconds)
	}
	if res.Geometry != "geom-0" {
		t.Errorf("geometry = %q, want the first batch's", res.Geometry)
	}
}

func TestOptimizeMapsWaypointOrderToOriginalIndices(t *testing.T) {
	// The service reverses the stops within the batch; the result must come
	// back in the caller's original indices.
	svc := &fakeTripService{
		reorder: func(n int) []int {
			order := make([]int, n)
			order[0] = 0 // fixed source stays first
			for i := 1; i < n; i++ {
				order[i] = n - i
			}
			return order
		},
	}
	s := NewSequencer(svc, 23, 0)

	res, err := s.Optimize(context.Background(), domain.GeoPoint{}, lineStops(3), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{2, 1, 0}
	if len(res.OptimizedOrder) != len(want) {
		t.Fatalf("order = %v, want %v", res.OptimizedOrder, want)
	}
	for i := range want {
		if res.OptimizedOrder[i] != want[i] {
			t.Fatalf("order = %v, want %v", res.OptimizedOrder, want)
		}
	}
}

func TestOptimizeSkipsFailedBatch(t *testing.T) {
	svc := &fakeTripService{failOn: map[int]bool{1: true}}
	s := NewSequencer(svc, 5, 0)

	res, err := s.Optimize(context.Background(), domain.GeoPoint{}, lineStops(12), nil)
	if err != nil {
		t.Fatalf("a failed batch must not fail the run: %v", err)
	}

	if len(svc.calls) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(svc.calls))
	}

	// Batch 2 (stops 5..9) was skipped; its stops are absent, none duplicated.
	if len(res.OptimizedOrder) != 7 {
		t.Fatalf("order length = %d, want 7 (12 stops minus skipped batch of 5)", len(res.OptimizedOrder))
	}
	seen := map[int]bool{}
	for _, idx := range res.OptimizedOrder {
		if idx < 0 || idx >= 12 {
			t.Fatalf("order contains out-of-range index %d", idx)
		}
		if seen[idx] {
			t.Fatalf("order contains duplicate index %d", idx)
		}
		seen[idx] = true
		if idx >= 5 && idx <= 9 {
			t.Fatalf("order contains index %d from the skipped batch", idx)
		}
	}

	// The chain continues past the gap from the failed batch's last stop.
	if svc.calls[2].points[0] != lineStops(12)[9] {
		t.Errorf("batch 3 should anchor at the failed batch's last pre-sorted stop")
	}

	if res.TotalDistanceKm != 2 {
		t.Errorf("distance = %v km, want 2 (two successful batches)", res.TotalDistanceKm)
	}
}

func TestOptimizeAllBatchesFail(t *testing.T) {
	svc := &fakeTripService{failOn: map[int]bool{0: true, 1: true}}
	s := NewSequencer(svc, 5, 0)

	res, err := s.Optimize(context.Background(), domain.GeoPoint{}, lineStops(8), nil)
	if err != nil {
		t.Fatalf("total failure must yield an empty result, not an error: %v", err)
	}
	if len(res.OptimizedOrder) != 0 || res.TotalDistanceKm != 0 {
		t.Errorf("expected explicitly empty result, got %+v", res)
	}
}

func TestNearestNeighborOrder(t *testing.T) {
	start := domain.GeoPoint{Lat: 0, Lng: 0}
	stops := []domain.GeoPoint{
		{Lat: 0.5, Lng: 0}, // second-closest
		{Lat: 2.0, Lng: 0}, // farthest
		{Lat: 0.1, Lng: 0}, // closest
	}

	ordered := nearestNeighborOrder(start, stops)

	want := []int{2, 0, 1}
	for i, ip := range ordered {
		if ip.Index != want[i] {
			t.Fatalf("position %d: index %d, want %d", i, ip.Index, want[i])
		}
	}
}
