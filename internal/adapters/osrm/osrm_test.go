package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleet-routing-service/internal/domain"
)

func testPoints() []domain.GeoPoint {
	return []domain.GeoPoint{
		{Lat: -25.4284, Lng: -49.2733},
		{Lat: -25.43, Lng: -49.28},
		{Lat: -25.44, Lng: -49.29},
	}
}

func TestOptimizeTripRequestShape(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"code": "Ok",
			"trips": [{"distance": 4200.5, "duration": 900, "geometry": "abc"}],
			"waypoints": [{"waypoint_index": 0}, {"waypoint_index": 2}, {"waypoint_index": 1}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	res, err := c.OptimizeTrip(context.Background(), testPoints(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/trip/v1/driving/") {
		t.Errorf("path = %q, want trip endpoint with driving profile", gotPath)
	}
	if !strings.Contains(gotPath, "-49.273300,-25.428400") {
		t.Errorf("path = %q, want lon,lat coordinates at 6 decimals", gotPath)
	}
	for key, want := range map[string]string{
		"source":      "first",
		"roundtrip":   "false",
		"destination": "last",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", key, got, want)
		}
	}

	if res.DistanceMeters != 4200.5 || res.DurationSeconds != 900 {
		t.Errorf("summary = %+v", res)
	}
	if res.Geometry != "abc" {
		t.Errorf("geometry = %q", res.Geometry)
	}
	want := []int{0, 2, 1}
	for i := range want {
		if res.WaypointOrder[i] != want[i] {
			t.Fatalf("waypoint order = %v, want %v", res.WaypointOrder, want)
		}
	}
}

func TestOptimizeTripOpenEnded(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"code": "Ok",
			"trips": [{"distance": 1, "duration": 1, "geometry": ""}],
			"waypoints": [{"waypoint_index": 0}, {"waypoint_index": 1}, {"waypoint_index": 2}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	if _, err := c.OptimizeTrip(context.Background(), testPoints(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := gotQuery["destination"]; present {
		t.Error("open-ended batches must not pin a destination")
	}
}

func TestOptimizeTripBadCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoTrips", "trips": [], "waypoints": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	if _, err := c.OptimizeTrip(context.Background(), testPoints(), false); err == nil {
		t.Fatal("expected an error for a non-Ok code")
	}
}

func TestOptimizeTripWaypointMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"code": "Ok",
			"trips": [{"distance": 1, "duration": 1, "geometry": ""}],
			"waypoints": [{"waypoint_index": 0}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	if _, err := c.OptimizeTrip(context.Background(), testPoints(), false); err == nil {
		t.Fatal("expected an error when waypoint count does not match input")
	}
}

func TestOptimizeTripTooFewPoints(t *testing.T) {
	c := NewClient("http://unreachable.invalid", time.Second)

	if _, err := c.OptimizeTrip(context.Background(), testPoints()[:1], false); err == nil {
		t.Fatal("expected an error for a single point")
	}
}

func TestFixedRoute(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"code": "Ok", "routes": [{"distance": 1500, "duration": 360}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	res, err := c.FixedRoute(context.Background(), testPoints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/route/v1/driving/") {
		t.Errorf("path = %q, want route endpoint with driving profile", gotPath)
	}
	if got := gotQuery["overview"]; len(got) != 1 || got[0] != "false" {
		t.Errorf("overview = %v, want false", got)
	}
	if res.DistanceMeters != 1500 || res.DurationSeconds != 360 {
		t.Errorf("summary = %+v", res)
	}
}

func TestFixedRouteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	if _, err := c.FixedRoute(context.Background(), testPoints()); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
