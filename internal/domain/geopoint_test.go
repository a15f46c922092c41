package domain

import (
	"math"
	"testing"
)

func TestHaversineMeters(t *testing.T) {
	// One degree of latitude is ~111.2km anywhere on the globe.
	a := GeoPoint{Lat: 0, Lng: 0}
	b := GeoPoint{Lat: 1, Lng: 0}

	d := HaversineMeters(a, b)
	if math.Abs(d-111195) > 200 {
		t.Errorf("distance = %v m, want ~111195", d)
	}

	if HaversineMeters(a, a) != 0 {
		t.Error("distance from a point to itself must be zero")
	}

	if HaversineMeters(a, b) != HaversineMeters(b, a) {
		t.Error("distance must be symmetric")
	}
}

func TestLonLat(t *testing.T) {
	p := GeoPoint{Lat: -25.43, Lng: -49.27}
	got := p.LonLat()
	if got[0] != -49.27 || got[1] != -25.43 {
		t.Errorf("LonLat() = %v, want [lon lat]", got)
	}
}
