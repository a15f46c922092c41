package domain

import "math"

// Immutable geographic coordinates (latitude, longitude).
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (p GeoPoint) LonLat() []float64 { return []float64{p.Lng, p.Lat} }

// IndexedPoint pairs a point with the position it occupied in the caller's
// original stop slice. The index rides along through pre-sorting and batching
// so optimized orders can always be reported in the caller's terms.
type IndexedPoint struct {
	Index int
	Point GeoPoint
}

const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(a, b GeoPoint) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
