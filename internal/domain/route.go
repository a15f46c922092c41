package domain

// Result of resolving a free-text address to coordinates.
// Importance is the geocoding service's [0,1] relevance score for the match.
// Fuzzy marks results produced by a degraded query tier (neighborhood, city
// or state centroid) rather than the literal requested address.
type GeocodeResult struct {
	Lat        float64
	Lng        float64
	Importance float64
	Fuzzy      bool
}

// Point returns the resolved coordinates as a GeoPoint.
func (g GeocodeResult) Point() GeoPoint { return GeoPoint{Lat: g.Lat, Lng: g.Lng} }

// The sole output contract of route sequencing and estimation.
// OptimizedOrder references positions in the caller's original stop slice,
// never batch-local indices. It may be shorter than the input when an
// external batch call failed and its stops were skipped. Geometry carries
// the first batch's encoded polyline only; merging polylines across batches
// is a display concern, not a correctness one.
type RouteResult struct {
	TotalDistanceKm      float64
	TotalDurationSeconds float64
	Geometry             string
	OptimizedOrder       []int
}

// Ephemeral, caller-supplied pinning of a technician to a territory for one
// distribution run. City is matched after normalization.
type TerritoryAssignment struct {
	TechnicianID string
	City         string
}

// One job-to-technician decision produced by the distributor. The caller is
// responsible for persisting it.
type Assignment struct {
	JobID        string
	TechnicianID string
}
