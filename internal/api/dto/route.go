package dto

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Shared request shape for route optimization and fixed-order estimation.
type RouteRequest struct {
	Start Point   `json:"start"`
	Stops []Point `json:"stops"`
	End   *Point  `json:"end"`
}

type RouteResponse struct {
	TotalDistanceKm      float64 `json:"total_distance_km"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
	Geometry             string  `json:"geometry"`
	OptimizedOrder       []int   `json:"optimized_order"`
}
