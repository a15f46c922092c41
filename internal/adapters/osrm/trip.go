package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/platform/obs"
	"fleet-routing-service/internal/ports"
)

type tripResponse struct {
	Code  string `json:"code"`
	Trips []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"trips"`
	Waypoints []struct {
		WaypointIndex int `json:"waypoint_index"`
	} `json:"waypoints"`
}

// OptimizeTrip asks the service to order one batch of points. The first
// point is pinned as the source; when fixEnd is set the last point is pinned
// as the destination, otherwise the batch is open-ended so the service may
// place any stop last.
func (c *Client) OptimizeTrip(ctx context.Context, points []domain.GeoPoint, fixEnd bool) (_ ports.TripResult, err error) {
	defer obs.Time(ctx, "osrm.OptimizeTrip")(&err)

	if len(points) < 2 {
		return ports.TripResult{}, fmt.Errorf("optimize trip: need at least 2 points, got %d", len(points))
	}

	params := url.Values{}
	params.Set("source", "first")
	params.Set("roundtrip", "false")
	if fixEnd {
		params.Set("destination", "last")
	}

	endpoint := fmt.Sprintf("%s/trip/v1/%s/%s?%s", c.baseURL, c.profile, encodeCoords(points), params.Encode())

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return ports.TripResult{}, fmt.Errorf("optimize trip: %w", err)
	}
	defer resp.Body.Close()

	var decoded tripResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.TripResult{}, fmt.Errorf("optimize trip: decode response: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.TripResult{}, fmt.Errorf("optimize trip: service returned code %q", decoded.Code)
	}
	if len(decoded.Trips) == 0 {
		return ports.TripResult{}, fmt.Errorf("optimize trip: no trips in response")
	}
	if len(decoded.Waypoints) != len(points) {
		return ports.TripResult{}, fmt.Errorf(
			"optimize trip: waypoint count %d does not match input %d",
			len(decoded.Waypoints), len(points),
		)
	}

	order := make([]int, len(decoded.Waypoints))
	for i, wp := range decoded.Waypoints {
		order[i] = wp.WaypointIndex
	}

	trip := decoded.Trips[0]
	return ports.TripResult{
		DistanceMeters:  trip.Distance,
		DurationSeconds: trip.Duration,
		Geometry:        trip.Geometry,
		WaypointOrder:   order,
	}, nil
}
