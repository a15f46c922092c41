package osrm

import (
	"context"
	"encoding/json"
	"fmt"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/platform/obs"
	"fleet-routing-service/internal/ports"
)

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// FixedRoute returns distance and duration along points visited exactly in
// the order given. No waypoint reordering happens here.
func (c *Client) FixedRoute(ctx context.Context, points []domain.GeoPoint) (_ ports.RouteSummary, err error) {
	defer obs.Time(ctx, "osrm.FixedRoute")(&err)

	if len(points) < 2 {
		return ports.RouteSummary{}, fmt.Errorf("fixed route: need at least 2 points, got %d", len(points))
	}

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s?overview=false", c.baseURL, c.profile, encodeCoords(points))

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return ports.RouteSummary{}, fmt.Errorf("fixed route: %w", err)
	}
	defer resp.Body.Close()

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteSummary{}, fmt.Errorf("fixed route: decode response: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.RouteSummary{}, fmt.Errorf("fixed route: service returned code %q", decoded.Code)
	}
	if len(decoded.Routes) == 0 {
		return ports.RouteSummary{}, fmt.Errorf("fixed route: no routes in response")
	}

	return ports.RouteSummary{
		DistanceMeters:  decoded.Routes[0].Distance,
		DurationSeconds: decoded.Routes[0].Duration,
	}, nil
}
