package osrm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fleet-routing-service/internal/domain"
)

// Client drives an OSRM-compatible server for both trip optimization
// (reordering) and fixed-order routing. It holds no mutable state and is
// safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	profile string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
	}
}

// encodeCoords renders points as the semicolon-delimited lon,lat list the
// service expects. Six decimals is ~10cm precision.
func encodeCoords(points []domain.GeoPoint) string {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%.6f,%.6f", p.Lng, p.Lat)
	}
	return strings.Join(coords, ";")
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return resp, nil
}
