package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fleet-routing-service/internal/platform/obs"
	"fleet-routing-service/internal/ports"
)

// Client implements ports.GeocodingService against a Nominatim-compatible
// search endpoint. One Search call issues one external query; the tiering
// policy lives in the cascade service, not here.
//
// The client is safe for concurrent use.
type Client struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		session:   &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "fleet-routing-service/1.0",
	}
}

// Nominatim returns lat/lon as JSON strings, not numbers.
type searchCandidate struct {
	Lat        string  `json:"lat"`
	Lon        string  `json:"lon"`
	Importance float64 `json:"importance"`
	Address    struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		Suburb       string `json:"suburb"`
	} `json:"address"`
}

// Search issues one free-text query built from the non-empty query parts and
// returns the top candidate. ports.ErrNotFound means the service had no
// results; transport and HTTP failures surface as errors for the caller to
// treat as a tier miss.
func (c *Client) Search(ctx context.Context, q ports.GeocodeQuery) (_ ports.GeocodeCandidate, err error) {
	defer obs.Time(ctx, "geocode.Search")(&err)

	text := queryText(q)
	if text == "" {
		return ports.GeocodeCandidate{}, ports.ErrNotFound
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")

	resp, err := c.doWithRetry(ctx, c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("geocode search %q: %w", text, err)
	}
	defer resp.Body.Close()

	var candidates []searchCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("geocode search %q: decode response: %w", text, err)
	}

	if len(candidates) == 0 {
		return ports.GeocodeCandidate{}, ports.ErrNotFound
	}

	top := candidates[0]

	lat, err := strconv.ParseFloat(top.Lat, 64)
	if err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("geocode search %q: invalid latitude %q", text, top.Lat)
	}
	lng, err := strconv.ParseFloat(top.Lon, 64)
	if err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("geocode search %q: invalid longitude %q", text, top.Lon)
	}

	return ports.GeocodeCandidate{
		Lat:        lat,
		Lng:        lng,
		Importance: top.Importance,
		City:       adminCity(top),
	}, nil
}

// queryText joins the populated query parts from most to least specific.
func queryText(q ports.GeocodeQuery) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{q.Street, q.Neighborhood, q.City, q.State} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// adminCity picks the most city-like field the service reverse-geocoded.
// Absence of all of them is tolerated: the cascade treats an empty city as
// "no city constraint".
func adminCity(c searchCandidate) string {
	for _, v := range []string{
		c.Address.City,
		c.Address.Town,
		c.Address.Village,
		c.Address.Municipality,
		c.Address.Suburb,
	} {
		if v != "" {
			return v
		}
	}
	return ""
}
