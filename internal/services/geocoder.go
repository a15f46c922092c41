package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/ports"
)

// CascadeGeocoder resolves a postal address through a four-tier fallback
// cascade: street address, neighborhood+city, city centroid, state centroid.
// Each tier issues one query to the external service; the first tier whose
// candidate passes validation wins. Field data is frequently incomplete or
// misspelled at the street level, and a city/state centroid beats leaving a
// job unplaced; the Fuzzy flag tells callers the match is degraded.
type CascadeGeocoder struct {
	svc             ports.GeocodingService
	cache           ports.GeocodeCache
	throttle        time.Duration
	weakImportance  float64
	retryImportance float64
}

// GeocoderOptions carries the tunable policy knobs for the cascade.
type GeocoderOptions struct {
	// Courtesy delay between successive tier queries.
	Throttle time.Duration
	// Thresholds for the state-agnostic retry on weak city matches.
	WeakImportance  float64
	RetryImportance float64
}

// NewCascadeGeocoder builds a geocoder. cache may be nil to disable caching.
func NewCascadeGeocoder(svc ports.GeocodingService, cache ports.GeocodeCache, opts GeocoderOptions) *CascadeGeocoder {
	return &CascadeGeocoder{
		svc:             svc,
		cache:           cache,
		throttle:        opts.Throttle,
		weakImportance:  opts.WeakImportance,
		retryImportance: opts.RetryImportance,
	}
}

// One fallback precision level. Tiers are data, not control flow: adding,
// removing or reordering a tier is a change to the slice in Resolve.
type tier struct {
	name       string
	applicable bool
	query      ports.GeocodeQuery
	// Require the candidate's administrative city to match the request.
	checkCity bool
	// Degraded precision: the result is a locality centroid, not the
	// literal requested address.
	fuzzy bool
}

// Resolve runs the cascade. Network and non-success responses make a tier a
// miss, not an error; only exhaustion of every applicable tier reports
// ports.ErrNotFound.
func (g *CascadeGeocoder) Resolve(ctx context.Context, street, city, state, neighborhood string) (domain.GeocodeResult, error) {
	key := cacheKey(street, city, state, neighborhood)
	if g.cache != nil && key != "" {
		res, ok, err := g.cache.Get(ctx, key)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if ok {
			return res, nil
		}
	}

	tiers := []tier{
		{
			name:       "exact",
			applicable: strings.TrimSpace(street) != "",
			query:      ports.GeocodeQuery{Street: street, Neighborhood: neighborhood, City: city, State: state},
			checkCity:  true,
		},
		{
			name:       "neighborhood",
			applicable: strings.TrimSpace(neighborhood) != "" && strings.TrimSpace(city) != "",
			query:      ports.GeocodeQuery{Neighborhood: neighborhood, City: city, State: state},
			checkCity:  true,
			fuzzy:      true,
		},
		{
			name:       "city",
			applicable: strings.TrimSpace(city) != "",
			query:      ports.GeocodeQuery{City: city, State: state},
			fuzzy:      true,
		},
		{
			name:       "state",
			applicable: strings.TrimSpace(state) != "",
			query:      ports.GeocodeQuery{State: state},
			fuzzy:      true,
		},
	}

	queried := false
	for _, t := range tiers {
		if !t.applicable {
			continue
		}
		if queried {
			pause(ctx, g.throttle)
		}
		queried = true

		cand, err := g.svc.Search(ctx, t.query)
		if err != nil {
			if !errors.Is(err, ports.ErrNotFound) {
				log.Printf("geocode tier=%s miss: %v", t.name, err)
			}
			continue
		}

		if t.checkCity && !cityMatches(cand.City, city) {
			continue
		}

		if t.name == "city" {
			cand = g.retryWeakCityMatch(ctx, cand, city, state)
		}

		res := domain.GeocodeResult{
			Lat:        cand.Lat,
			Lng:        cand.Lng,
			Importance: cand.Importance,
			Fuzzy:      t.fuzzy,
		}

		if g.cache != nil && key != "" {
			if err := g.cache.Put(ctx, key, res); err != nil {
				log.Printf("geocode cache write failed: %v", err)
			}
		}

		return res, nil
	}

	return domain.GeocodeResult{}, ports.ErrNotFound
}

// retryWeakCityMatch guards against a low-population hamlet in the wrong
// state outranking a correct same-named city elsewhere: a weak city+state
// match is re-queried without the state and the state-agnostic result wins
// when its importance is convincing.
func (g *CascadeGeocoder) retryWeakCityMatch(ctx context.Context, cand ports.GeocodeCandidate, city, state string) ports.GeocodeCandidate {
	if strings.TrimSpace(state) == "" || cand.Importance >= g.weakImportance {
		return cand
	}

	pause(ctx, g.throttle)

	retry, err := g.svc.Search(ctx, ports.GeocodeQuery{City: city})
	if err != nil {
		return cand
	}
	if retry.Importance > g.retryImportance {
		log.Printf("geocode weak city match replaced: city=%q importance=%.2f retry_importance=%.2f",
			city, cand.Importance, retry.Importance)
		return retry
	}

	return cand
}

// cityMatches accepts when either name contains the other after
// normalization. An empty side means no constraint: callers may omit the
// city, and the service may omit the reverse-geocoded locality.
func cityMatches(got, want string) bool {
	g, w := NormalizeCity(got), NormalizeCity(want)
	if g == "" || w == "" {
		return true
	}
	return strings.Contains(g, w) || strings.Contains(w, g)
}

// cacheKey builds a stable cache key from the normalized request fields.
func cacheKey(street, city, state, neighborhood string) string {
	parts := []string{
		NormalizeCity(street),
		NormalizeCity(neighborhood),
		NormalizeCity(city),
		NormalizeCity(state),
	}
	if strings.Join(parts, "") == "" {
		return ""
	}
	return strings.Join(parts, "|")
}
