package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fleet-routing-service/internal/domain"
)

const redisKeyPrefix = "geocode:"

// Redis-backed cache mapping normalized geocode query keys to resolved
// results. Entries expire after TTL so stale centroid matches eventually
// get re-resolved; a zero TTL keeps them forever.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type redisGeocodeEntry struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Importance float64 `json:"importance"`
	Fuzzy      bool    `json:"fuzzy"`
}

// Fetch a cached result for the given query key.
func (s *RedisGeocodeCache) Get(ctx context.Context, key string) (domain.GeocodeResult, bool, error) {
	if s.Client == nil {
		return domain.GeocodeResult{}, false, errors.New("geocode cache: redis client is nil")
	}

	raw, err := s.Client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.GeocodeResult{}, false, nil
	}
	if err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("get geocode cache key=%q: %w", key, err)
	}

	var entry redisGeocodeEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("get geocode cache key=%q: decode entry: %w", key, err)
	}

	return domain.GeocodeResult{
		Lat:        entry.Lat,
		Lng:        entry.Lon,
		Importance: entry.Importance,
		Fuzzy:      entry.Fuzzy,
	}, true, nil
}

// Store a resolved result under its query key.
func (s *RedisGeocodeCache) Put(ctx context.Context, key string, res domain.GeocodeResult) error {
	if s.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert geocode cache: empty query key")
	}

	payload, err := json.Marshal(redisGeocodeEntry{
		Lat:        res.Lat,
		Lon:        res.Lng,
		Importance: res.Importance,
		Fuzzy:      res.Fuzzy,
	})
	if err != nil {
		return fmt.Errorf("insert geocode cache key=%q: encode entry: %w", key, err)
	}

	if err := s.Client.Set(ctx, redisKeyPrefix+key, payload, s.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}
