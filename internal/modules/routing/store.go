// README: Route estimate cache backed by Redis hashes.
package routing

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"
)

const routeKeyPrefix = "tarif:route:%s|%s"

// Store caches estimates per normalized endpoint pair.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

// Get reports whether an estimate for the pair is cached.
func (s *Store) Get(ctx context.Context, origin, destination string) (Estimate, bool, error) {
	vals, err := s.redis.HGetAll(ctx, routeKey(origin, destination)).Result()
	if err != nil {
		return Estimate{}, false, err
	}
	if len(vals) == 0 {
		return Estimate{}, false, nil
	}
	km, err := cast.ToFloat64E(vals["distance_km"])
	if err != nil {
		return Estimate{}, false, fmt.Errorf("decode cached distance: %w", err)
	}
	minutes, err := cast.ToFloat64E(vals["minutes"])
	if err != nil {
		return Estimate{}, false, fmt.Errorf("decode cached minutes: %w", err)
	}
	return Estimate{DistanceKm: km, Minutes: minutes}, true, nil
}

func (s *Store) Put(ctx context.Context, origin, destination string, est Estimate) error {
	key := routeKey(origin, destination)
	pipe := s.redis.Pipeline()
	pipe.HSet(ctx, key, "distance_km", est.DistanceKm, "minutes", est.Minutes)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func routeKey(origin, destination string) string {
	return fmt.Sprintf(routeKeyPrefix, normalizeEndpoint(origin), normalizeEndpoint(destination))
}

func normalizeEndpoint(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// CachedOracle consults the store before asking the wrapped oracle.
// Cache errors are logged and never fail a lookup.
type CachedOracle struct {
	next  Oracle
	store *Store
}

func NewCachedOracle(next Oracle, store *Store) *CachedOracle {
	return &CachedOracle{next: next, store: store}
}

func (o *CachedOracle) Estimate(ctx context.Context, origin, destination string) (Estimate, error) {
	est, ok, err := o.store.Get(ctx, origin, destination)
	if err != nil {
		log.Printf("routing: cache read failed: %v", err)
	}
	if ok {
		return est, nil
	}

	est, err = o.next.Estimate(ctx, origin, destination)
	if err != nil {
		return Estimate{}, err
	}
	if !est.usable() {
		return est, nil
	}
	if err := o.store.Put(ctx, origin, destination, est); err != nil {
		log.Printf("routing: cache write failed: %v", err)
	}
	return est, nil
}
