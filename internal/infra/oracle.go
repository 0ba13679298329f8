// README: Builds the routing oracle chain from configuration.
package infra

import (
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"tarif/internal/config"
	"tarif/internal/modules/routing"
)

// NewRouteOracle returns the configured provider, wrapped in a Redis cache
// when cache is non-nil. A Google provider without an API key yields a nil
// oracle, which the routing service reports as a missing credential.
func NewRouteOracle(cfg config.RoutingConfig, cache *redis.Client) (routing.Oracle, error) {
	var oracle routing.Oracle
	switch cfg.Provider {
	case "google":
		g, err := routing.NewGoogleOracle(cfg.APIKey, cfg.Language, cfg.Region)
		if errors.Is(err, routing.ErrMissingCredential) {
			log.Printf("routing: GOOGLE_MAPS_API_KEY not set; route lookups disabled")
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		oracle = g
	case "haversine":
		oracle = routing.NewCrowFliesOracle(cfg.SpeedKmh, cfg.DetourFactor)
	default:
		return nil, fmt.Errorf("unknown routing provider %q", cfg.Provider)
	}

	if cache != nil {
		oracle = routing.NewCachedOracle(oracle, routing.NewStore(cache, cfg.CacheTTL))
	}
	return oracle, nil
}
