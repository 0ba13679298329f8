// README: Config loader; optional .env file, then env vars with defaults.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type RoutingConfig struct {
	Provider     string
	APIKey       string
	Language     string
	Region       string
	SpeedKmh     float64
	DetourFactor float64
	CacheTTL     time.Duration
}

type FlatRateConfig struct {
	Base             float64
	TierKm           float64
	TierSurcharge    float64
	ExtraDeliveryFee float64
}

type Config struct {
	HTTP struct {
		Addr         string
		MaxUploadMiB int
	}
	Redis struct {
		Addr string
	}
	Routing  RoutingConfig
	FlatRate FlatRateConfig
	Invoice  struct {
		Issuer   string
		Currency string
	}
	DefaultTaxPct float64
}

// Load reads .env from the working directory when present. Variables
// already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TARIF_HTTP_ADDR", ":8080")
	cfg.HTTP.MaxUploadMiB = envOrDefaultInt("TARIF_MAX_UPLOAD_MB", 10)
	cfg.Redis.Addr = envOrDefault("TARIF_REDIS_ADDR", "")

	cfg.Routing.Provider = envOrDefault("TARIF_ROUTING_PROVIDER", "google")
	cfg.Routing.APIKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")
	cfg.Routing.Language = envOrDefault("TARIF_MAPS_LANGUAGE", "fr")
	cfg.Routing.Region = envOrDefault("TARIF_MAPS_REGION", "FR")
	cfg.Routing.SpeedKmh = envOrDefaultFloat("TARIF_ROUTE_SPEED_KMH", 40)
	cfg.Routing.DetourFactor = envOrDefaultFloat("TARIF_ROUTE_DETOUR_FACTOR", 1.3)
	cfg.Routing.CacheTTL = envOrDefaultDuration("TARIF_ROUTE_CACHE_TTL", 24*time.Hour)

	cfg.FlatRate.Base = envOrDefaultFloat("TARIF_FLAT_BASE", 37)
	cfg.FlatRate.TierKm = envOrDefaultFloat("TARIF_FLAT_TIER_KM", 3)
	cfg.FlatRate.TierSurcharge = envOrDefaultFloat("TARIF_FLAT_TIER_SURCHARGE", 3.10)
	cfg.FlatRate.ExtraDeliveryFee = envOrDefaultFloat("TARIF_FLAT_EXTRA_DELIVERY", 10)

	cfg.Invoice.Issuer = envOrDefault("TARIF_ISSUER", "")
	cfg.Invoice.Currency = envOrDefault("TARIF_CURRENCY", "EUR")
	cfg.DefaultTaxPct = envOrDefaultFloat("TARIF_DEFAULT_TAX_PCT", 20)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
