// README: Google Directions oracle.
package routing

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type directionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// GoogleOracle estimates driving routes with the Directions API.
type GoogleOracle struct {
	client   directionsClient
	language string
	region   string
}

// NewGoogleOracle returns ErrMissingCredential when apiKey is empty.
func NewGoogleOracle(apiKey, language, region string) (*GoogleOracle, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleOracle{client: client, language: language, region: region}, nil
}

// Estimate sums every leg of the first driving route.
func (o *GoogleOracle) Estimate(ctx context.Context, origin, destination string) (Estimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    o.language,
		Region:      o.region,
	}

	routes, _, err := o.client.Directions(ctx, r)
	if err != nil {
		return Estimate{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Estimate{}, ErrNoRoute
	}

	var meters int
	var est Estimate
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
		est.Minutes += leg.Duration.Minutes()
	}
	est.DistanceKm = float64(meters) / 1000
	return est, nil
}
