// README: Offline crow-flies oracle over "lat,lng" endpoints.
package routing

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371.0

// CrowFliesOracle scales great-circle distance by a detour factor and
// derives minutes from an average road speed.
type CrowFliesOracle struct {
	SpeedKmh     float64
	DetourFactor float64
}

func NewCrowFliesOracle(speedKmh, detourFactor float64) *CrowFliesOracle {
	if !(speedKmh > 0) {
		speedKmh = 40
	}
	if !(detourFactor >= 1) {
		detourFactor = 1
	}
	return &CrowFliesOracle{SpeedKmh: speedKmh, DetourFactor: detourFactor}
}

func (o *CrowFliesOracle) Estimate(ctx context.Context, origin, destination string) (Estimate, error) {
	if err := ctx.Err(); err != nil {
		return Estimate{}, err
	}
	lat1, lng1, err := parseLatLng(origin)
	if err != nil {
		return Estimate{}, err
	}
	lat2, lng2, err := parseLatLng(destination)
	if err != nil {
		return Estimate{}, err
	}

	km := haversineKm(lat1, lng1, lat2, lng2) * o.DetourFactor
	return Estimate{DistanceKm: km, Minutes: km / o.SpeedKmh * 60}, nil
}

func parseLatLng(s string) (float64, float64, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q is not lat,lng", ErrInvalidEndpoint, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || !finite(lat) || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("%w: bad latitude in %q", ErrInvalidEndpoint, s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || !finite(lng) || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("%w: bad longitude in %q", ErrInvalidEndpoint, s)
	}
	return lat, lng, nil
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
