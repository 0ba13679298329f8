// README: Route estimates, lookup state and the distance/duration oracle contract.
package routing

import (
	"context"
	"errors"
	"math"
	"time"
)

var (
	ErrMissingCredential = errors.New("routing credential missing")
	ErrNoRoute           = errors.New("no route found")
	ErrInvalidEndpoint   = errors.New("invalid route endpoint")
	ErrSuperseded        = errors.New("route lookup superseded")
)

// Estimate is what an oracle knows about one origin/destination pair.
type Estimate struct {
	DistanceKm float64 `json:"distance_km"`
	Minutes    float64 `json:"minutes"`
}

// usable reports whether both values are finite and non-negative.
func (e Estimate) usable() bool {
	return finite(e.DistanceKm) && finite(e.Minutes) && e.DistanceKm >= 0 && e.Minutes >= 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Oracle answers distance and duration for two geographic endpoints.
type Oracle interface {
	Estimate(ctx context.Context, origin, destination string) (Estimate, error)
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Lookup is the state of the most recent oracle request.
type Lookup struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      Status    `json:"status"`
	Estimate    *Estimate `json:"estimate,omitempty"`
	Advisory    string    `json:"advisory,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Advisory turns an oracle failure into an operator-facing message.
func Advisory(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "route service is not configured; enter distance and time manually"
	case errors.Is(err, ErrNoRoute):
		return "no route between these endpoints; enter distance and time manually"
	case errors.Is(err, ErrInvalidEndpoint):
		return "endpoints not understood; enter distance and time manually"
	case errors.Is(err, ErrSuperseded):
		return "a newer route lookup replaced this one"
	case errors.Is(err, context.DeadlineExceeded):
		return "route service timed out; enter distance and time manually"
	default:
		return "route service unavailable; enter distance and time manually"
	}
}
