// README: Route lookup tracker; the newest request supersedes any in-flight one.
package routing

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

const lookupTimeout = 10 * time.Second

type Service struct {
	oracle Oracle

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	latest Lookup
}

// NewService tracks lookups against oracle. A nil oracle makes every
// lookup fail with ErrMissingCredential.
func NewService(oracle Oracle) *Service {
	return &Service{oracle: oracle, latest: Lookup{Status: StatusIdle}}
}

// Estimate asks the oracle for the pair, cancelling any lookup still in
// flight. It returns ErrSuperseded when a newer lookup started meanwhile;
// a superseded result never becomes the latest estimate.
func (s *Service) Estimate(ctx context.Context, origin, destination string) (Estimate, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	lctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	s.cancel = cancel
	s.latest = Lookup{Origin: origin, Destination: destination, Status: StatusPending, UpdatedAt: time.Now().UTC()}
	s.mu.Unlock()
	defer cancel()

	est, err := s.lookup(lctx, origin, destination)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return Estimate{}, ErrSuperseded
	}
	s.cancel = nil
	s.latest.UpdatedAt = time.Now().UTC()
	if err != nil {
		log.Printf("routing: lookup %q -> %q failed: %v", origin, destination, err)
		s.latest.Status = StatusFailed
		s.latest.Advisory = Advisory(err)
		return Estimate{}, err
	}
	s.latest.Status = StatusReady
	s.latest.Estimate = &est
	return est, nil
}

func (s *Service) lookup(ctx context.Context, origin, destination string) (Estimate, error) {
	if origin == "" || destination == "" {
		return Estimate{}, ErrInvalidEndpoint
	}
	if s.oracle == nil {
		return Estimate{}, ErrMissingCredential
	}
	est, err := s.oracle.Estimate(ctx, origin, destination)
	if err != nil {
		return Estimate{}, err
	}
	if !est.usable() {
		return Estimate{}, fmt.Errorf("%w: oracle returned %+v", ErrNoRoute, est)
	}
	return est, nil
}

// Latest returns a copy of the most recent lookup state.
func (s *Service) Latest() Lookup {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.latest
	if l.Estimate != nil {
		est := *l.Estimate
		l.Estimate = &est
	}
	return l
}

// Resolve returns the latest ready estimate if it was computed for the
// same endpoints. Quotes use it in place of manual distance and minutes.
func (s *Service) Resolve(origin, destination string) (Estimate, bool) {
	l := s.Latest()
	if l.Status != StatusReady || l.Estimate == nil {
		return Estimate{}, false
	}
	if !l.matches(origin, destination) {
		return Estimate{}, false
	}
	return *l.Estimate, true
}

// FailureAdvisory returns the advisory of the latest lookup when it failed
// for the same endpoints.
func (s *Service) FailureAdvisory(origin, destination string) (string, bool) {
	l := s.Latest()
	if l.Status != StatusFailed || !l.matches(origin, destination) {
		return "", false
	}
	return l.Advisory, true
}

func (l Lookup) matches(origin, destination string) bool {
	return normalizeEndpoint(l.Origin) == normalizeEndpoint(origin) &&
		normalizeEndpoint(l.Destination) == normalizeEndpoint(destination)
}
