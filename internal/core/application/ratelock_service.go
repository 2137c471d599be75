package application

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
)

// RateLockService owns the decision of which rate snapshot a checkout
// session uses and when that choice becomes immutable. Locking is idempotent
// per session, the provider is hit exactly once no matter how many callers
// race on the same session.
type RateLockService interface {
	// LockRate returns the session's locked snapshot, fetching and locking
	// the current one on first call.
	LockRate(
		ctx context.Context, sessionID string,
	) (*domain.ExchangeRateSnapshot, error)
	// InvalidateLock clears the session's lock. Used only when the cart's
	// currency pair changes or checkout restarts, never on a timer.
	InvalidateLock(sessionID string)
}

type rateLockService struct {
	rateSource ports.RateSource
	rateRepo   domain.RateRepository

	lock           sync.RWMutex
	locksBySession map[string]*domain.ExchangeRateSnapshot
	fetchGroup     singleflight.Group
}

// NewRateLockService returns a RateLockService fetching from the given
// source. Every fetched snapshot is appended to the rate history, a nil
// repository disables history.
func NewRateLockService(
	rateSource ports.RateSource, rateRepo domain.RateRepository,
) RateLockService {
	return &rateLockService{
		rateSource:     rateSource,
		rateRepo:       rateRepo,
		locksBySession: make(map[string]*domain.ExchangeRateSnapshot),
	}
}

func (s *rateLockService) LockRate(
	ctx context.Context, sessionID string,
) (*domain.ExchangeRateSnapshot, error) {
	s.lock.RLock()
	if snapshot, ok := s.locksBySession[sessionID]; ok {
		s.lock.RUnlock()
		return snapshot, nil
	}
	s.lock.RUnlock()

	result, err, _ := s.fetchGroup.Do(sessionID, func() (interface{}, error) {
		s.lock.RLock()
		if snapshot, ok := s.locksBySession[sessionID]; ok {
			s.lock.RUnlock()
			return snapshot, nil
		}
		s.lock.RUnlock()

		snapshot, err := s.rateSource.GetCurrentRates(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, err)
		}

		s.lock.Lock()
		s.locksBySession[sessionID] = snapshot
		s.lock.Unlock()

		if s.rateRepo != nil {
			if err := s.rateRepo.AddSnapshot(ctx, snapshot); err != nil {
				log.WithError(err).Warn("failed to append rate snapshot to history")
			}
		}
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.ExchangeRateSnapshot), nil
}

func (s *rateLockService) InvalidateLock(sessionID string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.locksBySession, sessionID)
}
