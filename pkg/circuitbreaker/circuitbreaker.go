package circuitbreaker

import (
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var (
	// MaxNumOfFailingRequests is the minimum number of requests observed
	// before the breaker is allowed to trip.
	MaxNumOfFailingRequests = 5
	// FailingRatio is the failing requests ratio at which the breaker trips.
	FailingRatio = 0.5
)

// NewCircuitBreaker returns a *gobreaker.CircuitBreaker for the named
// upstream service. It trips once at least MaxNumOfFailingRequests requests
// have been observed and the failing ratio has reached FailingRatio, and logs
// every state change.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) >= MaxNumOfFailingRequests &&
				ratio >= FailingRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithField("service", name).Debugf(
				"circuit breaker changed state from %s to %s", from, to,
			)
		},
	})
}
