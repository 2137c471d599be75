package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
	"github.com/bazario/settlement-daemon/pkg/circuitbreaker"
)

type settleRequest struct {
	TransactionID string `json:"transactionId"`
	TargetState   string `json:"targetState"`
}

type service struct {
	settleURL  string
	httpClient *client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewPaymentGateway returns a ports.PaymentGateway posting settle requests
// to the given endpoint. Outbound calls are paced at requestsPerSecond and
// go through a circuit breaker.
func NewPaymentGateway(
	settleURL string, requestTimeout time.Duration, requestsPerSecond int,
) ports.PaymentGateway {
	return &service{
		settleURL:  settleURL,
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("payment-gateway"),
		limiter:    ratelimit.New(requestsPerSecond),
	}
}

func (s *service) Settle(
	ctx context.Context,
	transactionID, idempotencyKey string,
	target domain.EscrowStatus,
) error {
	body, err := json.Marshal(settleRequest{
		TransactionID: transactionID,
		TargetState:   target.String(),
	})
	if err != nil {
		return err
	}

	s.limiter.Take()

	_, err = s.cb.Execute(func() (interface{}, error) {
		status, responseBody, err := s.httpClient.post(
			ctx, s.settleURL, string(body), map[string]string{
				"Content-Type":      "application/json",
				"X-Idempotency-Key": idempotencyKey,
			},
		)
		if err != nil {
			return nil, err
		}
		if status < 200 || status >= 300 {
			return nil, fmt.Errorf(
				"gateway responded with status %d: %s", status, responseBody,
			)
		}
		return nil, nil
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"transaction": transactionID,
			"target":      target.String(),
		}).Warn("settle call failed")
		return err
	}
	return nil
}
