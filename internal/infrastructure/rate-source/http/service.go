package httpratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
	"github.com/bazario/settlement-daemon/pkg/circuitbreaker"
)

type rateResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	UpdatedAt    string                     `json:"updatedAt"`
}

type service struct {
	endpoint   string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewRateSource returns a ports.RateSource fetching the current snapshot
// from the given HTTP endpoint. Requests go through a circuit breaker so a
// flapping provider does not hang every checkout.
func NewRateSource(endpoint string, requestTimeout time.Duration) ports.RateSource {
	return &service{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
		cb:         circuitbreaker.NewCircuitBreaker("rate-provider"),
	}
}

func (s *service) GetCurrentRates(
	ctx context.Context,
) (*domain.ExchangeRateSnapshot, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.fetchRates(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.ExchangeRateSnapshot), nil
}

func (s *service) fetchRates(
	ctx context.Context,
) (*domain.ExchangeRateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"rate provider responded with status %d", res.StatusCode,
		)
	}

	var payload rateResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid rate provider response: %w", err)
	}

	capturedAt := time.Now()
	if parsed, err := time.Parse(time.RFC3339, payload.UpdatedAt); err == nil {
		capturedAt = parsed
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(payload.Rates))
	for currency, rate := range payload.Rates {
		rates[domain.CurrencyCode(currency)] = rate
	}
	return domain.NewExchangeRateSnapshot(
		domain.CurrencyCode(payload.BaseCurrency), rates, capturedAt,
	), nil
}
