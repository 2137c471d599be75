// Package checkoutapi implements the shipping and tax lookups against the
// storefront checkout API.
package checkoutapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
	"github.com/bazario/settlement-daemon/pkg/circuitbreaker"
)

// Service is a client of the checkout API implementing both the
// ports.ShippingCalculator and the ports.TaxCalculator lookups.
type Service struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

var (
	_ ports.ShippingCalculator = (*Service)(nil)
	_ ports.TaxCalculator      = (*Service)(nil)
)

// NewService ...
func NewService(baseURL string, requestTimeout time.Duration) *Service {
	return &Service{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		cb:         circuitbreaker.NewCircuitBreaker("checkout-api"),
	}
}

type addressPayload struct {
	Country    string `json:"country"`
	Region     string `json:"region"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type calculateShippingRequest struct {
	MethodID  string         `json:"methodId"`
	Address   addressPayload `json:"address"`
	CartCents int64          `json:"cartCents"`
	Currency  string         `json:"currency"`
}

type calculateShippingResponse struct {
	RateCents         int64     `json:"rateCents"`
	Currency          string    `json:"currency"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

func (s *Service) CalculateShipping(
	ctx context.Context, methodID string, address ports.Address,
	cartTotal domain.Money,
) (domain.Money, time.Time, error) {
	req := calculateShippingRequest{
		MethodID: methodID,
		Address: addressPayload{
			Country:    address.Country,
			Region:     address.Region,
			City:       address.City,
			PostalCode: address.PostalCode,
		},
		CartCents: cartTotal.Amount,
		Currency:  string(cartTotal.Currency),
	}

	var resp calculateShippingResponse
	if err := s.post(ctx, "/shipping/calculate", req, &resp); err != nil {
		return domain.Money{}, time.Time{}, err
	}

	currency := domain.CurrencyCode(resp.Currency)
	if currency == "" {
		currency = cartTotal.Currency
	}
	return domain.NewMoney(resp.RateCents, currency), resp.EstimatedDelivery, nil
}

type calculateTaxRequest struct {
	TaxableCents int64  `json:"taxableCents"`
	Currency     string `json:"currency"`
	Country      string `json:"country"`
	Region       string `json:"region"`
}

type calculateTaxResponse struct {
	TaxCents int64           `json:"taxCents"`
	TaxRate  decimal.Decimal `json:"taxRate"`
}

func (s *Service) CalculateTax(
	ctx context.Context, taxableAmount domain.Money, country, region string,
) (domain.Money, error) {
	req := calculateTaxRequest{
		TaxableCents: taxableAmount.Amount,
		Currency:     string(taxableAmount.Currency),
		Country:      country,
		Region:       region,
	}

	var resp calculateTaxResponse
	if err := s.post(ctx, "/tax/calculate", req, &resp); err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(resp.TaxCents, taxableAmount.Currency), nil
}

func (s *Service) post(
	ctx context.Context, path string, payload, out interface{},
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	responseBody, err := s.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		rs, err := s.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer rs.Body.Close()

		bodyBytes, err := io.ReadAll(rs.Body)
		if err != nil {
			return nil, err
		}
		if rs.StatusCode < 200 || rs.StatusCode >= 300 {
			return nil, fmt.Errorf(
				"checkout api responded with status %d: %s",
				rs.StatusCode, bodyBytes,
			)
		}
		return bodyBytes, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(responseBody.([]byte), out)
}
