package ports

import (
	"context"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

// RateSource is the external exchange-rate provider. Implementations may
// poll an HTTP endpoint or keep a streaming connection alive, the core only
// ever asks for the current snapshot.
type RateSource interface {
	GetCurrentRates(ctx context.Context) (*domain.ExchangeRateSnapshot, error)
}
