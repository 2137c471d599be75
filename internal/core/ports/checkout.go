package ports

import (
	"context"
	"time"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

// Address is the destination used for shipping-rate lookups.
type Address struct {
	Country    string
	Region     string
	City       string
	PostalCode string
}

// TaxCalculator is the external tax-rate lookup. The pricing engine itself
// works on already-resolved percentages, this port lets the checkout layer
// resolve them per line item beforehand.
type TaxCalculator interface {
	CalculateTax(
		ctx context.Context, taxableAmount domain.Money, country, region string,
	) (domain.Money, error)
}

// ShippingCalculator is the external shipping-rate lookup.
type ShippingCalculator interface {
	CalculateShipping(
		ctx context.Context, methodID string, address Address,
		cartTotal domain.Money,
	) (shippingCost domain.Money, estimatedDelivery time.Time, err error)
}
