package domain

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is a single cart entry priced in the seller's currency. It is
// immutable once attached to a Quote.
type LineItem struct {
	ProductID       string
	UnitSellerPrice Money
	Quantity        uint
	DiscountPercent uint
	TaxRatePercent  uint
}

// Validate checks the percentage fields are within [0, 100].
func (l LineItem) Validate() error {
	if l.DiscountPercent > 100 || l.TaxRatePercent > 100 {
		return ErrInvalidPercent
	}
	return nil
}

// PriceTotals holds the order-level aggregation produced by the pricing
// engine. It is derived, never hand-edited.
type PriceTotals struct {
	// TotalSellerPrice is the seller revenue in seller currency, unaffected
	// by discount and tax unless the discount is seller-funded.
	TotalSellerPrice Money
	// TotalBuyerPrice is the converted subtotal in buyer currency before
	// discount and tax.
	TotalBuyerPrice Money
	TotalDiscount   Money
	TotalTax        Money
	// TotalWithShipping is the final buyer charge.
	TotalWithShipping Money
	// PlatformFundedDiscount is the share of the discount billed to the
	// platform account. Zero unless the platform funding mode is active.
	PlatformFundedDiscount Money
}

// Quote is the priced outcome of one checkout attempt. It becomes immutable
// the instant a rate snapshot is locked onto it: a changed cart supersedes
// the quote with a fresh one instead of mutating it.
type Quote struct {
	ID             string
	OrderID        string
	LineItems      []LineItem
	LockedRate     *ExchangeRateSnapshot
	BuyerCurrency  CurrencyCode
	SellerCurrency CurrencyCode
	ShippingCost   Money
	Totals         PriceTotals
	CreatedAt      time.Time
	// SupersededBy holds the id of the replacing quote, if any.
	SupersededBy string
}

// NewQuote returns an unlocked quote for the given order and cart.
func NewQuote(
	orderID string, lineItems []LineItem,
	buyerCurrency, sellerCurrency CurrencyCode, shippingCost Money,
) (*Quote, error) {
	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	items := make([]LineItem, len(lineItems))
	copy(items, lineItems)

	return &Quote{
		ID:             uuid.New().String(),
		OrderID:        orderID,
		LineItems:      items,
		BuyerCurrency:  buyerCurrency,
		SellerCurrency: sellerCurrency,
		ShippingCost:   shippingCost,
		CreatedAt:      time.Now(),
	}, nil
}

// Lock pins the rate snapshot and derived totals onto the quote, making it
// immutable. Locking twice is rejected with ErrQuoteAlreadyLocked.
func (q *Quote) Lock(rate *ExchangeRateSnapshot, totals PriceTotals) error {
	if q.IsLocked() {
		return ErrQuoteAlreadyLocked
	}
	q.LockedRate = rate
	q.Totals = totals
	return nil
}

// IsLocked returns whether a rate snapshot has been locked onto the quote.
func (q *Quote) IsLocked() bool {
	return q.LockedRate != nil
}

// Supersede marks the quote as replaced and returns a fresh unlocked quote
// for the changed cart. The old lock is invalidated by the replacement.
func (q *Quote) Supersede(
	lineItems []LineItem, shippingCost Money,
) (*Quote, error) {
	next, err := NewQuote(
		q.OrderID, lineItems, q.BuyerCurrency, q.SellerCurrency, shippingCost,
	)
	if err != nil {
		return nil, err
	}
	q.SupersededBy = next.ID
	return next, nil
}
