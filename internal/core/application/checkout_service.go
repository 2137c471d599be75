package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
)

// PrepareQuoteArgs carries the inputs of one checkout attempt.
type PrepareQuoteArgs struct {
	SessionID      string
	OrderID        string
	LineItems      []domain.LineItem
	BuyerCurrency  domain.CurrencyCode
	SellerCurrency domain.CurrencyCode
	ShippingMethod string
	Address        ports.Address
	// UseExternalTax ignores the per-line tax rates and asks the external
	// tax lookup for an order-level tax amount instead.
	UseExternalTax bool
}

// CheckoutService glues the rate lock, the pricing engine and the external
// shipping/tax lookups into a single quote for one checkout attempt. The
// quote has no side effects until confirmed, abandoning it is free.
type CheckoutService interface {
	PrepareQuote(
		ctx context.Context, args PrepareQuoteArgs,
	) (*domain.Quote, time.Time, error)
	// ConfirmQuote persists the locked quote, transferring ownership from
	// the checkout session to the order.
	ConfirmQuote(ctx context.Context, quote *domain.Quote) error
	// AbandonCheckout drops the session's rate lock so a restarted checkout
	// fetches a fresh snapshot.
	AbandonCheckout(sessionID string)
}

type checkoutService struct {
	pricing  PricingService
	rateLock RateLockService
	shipping ports.ShippingCalculator
	tax      ports.TaxCalculator
	repo     domain.QuoteRepository
}

// NewCheckoutService ...
func NewCheckoutService(
	pricing PricingService, rateLock RateLockService,
	shipping ports.ShippingCalculator, tax ports.TaxCalculator,
	repo domain.QuoteRepository,
) CheckoutService {
	return &checkoutService{
		pricing:  pricing,
		rateLock: rateLock,
		shipping: shipping,
		tax:      tax,
		repo:     repo,
	}
}

func (s *checkoutService) PrepareQuote(
	ctx context.Context, args PrepareQuoteArgs,
) (*domain.Quote, time.Time, error) {
	rate, err := s.rateLock.LockRate(ctx, args.SessionID)
	if err != nil {
		return nil, time.Time{}, err
	}

	lineItems := args.LineItems
	if args.UseExternalTax {
		lineItems = zeroTaxRates(lineItems)
	}

	// First pass without shipping, to learn the cart total the shipping
	// lookup wants as input.
	noShipping := domain.NewMoney(0, args.BuyerCurrency)
	provisional, err := s.pricing.ComputeQuote(
		lineItems, rate, args.BuyerCurrency, args.SellerCurrency, noShipping,
	)
	if err != nil {
		return nil, time.Time{}, err
	}

	shippingCost, estimatedDelivery, err := s.shipping.CalculateShipping(
		ctx, args.ShippingMethod, args.Address, provisional.TotalWithShipping,
	)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf(
			"%w: %s", ErrUpstreamUnavailable, err,
		)
	}

	totals, err := s.pricing.ComputeQuote(
		lineItems, rate, args.BuyerCurrency, args.SellerCurrency, shippingCost,
	)
	if err != nil {
		return nil, time.Time{}, err
	}

	if args.UseExternalTax {
		taxable, _ := totals.TotalBuyerPrice.Sub(totals.TotalDiscount)
		tax, err := s.tax.CalculateTax(
			ctx, taxable, args.Address.Country, args.Address.Region,
		)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf(
				"%w: %s", ErrUpstreamUnavailable, err,
			)
		}
		totals.TotalTax = tax
		totals.TotalWithShipping, _ = totals.TotalWithShipping.Add(tax)
	}

	// The quote keeps the line items its totals were computed from, so a
	// recomputation from the persisted quote reproduces the same numbers.
	quote, err := domain.NewQuote(
		args.OrderID, lineItems, args.BuyerCurrency, args.SellerCurrency,
		shippingCost,
	)
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := quote.Lock(rate, *totals); err != nil {
		return nil, time.Time{}, err
	}

	log.WithFields(log.Fields{
		"order": args.OrderID,
		"total": totals.TotalWithShipping.String(),
	}).Debug("quote prepared")
	return quote, estimatedDelivery, nil
}

func (s *checkoutService) ConfirmQuote(
	ctx context.Context, quote *domain.Quote,
) error {
	return s.repo.AddQuote(ctx, quote)
}

func (s *checkoutService) AbandonCheckout(sessionID string) {
	s.rateLock.InvalidateLock(sessionID)
}

func zeroTaxRates(lineItems []domain.LineItem) []domain.LineItem {
	items := make([]domain.LineItem, len(lineItems))
	copy(items, lineItems)
	for i := range items {
		items[i].TaxRatePercent = 0
	}
	return items
}
