package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bazario/settlement-daemon/internal/core/application"
	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
	"github.com/bazario/settlement-daemon/internal/infrastructure/storage/db/inmemory"
)

type fakeShipping struct {
	cost domain.Money
	err  error
}

func (s *fakeShipping) CalculateShipping(
	ctx context.Context, methodID string, address ports.Address,
	cartTotal domain.Money,
) (domain.Money, time.Time, error) {
	if s.err != nil {
		return domain.Money{}, time.Time{}, s.err
	}
	return s.cost, time.Now().AddDate(0, 0, 5), nil
}

type fakeTax struct {
	tax domain.Money
	err error
}

func (s *fakeTax) CalculateTax(
	ctx context.Context, taxableAmount domain.Money, country, region string,
) (domain.Money, error) {
	if s.err != nil {
		return domain.Money{}, s.err
	}
	return s.tax, nil
}

func TestPrepareQuote(t *testing.T) {
	t.Parallel()

	svc, repoManager := newCheckoutService(
		&fakeShipping{cost: domain.NewMoney(599, "EUR")}, &fakeTax{},
	)

	quote, estimatedDelivery, err := svc.PrepareQuote(
		context.Background(), newPrepareQuoteArgs(),
	)
	require.NoError(t, err)
	require.True(t, quote.IsLocked())
	require.False(t, estimatedDelivery.IsZero())

	// 18.00 - 1.80 + 0.81 + 5.99
	require.Equal(
		t, domain.NewMoney(2300, "EUR"), quote.Totals.TotalWithShipping,
	)

	// Nothing persisted until confirmation.
	_, err = repoManager.QuoteRepository().GetQuote(
		context.Background(), quote.ID,
	)
	require.ErrorIs(t, err, domain.ErrQuoteNotFound)

	require.NoError(t, svc.ConfirmQuote(context.Background(), quote))
	stored, err := repoManager.QuoteRepository().GetQuote(
		context.Background(), quote.ID,
	)
	require.NoError(t, err)
	require.Equal(t, quote.OrderID, stored.OrderID)
}

// Two checkouts of the same session price against the same locked snapshot,
// even if the provider would return different rates in between.
func TestPrepareQuoteReusesSessionLock(t *testing.T) {
	t.Parallel()

	svc, _ := newCheckoutService(
		&fakeShipping{cost: domain.NewMoney(599, "EUR")}, &fakeTax{},
	)

	first, _, err := svc.PrepareQuote(context.Background(), newPrepareQuoteArgs())
	require.NoError(t, err)

	second, _, err := svc.PrepareQuote(context.Background(), newPrepareQuoteArgs())
	require.NoError(t, err)

	require.Same(t, first.LockedRate, second.LockedRate)
	require.NotEqual(t, first.ID, second.ID)
}

func TestPrepareQuoteExternalTax(t *testing.T) {
	t.Parallel()

	svc, _ := newCheckoutService(
		&fakeShipping{cost: domain.NewMoney(599, "EUR")},
		&fakeTax{tax: domain.NewMoney(130, "EUR")},
	)

	args := newPrepareQuoteArgs()
	args.UseExternalTax = true

	quote, _, err := svc.PrepareQuote(context.Background(), args)
	require.NoError(t, err)

	require.Equal(t, domain.NewMoney(130, "EUR"), quote.Totals.TotalTax)
	// 18.00 - 1.80 + 5.99 shipping + 1.30 external tax
	require.Equal(
		t, domain.NewMoney(2349, "EUR"), quote.Totals.TotalWithShipping,
	)

	// The quote keeps the line items its totals were computed from, so the
	// per-line rates are zeroed and a recomputation from the quote itself
	// reproduces the stored totals.
	for _, item := range quote.LineItems {
		require.Zero(t, item.TaxRatePercent)
	}
	pricing := application.NewPricingService(application.DiscountFundedByBuyer)
	recomputed, err := pricing.ComputeQuote(
		quote.LineItems, quote.LockedRate, quote.BuyerCurrency,
		quote.SellerCurrency, quote.ShippingCost,
	)
	require.NoError(t, err)
	withTax, err := recomputed.TotalWithShipping.Add(quote.Totals.TotalTax)
	require.NoError(t, err)
	require.Equal(t, quote.Totals.TotalWithShipping, withTax)
}

func TestPrepareQuoteUpstreamFailures(t *testing.T) {
	t.Parallel()

	brokenShipping, _ := newCheckoutService(
		&fakeShipping{err: errors.New("carrier api down")}, &fakeTax{},
	)
	_, _, err := brokenShipping.PrepareQuote(
		context.Background(), newPrepareQuoteArgs(),
	)
	require.ErrorIs(t, err, application.ErrUpstreamUnavailable)

	brokenTax, _ := newCheckoutService(
		&fakeShipping{cost: domain.NewMoney(599, "EUR")},
		&fakeTax{err: errors.New("tax api down")},
	)
	args := newPrepareQuoteArgs()
	args.UseExternalTax = true
	_, _, err = brokenTax.PrepareQuote(context.Background(), args)
	require.ErrorIs(t, err, application.ErrUpstreamUnavailable)
}

func newCheckoutService(
	shipping ports.ShippingCalculator, tax ports.TaxCalculator,
) (application.CheckoutService, ports.RepoManager) {
	repoManager := inmemory.NewRepoManager()
	pricing := application.NewPricingService(application.DiscountFundedByBuyer)
	rateLock := application.NewRateLockService(&countingRateSource{}, nil)

	svc := application.NewCheckoutService(
		pricing, rateLock, shipping, tax, repoManager.QuoteRepository(),
	)
	return svc, repoManager
}

func newPrepareQuoteArgs() application.PrepareQuoteArgs {
	return application.PrepareQuoteArgs{
		SessionID:      "session-1",
		OrderID:        "order-1",
		LineItems:      newCartUSD(),
		BuyerCurrency:  "EUR",
		SellerCurrency: "USD",
		ShippingMethod: "standard",
		Address: ports.Address{
			Country:    "DE",
			Region:     "BE",
			City:       "Berlin",
			PostalCode: "10115",
		},
	}
}
