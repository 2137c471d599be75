package application_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bazario/settlement-daemon/internal/core/application"
	"github.com/bazario/settlement-daemon/internal/core/domain"
)

// A 20.00 USD item, rate 0.9 USD to EUR, 10% discount and 5% tax on the
// discounted amount: 18.00 EUR gross, 1.80 EUR discount, 0.81 EUR tax.
func TestComputeQuote(t *testing.T) {
	t.Parallel()

	svc := application.NewPricingService(application.DiscountFundedByBuyer)

	totals, err := svc.ComputeQuote(
		[]domain.LineItem{
			{
				ProductID:       "sku-1",
				UnitSellerPrice: domain.NewMoney(2000, "USD"),
				Quantity:        1,
				DiscountPercent: 10,
				TaxRatePercent:  5,
			},
		},
		newSnapshotUSD(), "EUR", "USD", domain.NewMoney(0, "EUR"),
	)
	require.NoError(t, err)

	require.Equal(t, domain.NewMoney(2000, "USD"), totals.TotalSellerPrice)
	require.Equal(t, domain.NewMoney(1800, "EUR"), totals.TotalBuyerPrice)
	require.Equal(t, domain.NewMoney(180, "EUR"), totals.TotalDiscount)
	require.Equal(t, domain.NewMoney(81, "EUR"), totals.TotalTax)
	// 18.00 - 1.80 + 0.81
	require.Equal(t, domain.NewMoney(1701, "EUR"), totals.TotalWithShipping)
	require.True(t, totals.PlatformFundedDiscount.IsZero())
}

func TestComputeQuoteWithShipping(t *testing.T) {
	t.Parallel()

	svc := application.NewPricingService(application.DiscountFundedByBuyer)

	totals, err := svc.ComputeQuote(
		newCartUSD(), newSnapshotUSD(), "EUR", "USD",
		domain.NewMoney(599, "EUR"),
	)
	require.NoError(t, err)
	// 17.01 + 5.99 shipping
	require.Equal(t, domain.NewMoney(2300, "EUR"), totals.TotalWithShipping)
}

func TestComputeQuoteIsDeterministic(t *testing.T) {
	t.Parallel()

	svc := application.NewPricingService(application.DiscountFundedByBuyer)
	snapshot := newSnapshotUSD()
	cart := newCartUSD()

	first, err := svc.ComputeQuote(
		cart, snapshot, "EUR", "USD", domain.NewMoney(599, "EUR"),
	)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := svc.ComputeQuote(
			cart, snapshot, "EUR", "USD", domain.NewMoney(599, "EUR"),
		)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestComputeQuoteSellerRevenueIsolation(t *testing.T) {
	t.Parallel()

	svc := application.NewPricingService(application.DiscountFundedByBuyer)
	snapshot := newSnapshotUSD()

	discounted, err := svc.ComputeQuote(
		newCartUSD(), snapshot, "EUR", "USD", domain.NewMoney(0, "EUR"),
	)
	require.NoError(t, err)

	fullPrice := newCartUSD()
	fullPrice[0].DiscountPercent = 0
	undiscounted, err := svc.ComputeQuote(
		fullPrice, snapshot, "EUR", "USD", domain.NewMoney(0, "EUR"),
	)
	require.NoError(t, err)

	require.Equal(
		t, undiscounted.TotalSellerPrice, discounted.TotalSellerPrice,
	)
}

func TestComputeQuoteSellerFundedDiscount(t *testing.T) {
	t.Parallel()

	svc := application.NewPricingService(application.DiscountFundedBySeller)

	totals, err := svc.ComputeQuote(
		newCartUSD(), newSnapshotUSD(), "EUR", "USD", domain.NewMoney(0, "EUR"),
	)
	require.NoError(t, err)

	// The 1.80 EUR discount converts back to 2.00 USD at the locked rate
	// and comes out of seller revenue.
	require.Equal(t, domain.NewMoney(1800, "USD"), totals.TotalSellerPrice)
	require.Equal(t, domain.NewMoney(180, "EUR"), totals.TotalDiscount)
	require.True(t, totals.PlatformFundedDiscount.IsZero())
}

func TestComputeQuotePlatformFundedDiscount(t *testing.T) {
	t.Parallel()

	svc := application.NewPricingService(application.DiscountFundedByPlatform)

	totals, err := svc.ComputeQuote(
		newCartUSD(), newSnapshotUSD(), "EUR", "USD", domain.NewMoney(0, "EUR"),
	)
	require.NoError(t, err)

	require.Equal(t, domain.NewMoney(2000, "USD"), totals.TotalSellerPrice)
	require.Equal(t, domain.NewMoney(180, "EUR"), totals.TotalDiscount)
	require.Equal(
		t, domain.NewMoney(180, "EUR"), totals.PlatformFundedDiscount,
	)
}

func TestComputeQuoteSameCurrency(t *testing.T) {
	t.Parallel()

	svc := application.NewPricingService(application.DiscountFundedByBuyer)

	totals, err := svc.ComputeQuote(
		newCartUSD(), newSnapshotUSD(), "USD", "USD", domain.NewMoney(0, "USD"),
	)
	require.NoError(t, err)
	require.Equal(t, domain.NewMoney(2000, "USD"), totals.TotalBuyerPrice)
}

func TestComputeQuoteErrors(t *testing.T) {
	t.Parallel()

	svc := application.NewPricingService(application.DiscountFundedByBuyer)
	snapshot := newSnapshotUSD()

	tests := []struct {
		name         string
		cart         []domain.LineItem
		buyer        domain.CurrencyCode
		shippingCost domain.Money
		expectedErr  error
	}{
		{
			name: "invalid_discount_percent",
			cart: []domain.LineItem{
				{
					ProductID:       "sku-1",
					UnitSellerPrice: domain.NewMoney(2000, "USD"),
					Quantity:        1,
					DiscountPercent: 101,
				},
			},
			buyer:        "EUR",
			shippingCost: domain.NewMoney(0, "EUR"),
			expectedErr:  domain.ErrInvalidPercent,
		},
		{
			name:         "missing_rate",
			cart:         newCartUSD(),
			buyer:        "CHF",
			shippingCost: domain.NewMoney(0, "CHF"),
			expectedErr:  domain.ErrInvalidRate,
		},
		{
			name: "line_item_in_wrong_currency",
			cart: []domain.LineItem{
				{
					ProductID:       "sku-1",
					UnitSellerPrice: domain.NewMoney(2000, "GBP"),
					Quantity:        1,
				},
			},
			buyer:        "EUR",
			shippingCost: domain.NewMoney(0, "EUR"),
			expectedErr:  domain.ErrCurrencyMismatch,
		},
		{
			name:         "shipping_in_wrong_currency",
			cart:         newCartUSD(),
			buyer:        "EUR",
			shippingCost: domain.NewMoney(599, "USD"),
			expectedErr:  domain.ErrCurrencyMismatch,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.ComputeQuote(
				tt.cart, snapshot, tt.buyer, "USD", tt.shippingCost,
			)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestParseDiscountFunding(t *testing.T) {
	t.Parallel()

	mode, err := application.ParseDiscountFunding("seller")
	require.NoError(t, err)
	require.Equal(t, application.DiscountFundedBySeller, mode)

	mode, err = application.ParseDiscountFunding("")
	require.NoError(t, err)
	require.Equal(t, application.DiscountFundedByBuyer, mode)

	_, err = application.ParseDiscountFunding("nobody")
	require.ErrorIs(t, err, application.ErrInvalidDiscountFunding)
}

func newCartUSD() []domain.LineItem {
	return []domain.LineItem{
		{
			ProductID:       "sku-1",
			UnitSellerPrice: domain.NewMoney(2000, "USD"),
			Quantity:        1,
			DiscountPercent: 10,
			TaxRatePercent:  5,
		},
	}
}

func newSnapshotUSD() *domain.ExchangeRateSnapshot {
	return domain.NewExchangeRateSnapshot(
		"USD", map[domain.CurrencyCode]decimal.Decimal{
			"EUR": decimal.RequireFromString("0.9"),
			"GBP": decimal.RequireFromString("0.8"),
		}, time.Now(),
	)
}
