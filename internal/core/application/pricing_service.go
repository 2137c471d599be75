package application

import (
	"strings"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

const (
	// DiscountFundedByBuyer applies the discount on the buyer-currency
	// amount only, seller revenue is untouched. This is the default.
	DiscountFundedByBuyer DiscountFunding = iota
	// DiscountFundedBySeller deducts the discount, converted back at the
	// locked rate, from seller revenue.
	DiscountFundedBySeller
	// DiscountFundedByPlatform behaves like buyer funding for all visible
	// totals, but reports the discount separately so it can be billed to
	// the platform account.
	DiscountFundedByPlatform
)

// DiscountFunding selects who absorbs the discount amount.
type DiscountFunding int

func (d DiscountFunding) String() string {
	switch d {
	case DiscountFundedBySeller:
		return "seller"
	case DiscountFundedByPlatform:
		return "platform"
	default:
		return "buyer"
	}
}

// ParseDiscountFunding parses a funding mode from its config string.
func ParseDiscountFunding(s string) (DiscountFunding, error) {
	switch strings.ToLower(s) {
	case "buyer", "":
		return DiscountFundedByBuyer, nil
	case "seller":
		return DiscountFundedBySeller, nil
	case "platform":
		return DiscountFundedByPlatform, nil
	default:
		return 0, ErrInvalidDiscountFunding
	}
}

// PricingService computes per-item and order-level totals from line items, a
// rate snapshot and adjustment inputs. It is a pure function of its inputs,
// safe to call concurrently.
type PricingService interface {
	ComputeQuote(
		lineItems []domain.LineItem,
		rate *domain.ExchangeRateSnapshot,
		buyerCurrency, sellerCurrency domain.CurrencyCode,
		shippingCost domain.Money,
	) (*domain.PriceTotals, error)
}

type pricingService struct {
	discountFunding DiscountFunding
}

// NewPricingService returns a PricingService applying discounts according to
// the given funding mode.
func NewPricingService(discountFunding DiscountFunding) PricingService {
	return &pricingService{discountFunding: discountFunding}
}

func (s *pricingService) ComputeQuote(
	lineItems []domain.LineItem,
	rate *domain.ExchangeRateSnapshot,
	buyerCurrency, sellerCurrency domain.CurrencyCode,
	shippingCost domain.Money,
) (*domain.PriceTotals, error) {
	crossRate, err := rate.CrossRate(sellerCurrency, buyerCurrency)
	if err != nil {
		return nil, err
	}
	if shippingCost.Currency != buyerCurrency {
		return nil, domain.ErrCurrencyMismatch
	}

	totalSeller := domain.NewMoney(0, sellerCurrency)
	totalBuyer := domain.NewMoney(0, buyerCurrency)
	totalDiscount := domain.NewMoney(0, buyerCurrency)
	totalTax := domain.NewMoney(0, buyerCurrency)
	sellerFundedDiscount := domain.NewMoney(0, sellerCurrency)

	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if item.UnitSellerPrice.Currency != sellerCurrency {
			return nil, domain.ErrCurrencyMismatch
		}

		sellerSubtotal, err := item.UnitSellerPrice.MulQuantity(item.Quantity)
		if err != nil {
			return nil, err
		}
		buyerSubtotal := sellerSubtotal.ConvertTo(crossRate, buyerCurrency)

		discount, err := buyerSubtotal.Percent(item.DiscountPercent)
		if err != nil {
			return nil, err
		}
		taxable, err := buyerSubtotal.Sub(discount)
		if err != nil {
			return nil, err
		}
		tax, err := taxable.Percent(item.TaxRatePercent)
		if err != nil {
			return nil, err
		}

		totalSeller, _ = totalSeller.Add(sellerSubtotal)
		totalBuyer, _ = totalBuyer.Add(buyerSubtotal)
		totalDiscount, _ = totalDiscount.Add(discount)
		totalTax, _ = totalTax.Add(tax)

		if s.discountFunding == DiscountFundedBySeller {
			inverseRate, err := rate.CrossRate(buyerCurrency, sellerCurrency)
			if err != nil {
				return nil, err
			}
			deduction := discount.ConvertTo(inverseRate, sellerCurrency)
			sellerFundedDiscount, _ = sellerFundedDiscount.Add(deduction)
		}
	}

	if s.discountFunding == DiscountFundedBySeller {
		totalSeller, _ = totalSeller.Sub(sellerFundedDiscount)
	}

	afterDiscount, _ := totalBuyer.Sub(totalDiscount)
	withTax, _ := afterDiscount.Add(totalTax)
	totalWithShipping, _ := withTax.Add(shippingCost)

	totals := &domain.PriceTotals{
		TotalSellerPrice:       totalSeller,
		TotalBuyerPrice:        totalBuyer,
		TotalDiscount:          totalDiscount,
		TotalTax:               totalTax,
		TotalWithShipping:      totalWithShipping,
		PlatformFundedDiscount: domain.NewMoney(0, buyerCurrency),
	}
	if s.discountFunding == DiscountFundedByPlatform {
		totals.PlatformFundedDiscount = totalDiscount
	}
	return totals, nil
}
