package httpadapter

import (
	"time"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

type moneyDTO struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

func newMoneyDTO(m domain.Money) moneyDTO {
	return moneyDTO{Cents: m.Amount, Currency: string(m.Currency)}
}

func (d moneyDTO) toDomain() domain.Money {
	return domain.NewMoney(d.Cents, domain.CurrencyCode(d.Currency))
}

type lineItemDTO struct {
	ProductID       string   `json:"productId" binding:"required"`
	UnitPrice       moneyDTO `json:"unitPrice" binding:"required"`
	Quantity        uint     `json:"quantity" binding:"required,gt=0"`
	DiscountPercent uint     `json:"discountPercent"`
	TaxRatePercent  uint     `json:"taxRatePercent"`
}

func (d lineItemDTO) toDomain() domain.LineItem {
	return domain.LineItem{
		ProductID:       d.ProductID,
		UnitSellerPrice: d.UnitPrice.toDomain(),
		Quantity:        d.Quantity,
		DiscountPercent: d.DiscountPercent,
		TaxRatePercent:  d.TaxRatePercent,
	}
}

type priceTotalsDTO struct {
	TotalSellerPrice       moneyDTO `json:"totalSellerPrice"`
	TotalBuyerPrice        moneyDTO `json:"totalBuyerPrice"`
	TotalDiscount          moneyDTO `json:"totalDiscount"`
	TotalTax               moneyDTO `json:"totalTax"`
	TotalWithShipping      moneyDTO `json:"totalWithShipping"`
	PlatformFundedDiscount moneyDTO `json:"platformFundedDiscount"`
}

func newPriceTotalsDTO(t domain.PriceTotals) priceTotalsDTO {
	return priceTotalsDTO{
		TotalSellerPrice:       newMoneyDTO(t.TotalSellerPrice),
		TotalBuyerPrice:        newMoneyDTO(t.TotalBuyerPrice),
		TotalDiscount:          newMoneyDTO(t.TotalDiscount),
		TotalTax:               newMoneyDTO(t.TotalTax),
		TotalWithShipping:      newMoneyDTO(t.TotalWithShipping),
		PlatformFundedDiscount: newMoneyDTO(t.PlatformFundedDiscount),
	}
}

type quoteDTO struct {
	ID                string         `json:"id"`
	OrderID           string         `json:"orderId"`
	BuyerCurrency     string         `json:"buyerCurrency"`
	SellerCurrency    string         `json:"sellerCurrency"`
	ShippingCost      moneyDTO       `json:"shippingCost"`
	Totals            priceTotalsDTO `json:"totals"`
	RateCapturedAt    time.Time      `json:"rateCapturedAt"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery,omitempty"`
}

func newQuoteDTO(q *domain.Quote, estimatedDelivery time.Time) quoteDTO {
	dto := quoteDTO{
		ID:                q.ID,
		OrderID:           q.OrderID,
		BuyerCurrency:     string(q.BuyerCurrency),
		SellerCurrency:    string(q.SellerCurrency),
		ShippingCost:      newMoneyDTO(q.ShippingCost),
		Totals:            newPriceTotalsDTO(q.Totals),
		EstimatedDelivery: estimatedDelivery,
	}
	if q.LockedRate != nil {
		dto.RateCapturedAt = q.LockedRate.CapturedAt
	}
	return dto
}

type rateSnapshotDTO struct {
	BaseCurrency string            `json:"baseCurrency"`
	Rates        map[string]string `json:"rates"`
	CapturedAt   time.Time         `json:"capturedAt"`
}

func newRateSnapshotDTO(s *domain.ExchangeRateSnapshot) rateSnapshotDTO {
	rates := make(map[string]string, len(s.Rates))
	for currency, rate := range s.Rates {
		rates[string(currency)] = rate.String()
	}
	return rateSnapshotDTO{
		BaseCurrency: string(s.BaseCurrency),
		Rates:        rates,
		CapturedAt:   s.CapturedAt,
	}
}

type evidenceDTO struct {
	ID            string    `json:"id"`
	SubmittedBy   string    `json:"submittedBy"`
	Note          string    `json:"note"`
	AttachmentURI string    `json:"attachmentUri,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

type disputeDTO struct {
	Reason           string        `json:"reason"`
	OpenedAt         time.Time     `json:"openedAt"`
	Evidence         []evidenceDTO `json:"evidence"`
	ResolutionStatus string        `json:"resolutionStatus"`
	ResolvedAt       *time.Time    `json:"resolvedAt,omitempty"`
}

type statusChangeDTO struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
}

type escrowDTO struct {
	ID         string      `json:"id"`
	OrderID    string      `json:"orderId"`
	BuyerID    string      `json:"buyerId"`
	SellerID   string      `json:"sellerId"`
	BuyerName  string      `json:"buyerName,omitempty"`
	SellerName string      `json:"sellerName,omitempty"`
	Amount     moneyDTO    `json:"amount"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	ReleaseDue *time.Time  `json:"releaseDue,omitempty"`
	ReleasedAt *time.Time  `json:"releasedAt,omitempty"`
	Dispute    *disputeDTO `json:"dispute,omitempty"`
	Version    int         `json:"version"`
}

func newEscrowDTO(tx *domain.EscrowTransaction) escrowDTO {
	dto := escrowDTO{
		ID:         tx.ID,
		OrderID:    tx.OrderID,
		BuyerID:    tx.BuyerID,
		SellerID:   tx.SellerID,
		BuyerName:  tx.BuyerName,
		SellerName: tx.SellerName,
		Amount:     newMoneyDTO(tx.Amount),
		Status:     tx.Status.String(),
		CreatedAt:  tx.CreatedAt,
		ReleaseDue: tx.ReleaseDue,
		ReleasedAt: tx.ReleasedAt,
		Version:    tx.Version,
	}
	if tx.Dispute != nil {
		dispute := &disputeDTO{
			Reason:           tx.Dispute.Reason,
			OpenedAt:         tx.Dispute.OpenedAt,
			Evidence:         make([]evidenceDTO, 0, len(tx.Dispute.Evidence)),
			ResolutionStatus: tx.Dispute.ResolutionStatus.String(),
			ResolvedAt:       tx.Dispute.ResolvedAt,
		}
		for _, item := range tx.Dispute.Evidence {
			dispute.Evidence = append(dispute.Evidence, evidenceDTO{
				ID:            item.ID,
				SubmittedBy:   item.SubmittedBy,
				Note:          item.Note,
				AttachmentURI: item.AttachmentURI,
				SubmittedAt:   item.SubmittedAt,
			})
		}
		dto.Dispute = dispute
	}
	return dto
}

func newTimelineDTO(changes []domain.StatusChange) []statusChangeDTO {
	timeline := make([]statusChangeDTO, 0, len(changes))
	for _, change := range changes {
		timeline = append(timeline, statusChangeDTO{
			From:      change.FromStatus.String(),
			To:        change.ToStatus.String(),
			Timestamp: change.Timestamp,
			Actor:     change.Actor,
		})
	}
	return timeline
}
