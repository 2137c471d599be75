package httpadapter

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bazario/settlement-daemon/internal/core/application"
	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
)

// CheckoutHandler exposes quote preparation and the rate history over HTTP.
// Prepared quotes are held in memory until confirmed or abandoned, only a
// confirmed quote reaches the repository.
type CheckoutHandler struct {
	checkout application.CheckoutService
	rateRepo domain.RateRepository

	lock     sync.Mutex
	prepared map[string]*preparedQuote
}

type preparedQuote struct {
	quote     *domain.Quote
	sessionID string
}

// NewCheckoutHandler ...
func NewCheckoutHandler(
	checkout application.CheckoutService, rateRepo domain.RateRepository,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		rateRepo: rateRepo,
		prepared: make(map[string]*preparedQuote),
	}
}

type prepareQuoteReq struct {
	SessionID      string        `json:"sessionId" binding:"required"`
	OrderID        string        `json:"orderId" binding:"required"`
	LineItems      []lineItemDTO `json:"lineItems" binding:"required,dive"`
	BuyerCurrency  string        `json:"buyerCurrency" binding:"required"`
	SellerCurrency string        `json:"sellerCurrency" binding:"required"`
	ShippingMethod string        `json:"shippingMethod"`
	Country        string        `json:"country"`
	Region         string        `json:"region"`
	PostalCode     string        `json:"postalCode"`
	UseExternalTax bool          `json:"useExternalTax"`
}

func (h *CheckoutHandler) PrepareQuote(c *gin.Context) {
	var req prepareQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	lineItems := make([]domain.LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		lineItems = append(lineItems, item.toDomain())
	}

	quote, estimatedDelivery, err := h.checkout.PrepareQuote(
		c.Request.Context(), application.PrepareQuoteArgs{
			SessionID:      req.SessionID,
			OrderID:        req.OrderID,
			LineItems:      lineItems,
			BuyerCurrency:  domain.CurrencyCode(req.BuyerCurrency),
			SellerCurrency: domain.CurrencyCode(req.SellerCurrency),
			ShippingMethod: req.ShippingMethod,
			Address: ports.Address{
				Country:    req.Country,
				Region:     req.Region,
				PostalCode: req.PostalCode,
			},
			UseExternalTax: req.UseExternalTax,
		},
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.lock.Lock()
	h.prepared[quote.ID] = &preparedQuote{quote: quote, sessionID: req.SessionID}
	h.lock.Unlock()

	c.JSON(http.StatusOK, newQuoteDTO(quote, estimatedDelivery))
}

func (h *CheckoutHandler) ConfirmQuote(c *gin.Context) {
	id := c.Param("id")

	h.lock.Lock()
	pq, ok := h.prepared[id]
	h.lock.Unlock()
	if !ok {
		abortWithError(c, domain.ErrQuoteNotFound)
		return
	}

	if err := h.checkout.ConfirmQuote(c.Request.Context(), pq.quote); err != nil {
		abortWithError(c, err)
		return
	}

	h.lock.Lock()
	delete(h.prepared, id)
	h.lock.Unlock()

	c.JSON(http.StatusOK, newQuoteDTO(pq.quote, time.Time{}))
}

func (h *CheckoutHandler) AbandonCheckout(c *gin.Context) {
	sessionID := c.Param("sessionId")
	h.checkout.AbandonCheckout(sessionID)

	// Drop any prepared quote the session left behind.
	h.lock.Lock()
	for id, pq := range h.prepared {
		if pq.sessionID == sessionID {
			delete(h.prepared, id)
		}
	}
	h.lock.Unlock()

	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) GetRateHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
			return
		}
		limit = parsed
	}

	snapshots, err := h.rateRepo.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	history := make([]rateSnapshotDTO, 0, len(snapshots))
	for _, snapshot := range snapshots {
		history = append(history, newRateSnapshotDTO(snapshot))
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": history})
}
