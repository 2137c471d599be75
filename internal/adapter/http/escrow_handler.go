package httpadapter

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bazario/settlement-daemon/internal/core/application"
	"github.com/bazario/settlement-daemon/internal/core/domain"
)

// EscrowHandler exposes the settlement and analytics services over HTTP.
type EscrowHandler struct {
	settlement application.SettlementService
	analytics  application.AnalyticsService
	maxRetries int
}

// NewEscrowHandler ...
func NewEscrowHandler(
	settlement application.SettlementService,
	analytics application.AnalyticsService,
	maxRetries int,
) *EscrowHandler {
	return &EscrowHandler{
		settlement: settlement,
		analytics:  analytics,
		maxRetries: maxRetries,
	}
}

type createEscrowReq struct {
	OrderID    string     `json:"orderId" binding:"required"`
	BuyerID    string     `json:"buyerId" binding:"required"`
	SellerID   string     `json:"sellerId" binding:"required"`
	BuyerName  string     `json:"buyerName"`
	SellerName string     `json:"sellerName"`
	Amount     moneyDTO   `json:"amount" binding:"required"`
	ReleaseDue *time.Time `json:"releaseDue"`
}

func (h *EscrowHandler) CreateEscrow(c *gin.Context) {
	var req createEscrowReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	tx, err := h.settlement.CreateEscrow(c.Request.Context(), application.CreateEscrowArgs{
		OrderID:    req.OrderID,
		BuyerID:    req.BuyerID,
		SellerID:   req.SellerID,
		BuyerName:  req.BuyerName,
		SellerName: req.SellerName,
		Amount:     req.Amount.toDomain(),
		ReleaseDue: req.ReleaseDue,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newEscrowDTO(tx))
}

func (h *EscrowHandler) ListEscrows(c *gin.Context) {
	transactions, err := h.settlement.ListTransactions(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	escrows := make([]escrowDTO, 0, len(transactions))
	for _, tx := range transactions {
		escrows = append(escrows, newEscrowDTO(tx))
	}
	c.JSON(http.StatusOK, gin.H{"escrows": escrows})
}

func (h *EscrowHandler) GetEscrow(c *gin.Context) {
	tx, err := h.settlement.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEscrowDTO(tx))
}

func (h *EscrowHandler) GetTimeline(c *gin.Context) {
	tx, err := h.settlement.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": newTimelineDTO(tx.Timeline())})
}

// transitionReq carries a transition event. ExpectedVersion 0 means the
// caller did not observe a version, the daemon retries on conflicts instead.
type transitionReq struct {
	ExpectedVersion int    `json:"expectedVersion"`
	Actor           string `json:"actor"`
	Reason          string `json:"reason"`
	Note            string `json:"note"`
	AttachmentURI   string `json:"attachmentUri"`
	Outcome         string `json:"outcome"`
}

func (h *EscrowHandler) Release(c *gin.Context) {
	h.transition(c, func(req transitionReq) (application.TransitionEvent, error) {
		return application.TransitionEvent{
			Type:  application.EventRelease,
			Actor: req.Actor,
		}, nil
	})
}

func (h *EscrowHandler) Dispute(c *gin.Context) {
	h.transition(c, func(req transitionReq) (application.TransitionEvent, error) {
		return application.TransitionEvent{
			Type:   application.EventDispute,
			Actor:  req.Actor,
			Reason: req.Reason,
		}, nil
	})
}

func (h *EscrowHandler) SubmitEvidence(c *gin.Context) {
	h.transition(c, func(req transitionReq) (application.TransitionEvent, error) {
		item := domain.NewEvidenceItem(req.Actor, req.Note, req.AttachmentURI)
		return application.TransitionEvent{
			Type:     application.EventSubmitEvidence,
			Actor:    req.Actor,
			Evidence: &item,
		}, nil
	})
}

func (h *EscrowHandler) Resolve(c *gin.Context) {
	h.transition(c, func(req transitionReq) (application.TransitionEvent, error) {
		var outcome domain.EscrowStatus
		switch req.Outcome {
		case "released":
			outcome = domain.EscrowStatusReleased
		case "refunded":
			outcome = domain.EscrowStatusRefunded
		default:
			return application.TransitionEvent{}, domain.ErrInvalidResolution
		}
		return application.TransitionEvent{
			Type:    application.EventResolve,
			Actor:   req.Actor,
			Outcome: outcome,
		}, nil
	})
}

func (h *EscrowHandler) GetAnalytics(c *gin.Context) {
	transactions, err := h.settlement.ListTransactions(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	summary := h.analytics.Aggregate(transactions)
	statusCounts := make(map[string]int, len(summary.StatusCounts))
	for status, count := range summary.StatusCounts {
		statusCounts[status.String()] = count
	}
	c.JSON(http.StatusOK, gin.H{
		"statusCounts":              statusCounts,
		"averageReleaseTimeSeconds": summary.AverageReleaseTimeSeconds,
		"disputeCount":              summary.DisputeCount,
		"overdueCount":              summary.OverdueCount,
	})
}

func (h *EscrowHandler) transition(
	c *gin.Context,
	makeEvent func(req transitionReq) (application.TransitionEvent, error),
) {
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	event, err := makeEvent(req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var tx *domain.EscrowTransaction
	if req.ExpectedVersion > 0 {
		tx, err = h.settlement.Transition(
			c.Request.Context(), c.Param("id"), req.ExpectedVersion, event,
		)
	} else {
		tx, err = h.settlement.TransitionWithRetry(
			c.Request.Context(), c.Param("id"), h.maxRetries,
			func(*domain.EscrowTransaction) (*application.TransitionEvent, error) {
				return &event, nil
			},
		)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEscrowDTO(tx))
}
