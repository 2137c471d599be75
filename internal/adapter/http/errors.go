package httpadapter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bazario/settlement-daemon/internal/core/application"
	"github.com/bazario/settlement-daemon/internal/core/domain"
)

// abortWithError maps core rejections onto HTTP status codes: bad input is
// 400, business-rule rejections are 422, version conflicts are 409 and
// upstream failures are 502.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrQuoteNotFound),
		errors.Is(err, domain.ErrSnapshotNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStaleVersion),
		errors.Is(err, application.ErrTooManyConflicts):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidResolution),
		errors.Is(err, domain.ErrEmptyDisputeReason):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidPercent),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrAmountOverflow),
		errors.Is(err, domain.ErrQuoteAlreadyLocked):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrUpstreamUnavailable),
		errors.Is(err, application.ErrGatewayFailure):
		status = http.StatusBadGateway
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
