package httpadapter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewRouter wires the HTTP surface of the daemon: checkout quotes, escrow
// transitions, analytics and the prometheus metrics endpoint.
func NewRouter(
	checkoutHandler *CheckoutHandler, escrowHandler *EscrowHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.POST("/quotes", checkoutHandler.PrepareQuote)
		v1.POST("/quotes/:id/confirm", checkoutHandler.ConfirmQuote)
		v1.DELETE("/checkout/:sessionId", checkoutHandler.AbandonCheckout)
		v1.GET("/rates/history", checkoutHandler.GetRateHistory)

		v1.POST("/escrows", escrowHandler.CreateEscrow)
		v1.GET("/escrows", escrowHandler.ListEscrows)
		v1.GET("/escrows/:id", escrowHandler.GetEscrow)
		v1.GET("/escrows/:id/timeline", escrowHandler.GetTimeline)
		v1.POST("/escrows/:id/release", escrowHandler.Release)
		v1.POST("/escrows/:id/dispute", escrowHandler.Dispute)
		v1.POST("/escrows/:id/evidence", escrowHandler.SubmitEvidence)
		v1.POST("/escrows/:id/resolve", escrowHandler.Resolve)

		v1.GET("/analytics", escrowHandler.GetAnalytics)
	}

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		entry := log.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}
