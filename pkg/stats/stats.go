package stats

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/bazario/settlement-daemon/internal/core/application"
	"github.com/bazario/settlement-daemon/internal/core/domain"
)

var (
	escrowStatusGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "settlementd_escrow_transactions",
		Help: "Number of escrow transactions by status.",
	}, []string{"status"})

	escrowOverdueGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "settlementd_escrow_overdue_total",
		Help: "Number of pending transactions past their expected release date.",
	})

	avgReleaseTimeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "settlementd_escrow_release_seconds_avg",
		Help: "Average seconds between creation and release of released transactions.",
	})

	scansCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlementd_analytics_scans_total",
		Help: "Number of analytics scans performed.",
	})
)

func init() {
	prometheus.MustRegister(
		escrowStatusGauge, escrowOverdueGauge, avgReleaseTimeGauge, scansCounter,
	)
}

// EnableSettlementStatistics starts a goroutine that periodically scans the
// escrow repository, logs the aggregated summary and refreshes the
// prometheus collectors, until the context is done.
func EnableSettlementStatistics(
	ctx context.Context, interval time.Duration,
	repo domain.EscrowRepository, aggregator application.AnalyticsService,
) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := report(ctx, repo, aggregator); err != nil {
					log.WithError(err).Warn("failed to report settlement statistics")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func report(
	ctx context.Context,
	repo domain.EscrowRepository, aggregator application.AnalyticsService,
) error {
	transactions, err := repo.GetAllTransactions(ctx)
	if err != nil {
		return err
	}

	summary := aggregator.Aggregate(transactions)
	scansCounter.Inc()

	for status, count := range summary.StatusCounts {
		escrowStatusGauge.WithLabelValues(status.String()).Set(float64(count))
	}
	escrowOverdueGauge.Set(float64(summary.OverdueCount))
	avgReleaseTimeGauge.Set(summary.AverageReleaseTimeSeconds)

	log.WithFields(log.Fields{
		"pending":             summary.StatusCounts[domain.EscrowStatusPending],
		"disputed":            summary.StatusCounts[domain.EscrowStatusDisputed],
		"released":            summary.StatusCounts[domain.EscrowStatusReleased],
		"refunded":            summary.StatusCounts[domain.EscrowStatusRefunded],
		"disputes":            summary.DisputeCount,
		"overdue":             summary.OverdueCount,
		"avg_release_seconds": summary.AverageReleaseTimeSeconds,
	}).Info("settlement statistics")
	return nil
}
