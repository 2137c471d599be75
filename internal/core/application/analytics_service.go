package application

import (
	"time"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

// AnalyticsSummary is the read-only aggregation over a set of escrow
// transactions.
type AnalyticsSummary struct {
	StatusCounts map[domain.EscrowStatus]int
	// AverageReleaseTimeSeconds is computed only over transactions that
	// reached Released, as releasedAt - createdAt.
	AverageReleaseTimeSeconds float64
	// DisputeCount counts transactions that ever opened a dispute,
	// resolved ones included.
	DisputeCount int
	// OverdueCount counts Pending transactions past their expected release
	// date.
	OverdueCount int
}

// AnalyticsService derives summary statistics from escrow transactions. It
// holds no state of its own, every call recomputes from the given snapshot.
type AnalyticsService interface {
	Aggregate(transactions []*domain.EscrowTransaction) AnalyticsSummary
}

type analyticsService struct{}

// NewAnalyticsService ...
func NewAnalyticsService() AnalyticsService {
	return &analyticsService{}
}

func (s *analyticsService) Aggregate(
	transactions []*domain.EscrowTransaction,
) AnalyticsSummary {
	summary := AnalyticsSummary{
		StatusCounts: map[domain.EscrowStatus]int{
			domain.EscrowStatusPending:  0,
			domain.EscrowStatusDisputed: 0,
			domain.EscrowStatusReleased: 0,
			domain.EscrowStatusRefunded: 0,
		},
	}

	now := time.Now()
	var releasedCount int
	var totalReleaseSeconds float64
	for _, tx := range transactions {
		summary.StatusCounts[tx.Status]++
		if tx.Dispute != nil {
			summary.DisputeCount++
		}
		if tx.IsOverdue(now) {
			summary.OverdueCount++
		}
		// Transactions with no release timestamp are excluded from the
		// average, not treated as zero.
		if tx.IsReleased() && tx.ReleasedAt != nil {
			releasedCount++
			totalReleaseSeconds += tx.ReleasedAt.Sub(tx.CreatedAt).Seconds()
		}
	}

	if releasedCount > 0 {
		summary.AverageReleaseTimeSeconds = totalReleaseSeconds / float64(releasedCount)
	}
	return summary
}
