package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bazario/settlement-daemon/internal/core/application"
	"github.com/bazario/settlement-daemon/internal/core/domain"
)

func TestAggregateEmptyInput(t *testing.T) {
	t.Parallel()

	svc := application.NewAnalyticsService()

	summary := svc.Aggregate(nil)
	require.Equal(t, 0, summary.StatusCounts[domain.EscrowStatusPending])
	require.Equal(t, 0, summary.StatusCounts[domain.EscrowStatusDisputed])
	require.Equal(t, 0, summary.StatusCounts[domain.EscrowStatusReleased])
	require.Equal(t, 0, summary.StatusCounts[domain.EscrowStatusRefunded])
	require.Zero(t, summary.AverageReleaseTimeSeconds)
	require.Zero(t, summary.DisputeCount)
	require.Zero(t, summary.OverdueCount)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	svc := application.NewAnalyticsService()

	pending := newTx(t)

	released := newTx(t)
	require.NoError(t, released.Release("seller-1"))
	backdate(released, 120*time.Second)

	alsoReleased := newTx(t)
	require.NoError(t, alsoReleased.Release("seller-1"))
	backdate(alsoReleased, 60*time.Second)

	disputed := newTx(t)
	require.NoError(t, disputed.OpenDispute("item not delivered", "buyer-1"))

	refundedViaDispute := newTx(t)
	require.NoError(t, refundedViaDispute.OpenDispute("damaged", "buyer-1"))
	require.NoError(
		t, refundedViaDispute.Resolve(domain.EscrowStatusRefunded, "arbiter-1"),
	)

	summary := svc.Aggregate([]*domain.EscrowTransaction{
		pending, released, alsoReleased, disputed, refundedViaDispute,
	})

	require.Equal(t, 1, summary.StatusCounts[domain.EscrowStatusPending])
	require.Equal(t, 1, summary.StatusCounts[domain.EscrowStatusDisputed])
	require.Equal(t, 2, summary.StatusCounts[domain.EscrowStatusReleased])
	require.Equal(t, 1, summary.StatusCounts[domain.EscrowStatusRefunded])

	// Disputed and resolved both count, they opened a dispute at some point.
	require.Equal(t, 2, summary.DisputeCount)

	// (120 + 60) / 2, refunded and pending are excluded.
	require.InDelta(t, 90, summary.AverageReleaseTimeSeconds, 1)
}

func TestAggregateOverdue(t *testing.T) {
	t.Parallel()

	svc := application.NewAnalyticsService()

	due := time.Now().Add(-time.Hour)
	overdue, err := domain.NewEscrowTransaction(
		"order-1", "buyer-1", "seller-1", domain.NewMoney(2599, "USD"), &due,
	)
	require.NoError(t, err)

	releasedLate, err := domain.NewEscrowTransaction(
		"order-2", "buyer-1", "seller-1", domain.NewMoney(2599, "USD"), &due,
	)
	require.NoError(t, err)
	require.NoError(t, releasedLate.Release("seller-1"))

	summary := svc.Aggregate([]*domain.EscrowTransaction{overdue, releasedLate})
	require.Equal(t, 1, summary.OverdueCount)
}

func newTx(t *testing.T) *domain.EscrowTransaction {
	tx, err := domain.NewEscrowTransaction(
		"order-1", "buyer-1", "seller-1", domain.NewMoney(2599, "USD"), nil,
	)
	require.NoError(t, err)
	return tx
}

func backdate(tx *domain.EscrowTransaction, age time.Duration) {
	tx.CreatedAt = tx.CreatedAt.Add(-age)
}
