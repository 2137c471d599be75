package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

func TestNewEscrowTransaction(t *testing.T) {
	t.Parallel()

	tx := newEscrowPending(t)
	require.NotEmpty(t, tx.ID)
	require.True(t, tx.IsPending())
	require.Equal(t, 1, tx.Version)
	require.Empty(t, tx.Timeline())

	_, err := domain.NewEscrowTransaction(
		"order-1", "buyer-1", "seller-1", domain.NewMoney(0, "USD"), nil,
	)
	require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
}

func TestEscrowRelease(t *testing.T) {
	t.Parallel()

	tx := newEscrowPending(t)
	require.NoError(t, tx.Release("seller-1"))

	require.True(t, tx.IsReleased())
	require.Equal(t, 2, tx.Version)
	require.NotNil(t, tx.ReleasedAt)

	timeline := tx.Timeline()
	require.Len(t, timeline, 1)
	require.Equal(t, domain.EscrowStatusPending, timeline[0].FromStatus)
	require.Equal(t, domain.EscrowStatusReleased, timeline[0].ToStatus)
	require.Equal(t, "seller-1", timeline[0].Actor)

	require.ErrorIs(t, tx.Release("seller-1"), domain.ErrInvalidTransition)
	require.Equal(t, 2, tx.Version)
}

func TestEscrowDisputeLifecycle(t *testing.T) {
	t.Parallel()

	tx := newEscrowPending(t)
	require.NoError(t, tx.OpenDispute("item not delivered", "buyer-1"))

	require.True(t, tx.IsDisputed())
	require.Equal(t, 2, tx.Version)
	require.NotNil(t, tx.Dispute)
	require.Equal(t, "item not delivered", tx.Dispute.Reason)
	require.Equal(t, domain.ResolutionUnresolved, tx.Dispute.ResolutionStatus)

	item := domain.NewEvidenceItem("seller-1", "tracking shows delivery", "")
	require.NoError(t, tx.SubmitEvidence(item))
	require.True(t, tx.IsDisputed())
	require.Equal(t, 3, tx.Version)
	require.Len(t, tx.Dispute.Evidence, 1)

	require.NoError(t, tx.Resolve(domain.EscrowStatusReleased, "arbiter-1"))
	require.True(t, tx.IsReleased())
	require.Equal(t, 4, tx.Version)
	require.Equal(t, domain.ResolutionReleased, tx.Dispute.ResolutionStatus)
	require.NotNil(t, tx.Dispute.ResolvedAt)
	require.NotNil(t, tx.ReleasedAt)
	require.Len(t, tx.Timeline(), 3)
}

func TestEscrowResolveRefunded(t *testing.T) {
	t.Parallel()

	tx := newEscrowDisputed(t)
	require.NoError(t, tx.Resolve(domain.EscrowStatusRefunded, "arbiter-1"))

	require.True(t, tx.IsRefunded())
	require.Equal(t, domain.ResolutionRefunded, tx.Dispute.ResolutionStatus)
	require.Nil(t, tx.ReleasedAt)
}

func TestEscrowInvalidTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tx          *domain.EscrowTransaction
		transition  func(tx *domain.EscrowTransaction) error
		expectedErr error
	}{
		{
			name: "dispute_on_disputed",
			tx:   newEscrowDisputed(t),
			transition: func(tx *domain.EscrowTransaction) error {
				return tx.OpenDispute("again", "buyer-1")
			},
			expectedErr: domain.ErrInvalidTransition,
		},
		{
			name: "release_on_disputed",
			tx:   newEscrowDisputed(t),
			transition: func(tx *domain.EscrowTransaction) error {
				return tx.Release("seller-1")
			},
			expectedErr: domain.ErrInvalidTransition,
		},
		{
			name: "evidence_on_pending",
			tx:   newEscrowPending(t),
			transition: func(tx *domain.EscrowTransaction) error {
				return tx.SubmitEvidence(
					domain.NewEvidenceItem("buyer-1", "note", ""),
				)
			},
			expectedErr: domain.ErrInvalidTransition,
		},
		{
			name: "resolve_on_pending",
			tx:   newEscrowPending(t),
			transition: func(tx *domain.EscrowTransaction) error {
				return tx.Resolve(domain.EscrowStatusReleased, "arbiter-1")
			},
			expectedErr: domain.ErrInvalidTransition,
		},
		{
			name: "resolve_to_pending",
			tx:   newEscrowDisputed(t),
			transition: func(tx *domain.EscrowTransaction) error {
				return tx.Resolve(domain.EscrowStatusPending, "arbiter-1")
			},
			expectedErr: domain.ErrInvalidResolution,
		},
		{
			name: "dispute_without_reason",
			tx:   newEscrowPending(t),
			transition: func(tx *domain.EscrowTransaction) error {
				return tx.OpenDispute("", "buyer-1")
			},
			expectedErr: domain.ErrEmptyDisputeReason,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			versionBefore := tt.tx.Version
			statusBefore := tt.tx.Status

			require.ErrorIs(t, tt.transition(tt.tx), tt.expectedErr)
			require.Equal(t, versionBefore, tt.tx.Version)
			require.Equal(t, statusBefore, tt.tx.Status)
		})
	}
}

func TestEscrowIsOverdue(t *testing.T) {
	t.Parallel()

	now := time.Now()
	due := now.Add(-time.Hour)

	tx, err := domain.NewEscrowTransaction(
		"order-1", "buyer-1", "seller-1", domain.NewMoney(2599, "USD"), &due,
	)
	require.NoError(t, err)
	require.True(t, tx.IsOverdue(now))

	require.NoError(t, tx.Release("seller-1"))
	require.False(t, tx.IsOverdue(now))

	noDue := newEscrowPending(t)
	require.False(t, noDue.IsOverdue(now))
}

func TestEscrowClone(t *testing.T) {
	t.Parallel()

	tx := newEscrowDisputed(t)
	require.NoError(t, tx.SubmitEvidence(
		domain.NewEvidenceItem("seller-1", "receipt", ""),
	))

	clone := tx.Clone()
	require.Equal(t, tx, clone)

	require.NoError(t, clone.Resolve(domain.EscrowStatusRefunded, "arbiter-1"))

	require.True(t, tx.IsDisputed())
	require.Equal(t, domain.ResolutionUnresolved, tx.Dispute.ResolutionStatus)
	require.Len(t, tx.Dispute.Evidence, 1)
	require.Len(t, tx.Timeline(), 2)
}

func newEscrowPending(t *testing.T) *domain.EscrowTransaction {
	tx, err := domain.NewEscrowTransaction(
		"order-1", "buyer-1", "seller-1", domain.NewMoney(2599, "USD"), nil,
	)
	require.NoError(t, err)
	return tx
}

func newEscrowDisputed(t *testing.T) *domain.EscrowTransaction {
	tx := newEscrowPending(t)
	require.NoError(t, tx.OpenDispute("item not delivered", "buyer-1"))
	return tx
}
