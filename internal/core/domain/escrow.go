package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/thanhpk/randstr"
)

const (
	// EscrowStatusPending is the initial status of every transaction: funds
	// are held by the platform waiting for delivery confirmation.
	EscrowStatusPending EscrowStatus = iota
	// EscrowStatusDisputed means the buyer opened a dispute and an arbiter
	// decision is required to reach a terminal status.
	EscrowStatusDisputed
	// EscrowStatusReleased is terminal, funds moved to the seller.
	EscrowStatusReleased
	// EscrowStatusRefunded is terminal, funds returned to the buyer.
	EscrowStatusRefunded
)

const (
	// ResolutionUnresolved ...
	ResolutionUnresolved ResolutionStatus = iota
	// ResolutionReleased ...
	ResolutionReleased
	// ResolutionRefunded ...
	ResolutionRefunded
)

// EscrowStatus represents the lifecycle status of an escrow transaction.
type EscrowStatus int

func (s EscrowStatus) String() string {
	switch s {
	case EscrowStatusPending:
		return "pending"
	case EscrowStatusDisputed:
		return "disputed"
	case EscrowStatusReleased:
		return "released"
	case EscrowStatusRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// IsTerminal returns whether no further transition can leave the status.
func (s EscrowStatus) IsTerminal() bool {
	return s == EscrowStatusReleased || s == EscrowStatusRefunded
}

// ResolutionStatus is the write-once arbiter decision on a dispute.
type ResolutionStatus int

func (s ResolutionStatus) String() string {
	switch s {
	case ResolutionReleased:
		return "resolved_released"
	case ResolutionRefunded:
		return "resolved_refunded"
	default:
		return "unresolved"
	}
}

// EvidenceItem is a single piece of evidence attached to a dispute.
type EvidenceItem struct {
	ID            string
	SubmittedBy   string
	Note          string
	AttachmentURI string
	SubmittedAt   time.Time
}

// NewEvidenceItem returns an evidence item with a random id and the current
// submission time.
func NewEvidenceItem(submittedBy, note, attachmentURI string) EvidenceItem {
	return EvidenceItem{
		ID:            randstr.Hex(8),
		SubmittedBy:   submittedBy,
		Note:          note,
		AttachmentURI: attachmentURI,
		SubmittedAt:   time.Now(),
	}
}

// Dispute is created only by a Pending to Disputed transition. Evidence is
// appended over time, the resolution fields are written exactly once.
type Dispute struct {
	Reason           string
	OpenedAt         time.Time
	Evidence         []EvidenceItem
	ResolutionStatus ResolutionStatus
	ResolvedAt       *time.Time
}

// StatusChange is one entry of the append-only audit log of a transaction,
// required for dispute review and analytics.
type StatusChange struct {
	FromStatus EscrowStatus
	ToStatus   EscrowStatus
	Timestamp  time.Time
	Actor      string
}

// EscrowTransaction is the data structure representing one escrowed payment.
// Its fields are owned exclusively by the settlement subsystem: every
// transition bumps Version so concurrent writers can be detected.
type EscrowTransaction struct {
	ID         string
	OrderID    string
	BuyerID    string
	SellerID   string
	BuyerName  string
	SellerName string
	Amount     Money
	Status     EscrowStatus
	CreatedAt  time.Time
	// ReleaseDue is the expected release date agreed at creation, if any.
	// Nothing fires automatically when it passes, it only feeds reporting.
	ReleaseDue *time.Time
	ReleasedAt *time.Time
	Dispute    *Dispute
	Version    int
	History    []StatusChange
}

// NewEscrowTransaction returns a Pending transaction at version 1 for the
// given order. The amount must be positive.
func NewEscrowTransaction(
	orderID, buyerID, sellerID string, amount Money, releaseDue *time.Time,
) (*EscrowTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	return &EscrowTransaction{
		ID:         uuid.New().String(),
		OrderID:    orderID,
		BuyerID:    buyerID,
		SellerID:   sellerID,
		Amount:     amount,
		Status:     EscrowStatusPending,
		CreatedAt:  time.Now(),
		ReleaseDue: releaseDue,
		Version:    1,
	}, nil
}

// Release brings the transaction from Pending to Released. A disputed or
// terminal transaction rejects with ErrInvalidTransition and is untouched.
func (t *EscrowTransaction) Release(actor string) error {
	if t.Status != EscrowStatusPending {
		return ErrInvalidTransition
	}

	now := time.Now()
	t.applyTransition(EscrowStatusReleased, actor, now)
	t.ReleasedAt = &now
	return nil
}

// OpenDispute brings the transaction from Pending to Disputed and records
// the dispute with the given reason.
func (t *EscrowTransaction) OpenDispute(reason, actor string) error {
	if t.Status != EscrowStatusPending {
		return ErrInvalidTransition
	}
	if reason == "" {
		return ErrEmptyDisputeReason
	}

	now := time.Now()
	t.Dispute = &Dispute{
		Reason:           reason,
		OpenedAt:         now,
		ResolutionStatus: ResolutionUnresolved,
	}
	t.applyTransition(EscrowStatusDisputed, actor, now)
	return nil
}

// SubmitEvidence appends an evidence item to the open dispute. It is a
// Disputed to Disputed transition and bumps the version like any other.
func (t *EscrowTransaction) SubmitEvidence(item EvidenceItem) error {
	if t.Status != EscrowStatusDisputed {
		return ErrInvalidTransition
	}

	t.Dispute.Evidence = append(t.Dispute.Evidence, item)
	t.applyTransition(EscrowStatusDisputed, item.SubmittedBy, time.Now())
	return nil
}

// Resolve applies the arbiter decision on a Disputed transaction, bringing
// it to Released or Refunded and sealing the dispute resolution fields.
func (t *EscrowTransaction) Resolve(outcome EscrowStatus, actor string) error {
	if t.Status != EscrowStatusDisputed {
		return ErrInvalidTransition
	}
	if outcome != EscrowStatusReleased && outcome != EscrowStatusRefunded {
		return ErrInvalidResolution
	}

	now := time.Now()
	if outcome == EscrowStatusReleased {
		t.Dispute.ResolutionStatus = ResolutionReleased
		t.ReleasedAt = &now
	} else {
		t.Dispute.ResolutionStatus = ResolutionRefunded
	}
	t.Dispute.ResolvedAt = &now
	t.applyTransition(outcome, actor, now)
	return nil
}

// IsPending returns whether the transaction is in Pending status.
func (t *EscrowTransaction) IsPending() bool {
	return t.Status == EscrowStatusPending
}

// IsDisputed returns whether the transaction is in Disputed status.
func (t *EscrowTransaction) IsDisputed() bool {
	return t.Status == EscrowStatusDisputed
}

// IsReleased returns whether the transaction reached Released.
func (t *EscrowTransaction) IsReleased() bool {
	return t.Status == EscrowStatusReleased
}

// IsRefunded returns whether the transaction reached Refunded.
func (t *EscrowTransaction) IsRefunded() bool {
	return t.Status == EscrowStatusRefunded
}

// IsOverdue returns whether the transaction is still Pending past its
// expected release date.
func (t *EscrowTransaction) IsOverdue(now time.Time) bool {
	return t.IsPending() && t.ReleaseDue != nil && now.After(*t.ReleaseDue)
}

// Clone returns a deep copy of the transaction, detached from the dispute
// and history backing storage of the receiver.
func (t *EscrowTransaction) Clone() *EscrowTransaction {
	clone := *t
	if t.ReleaseDue != nil {
		due := *t.ReleaseDue
		clone.ReleaseDue = &due
	}
	if t.ReleasedAt != nil {
		released := *t.ReleasedAt
		clone.ReleasedAt = &released
	}
	if t.Dispute != nil {
		dispute := *t.Dispute
		dispute.Evidence = make([]EvidenceItem, len(t.Dispute.Evidence))
		copy(dispute.Evidence, t.Dispute.Evidence)
		if t.Dispute.ResolvedAt != nil {
			resolved := *t.Dispute.ResolvedAt
			dispute.ResolvedAt = &resolved
		}
		clone.Dispute = &dispute
	}
	clone.History = make([]StatusChange, len(t.History))
	copy(clone.History, t.History)
	return &clone
}

// Timeline returns a copy of the append-only status-transition log.
func (t *EscrowTransaction) Timeline() []StatusChange {
	history := make([]StatusChange, len(t.History))
	copy(history, t.History)
	return history
}

func (t *EscrowTransaction) applyTransition(
	to EscrowStatus, actor string, at time.Time,
) {
	t.History = append(t.History, StatusChange{
		FromStatus: t.Status,
		ToStatus:   to,
		Timestamp:  at,
		Actor:      actor,
	})
	t.Status = to
	t.Version++
}
