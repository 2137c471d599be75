package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
)

const (
	// EventRelease moves a Pending transaction to Released.
	EventRelease EventType = iota
	// EventDispute moves a Pending transaction to Disputed.
	EventDispute
	// EventSubmitEvidence appends evidence to an open dispute.
	EventSubmitEvidence
	// EventResolve applies the arbiter decision on a Disputed transaction.
	EventResolve
)

// EventType enumerates the transition events of the escrow state machine.
type EventType int

// TransitionEvent is one event submitted against an escrow transaction
// together with the version the caller last observed.
type TransitionEvent struct {
	Type  EventType
	Actor string
	// Reason is required for EventDispute.
	Reason string
	// Evidence is required for EventSubmitEvidence.
	Evidence *domain.EvidenceItem
	// Outcome is required for EventResolve, either Released or Refunded.
	Outcome domain.EscrowStatus
}

// CreateEscrowArgs carries the inputs for creating an escrow transaction.
type CreateEscrowArgs struct {
	OrderID    string
	BuyerID    string
	SellerID   string
	BuyerName  string
	SellerName string
	Amount     domain.Money
	ReleaseDue *time.Time
}

// SettlementService drives escrow transactions from creation to a terminal
// status. Transitions follow the optimistic-concurrency discipline: callers
// read (status, version), decide, and submit the expected version, losing
// racers get ErrStaleVersion and must re-read.
type SettlementService interface {
	CreateEscrow(
		ctx context.Context, args CreateEscrowArgs,
	) (*domain.EscrowTransaction, error)
	Transition(
		ctx context.Context, transactionID string, expectedVersion int,
		event TransitionEvent,
	) (*domain.EscrowTransaction, error)
	// TransitionWithRetry re-reads and re-decides on ErrStaleVersion, up to
	// maxAttempts times. The decide callback may return a nil event to stop
	// without transitioning.
	TransitionWithRetry(
		ctx context.Context, transactionID string, maxAttempts int,
		decide func(current *domain.EscrowTransaction) (*TransitionEvent, error),
	) (*domain.EscrowTransaction, error)
	GetTransaction(
		ctx context.Context, transactionID string,
	) (*domain.EscrowTransaction, error)
	ListTransactions(ctx context.Context) ([]*domain.EscrowTransaction, error)
}

type settlementService struct {
	repoManager ports.RepoManager
	gateway     ports.PaymentGateway
}

// NewSettlementService returns a SettlementService persisting through the
// given repo manager and settling funds through the given gateway.
func NewSettlementService(
	repoManager ports.RepoManager, gateway ports.PaymentGateway,
) SettlementService {
	return &settlementService{repoManager: repoManager, gateway: gateway}
}

func (s *settlementService) CreateEscrow(
	ctx context.Context, args CreateEscrowArgs,
) (*domain.EscrowTransaction, error) {
	tx, err := domain.NewEscrowTransaction(
		args.OrderID, args.BuyerID, args.SellerID, args.Amount, args.ReleaseDue,
	)
	if err != nil {
		return nil, err
	}
	tx.BuyerName = args.BuyerName
	tx.SellerName = args.SellerName

	if err := s.repoManager.EscrowRepository().AddTransaction(ctx, tx); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"id":     tx.ID,
		"order":  tx.OrderID,
		"amount": tx.Amount.String(),
	}).Info("escrow transaction created")
	return tx, nil
}

func (s *settlementService) Transition(
	ctx context.Context, transactionID string, expectedVersion int,
	event TransitionEvent,
) (*domain.EscrowTransaction, error) {
	repo := s.repoManager.EscrowRepository()

	// The whole transition runs inside the store-level update: the version
	// check, the guards and the gateway settle all happen under the store's
	// serialization, so the gateway is only ever instructed on behalf of the
	// transition that actually commits. A losing racer fails the version
	// check before any external call is made.
	updated, err := repo.UpdateTransaction(
		ctx, transactionID, expectedVersion,
		func(tx *domain.EscrowTransaction) (*domain.EscrowTransaction, error) {
			if err := applyEvent(tx, event); err != nil {
				return nil, err
			}

			// Terminal transitions move funds: the gateway must confirm
			// before the stored status advances, so a failed settle aborts
			// the update, leaves the transaction in its pre-transition state
			// and the same idempotency key can be retried.
			if tx.Status.IsTerminal() {
				idempotencyKey := SettleIdempotencyKey(transactionID, tx.Status)
				if err := s.gateway.Settle(
					ctx, transactionID, idempotencyKey, tx.Status,
				); err != nil {
					return nil, fmt.Errorf("%w: %s", ErrGatewayFailure, err)
				}
			}
			return tx, nil
		},
	)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"id":      updated.ID,
		"status":  updated.Status.String(),
		"version": updated.Version,
	}).Info("escrow transaction transitioned")
	return updated, nil
}

func (s *settlementService) TransitionWithRetry(
	ctx context.Context, transactionID string, maxAttempts int,
	decide func(current *domain.EscrowTransaction) (*TransitionEvent, error),
) (*domain.EscrowTransaction, error) {
	repo := s.repoManager.EscrowRepository()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		current, err := repo.GetTransaction(ctx, transactionID)
		if err != nil {
			return nil, err
		}

		event, err := decide(current)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return current, nil
		}

		updated, err := s.Transition(ctx, transactionID, current.Version, *event)
		if errors.Is(err, domain.ErrStaleVersion) {
			continue
		}
		return updated, err
	}
	return nil, ErrTooManyConflicts
}

func (s *settlementService) GetTransaction(
	ctx context.Context, transactionID string,
) (*domain.EscrowTransaction, error) {
	return s.repoManager.EscrowRepository().GetTransaction(ctx, transactionID)
}

func (s *settlementService) ListTransactions(
	ctx context.Context,
) ([]*domain.EscrowTransaction, error) {
	return s.repoManager.EscrowRepository().GetAllTransactions(ctx)
}

// SettleIdempotencyKey derives the idempotency key of a terminal transition,
// stable across retries of the same transition.
func SettleIdempotencyKey(
	transactionID string, target domain.EscrowStatus,
) string {
	return fmt.Sprintf("%s:%s", transactionID, target)
}

func applyEvent(tx *domain.EscrowTransaction, event TransitionEvent) error {
	switch event.Type {
	case EventRelease:
		return tx.Release(event.Actor)
	case EventDispute:
		return tx.OpenDispute(event.Reason, event.Actor)
	case EventSubmitEvidence:
		if event.Evidence == nil {
			return ErrInvalidEvent
		}
		return tx.SubmitEvidence(*event.Evidence)
	case EventResolve:
		return tx.Resolve(event.Outcome, event.Actor)
	default:
		return ErrInvalidEvent
	}
}
