package domain

import "context"

// EscrowRepository is the abstraction for any kind of database intended to
// persist escrow transactions along with their full status history.
type EscrowRepository interface {
	// AddTransaction persists a freshly created transaction.
	AddTransaction(ctx context.Context, tx *EscrowTransaction) error
	// GetTransaction returns the transaction with the given id, or
	// ErrTransactionNotFound.
	GetTransaction(ctx context.Context, id string) (*EscrowTransaction, error)
	// GetAllTransactions returns all the transactions stored in the
	// repository.
	GetAllTransactions(ctx context.Context) ([]*EscrowTransaction, error)
	// GetTransactionsForStatus returns all the transactions currently in the
	// given status.
	GetTransactionsForStatus(
		ctx context.Context, status EscrowStatus,
	) ([]*EscrowTransaction, error)
	// GetTransactionForOrder returns the transaction created for the given
	// order id, or ErrTransactionNotFound.
	GetTransactionForOrder(
		ctx context.Context, orderID string,
	) (*EscrowTransaction, error)
	// UpdateTransaction applies updateFn to the stored transaction in a
	// transactional way, but only if its version still matches
	// expectedVersion. A concurrent transition surfaces as ErrStaleVersion
	// and leaves the stored transaction untouched.
	UpdateTransaction(
		ctx context.Context, id string, expectedVersion int,
		updateFn func(tx *EscrowTransaction) (*EscrowTransaction, error),
	) (*EscrowTransaction, error)
}
