package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

type escrowRepositoryImpl struct {
	store *badgerhold.Store
}

func newEscrowRepositoryImpl(store *badgerhold.Store) domain.EscrowRepository {
	return escrowRepositoryImpl{store}
}

func (r escrowRepositoryImpl) AddTransaction(
	_ context.Context, tx *domain.EscrowTransaction,
) error {
	return r.store.Insert(tx.ID, *tx)
}

func (r escrowRepositoryImpl) GetTransaction(
	_ context.Context, id string,
) (*domain.EscrowTransaction, error) {
	var tx domain.EscrowTransaction
	if err := r.store.Get(id, &tx); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r escrowRepositoryImpl) GetAllTransactions(
	_ context.Context,
) ([]*domain.EscrowTransaction, error) {
	return r.findTransactions(nil)
}

func (r escrowRepositoryImpl) GetTransactionsForStatus(
	_ context.Context, status domain.EscrowStatus,
) ([]*domain.EscrowTransaction, error) {
	query := badgerhold.Where("Status").Eq(status)
	return r.findTransactions(query)
}

func (r escrowRepositoryImpl) GetTransactionForOrder(
	_ context.Context, orderID string,
) (*domain.EscrowTransaction, error) {
	query := badgerhold.Where("OrderID").Eq(orderID)
	transactions, err := r.findTransactions(query)
	if err != nil {
		return nil, err
	}
	if len(transactions) <= 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return transactions[0], nil
}

// UpdateTransaction runs the read, version check and write in a single
// badger transaction so concurrent transitions serialize on the store.
func (r escrowRepositoryImpl) UpdateTransaction(
	_ context.Context, id string, expectedVersion int,
	updateFn func(tx *domain.EscrowTransaction) (*domain.EscrowTransaction, error),
) (*domain.EscrowTransaction, error) {
	var updated *domain.EscrowTransaction
	err := r.store.Badger().Update(func(btx *badger.Txn) error {
		var current domain.EscrowTransaction
		if err := r.store.TxGet(btx, id, &current); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrTransactionNotFound
			}
			return err
		}
		if current.Version != expectedVersion {
			return domain.ErrStaleVersion
		}

		tx, err := updateFn(&current)
		if err != nil {
			return err
		}

		if err := r.store.TxUpdate(btx, id, *tx); err != nil {
			return err
		}
		updated = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r escrowRepositoryImpl) findTransactions(
	query *badgerhold.Query,
) ([]*domain.EscrowTransaction, error) {
	var records []domain.EscrowTransaction
	if err := r.store.Find(&records, query); err != nil {
		return nil, err
	}

	transactions := make([]*domain.EscrowTransaction, 0, len(records))
	for i := range records {
		transactions = append(transactions, &records[i])
	}
	return transactions, nil
}
