package inmemory

import (
	"context"
	"sync"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

type escrowInmemoryStore struct {
	transactions map[string]domain.EscrowTransaction
	byOrder      map[string]string
	locker       *sync.Mutex
}

type escrowRepositoryImpl struct {
	store *escrowInmemoryStore
}

func newEscrowRepositoryImpl(store *escrowInmemoryStore) domain.EscrowRepository {
	return &escrowRepositoryImpl{store}
}

func (r escrowRepositoryImpl) AddTransaction(
	_ context.Context, tx *domain.EscrowTransaction,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.transactions[tx.ID] = *tx.Clone()
	r.store.byOrder[tx.OrderID] = tx.ID
	return nil
}

func (r escrowRepositoryImpl) GetTransaction(
	_ context.Context, id string,
) (*domain.EscrowTransaction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getTransaction(id)
}

func (r escrowRepositoryImpl) GetAllTransactions(
	_ context.Context,
) ([]*domain.EscrowTransaction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	transactions := make([]*domain.EscrowTransaction, 0, len(r.store.transactions))
	for id := range r.store.transactions {
		tx := r.store.transactions[id]
		transactions = append(transactions, tx.Clone())
	}
	return transactions, nil
}

func (r escrowRepositoryImpl) GetTransactionsForStatus(
	_ context.Context, status domain.EscrowStatus,
) ([]*domain.EscrowTransaction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	transactions := make([]*domain.EscrowTransaction, 0)
	for id := range r.store.transactions {
		tx := r.store.transactions[id]
		if tx.Status == status {
			transactions = append(transactions, tx.Clone())
		}
	}
	return transactions, nil
}

func (r escrowRepositoryImpl) GetTransactionForOrder(
	_ context.Context, orderID string,
) (*domain.EscrowTransaction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	id, ok := r.store.byOrder[orderID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return r.getTransaction(id)
}

func (r escrowRepositoryImpl) UpdateTransaction(
	_ context.Context, id string, expectedVersion int,
	updateFn func(tx *domain.EscrowTransaction) (*domain.EscrowTransaction, error),
) (*domain.EscrowTransaction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	current, err := r.getTransaction(id)
	if err != nil {
		return nil, err
	}
	if current.Version != expectedVersion {
		return nil, domain.ErrStaleVersion
	}

	updated, err := updateFn(current)
	if err != nil {
		return nil, err
	}

	r.store.transactions[id] = *updated.Clone()
	return updated, nil
}

func (r escrowRepositoryImpl) getTransaction(
	id string,
) (*domain.EscrowTransaction, error) {
	tx, ok := r.store.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return tx.Clone(), nil
}
