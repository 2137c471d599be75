package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

type rateInmemoryStore struct {
	// snapshots is kept in capture order, oldest first.
	snapshots []domain.ExchangeRateSnapshot
	locker    *sync.Mutex
}

type rateRepositoryImpl struct {
	store *rateInmemoryStore
}

func newRateRepositoryImpl(store *rateInmemoryStore) domain.RateRepository {
	return &rateRepositoryImpl{store}
}

func (r rateRepositoryImpl) AddSnapshot(
	_ context.Context, snapshot *domain.ExchangeRateSnapshot,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.snapshots = append(r.store.snapshots, *snapshot)
	return nil
}

func (r rateRepositoryImpl) GetLatestSnapshot(
	_ context.Context,
) (*domain.ExchangeRateSnapshot, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if len(r.store.snapshots) <= 0 {
		return nil, domain.ErrSnapshotNotFound
	}
	latest := r.store.snapshots[len(r.store.snapshots)-1]
	return &latest, nil
}

func (r rateRepositoryImpl) GetSnapshotAt(
	_ context.Context, at time.Time,
) (*domain.ExchangeRateSnapshot, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	for i := len(r.store.snapshots) - 1; i >= 0; i-- {
		if !r.store.snapshots[i].CapturedAt.After(at) {
			snapshot := r.store.snapshots[i]
			return &snapshot, nil
		}
	}
	return nil, domain.ErrSnapshotNotFound
}

func (r rateRepositoryImpl) ListSnapshots(
	_ context.Context, limit int,
) ([]*domain.ExchangeRateSnapshot, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	snapshots := make([]*domain.ExchangeRateSnapshot, 0, limit)
	for i := len(r.store.snapshots) - 1; i >= 0 && len(snapshots) < limit; i-- {
		snapshot := r.store.snapshots[i]
		snapshots = append(snapshots, &snapshot)
	}
	return snapshots, nil
}
