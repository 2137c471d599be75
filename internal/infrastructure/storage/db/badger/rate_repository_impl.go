package dbbadger

import (
	"context"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

type rateRepositoryImpl struct {
	store *badgerhold.Store
}

func newRateRepositoryImpl(store *badgerhold.Store) domain.RateRepository {
	return rateRepositoryImpl{store}
}

func (r rateRepositoryImpl) AddSnapshot(
	_ context.Context, snapshot *domain.ExchangeRateSnapshot,
) error {
	return r.store.Insert(badgerhold.NextSequence(), *snapshot)
}

func (r rateRepositoryImpl) GetLatestSnapshot(
	_ context.Context,
) (*domain.ExchangeRateSnapshot, error) {
	snapshots, err := r.findSnapshots(
		(&badgerhold.Query{}).SortBy("CapturedAt").Reverse().Limit(1),
	)
	if err != nil {
		return nil, err
	}
	if len(snapshots) <= 0 {
		return nil, domain.ErrSnapshotNotFound
	}
	return snapshots[0], nil
}

func (r rateRepositoryImpl) GetSnapshotAt(
	_ context.Context, at time.Time,
) (*domain.ExchangeRateSnapshot, error) {
	query := badgerhold.Where("CapturedAt").Le(at).
		SortBy("CapturedAt").Reverse().Limit(1)
	snapshots, err := r.findSnapshots(query)
	if err != nil {
		return nil, err
	}
	if len(snapshots) <= 0 {
		return nil, domain.ErrSnapshotNotFound
	}
	return snapshots[0], nil
}

func (r rateRepositoryImpl) ListSnapshots(
	_ context.Context, limit int,
) ([]*domain.ExchangeRateSnapshot, error) {
	return r.findSnapshots(
		(&badgerhold.Query{}).SortBy("CapturedAt").Reverse().Limit(limit),
	)
}

func (r rateRepositoryImpl) findSnapshots(
	query *badgerhold.Query,
) ([]*domain.ExchangeRateSnapshot, error) {
	var records []domain.ExchangeRateSnapshot
	if err := r.store.Find(&records, query); err != nil {
		return nil, err
	}

	snapshots := make([]*domain.ExchangeRateSnapshot, 0, len(records))
	for i := range records {
		snapshots = append(snapshots, &records[i])
	}
	return snapshots, nil
}
