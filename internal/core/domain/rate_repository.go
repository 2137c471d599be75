package domain

import (
	"context"
	"time"
)

// RateRepository is an append-only history of the snapshots fetched from the
// external rate provider.
type RateRepository interface {
	// AddSnapshot appends a snapshot to the history.
	AddSnapshot(ctx context.Context, snapshot *ExchangeRateSnapshot) error
	// GetLatestSnapshot returns the most recently captured snapshot, or
	// ErrSnapshotNotFound if the history is empty.
	GetLatestSnapshot(ctx context.Context) (*ExchangeRateSnapshot, error)
	// GetSnapshotAt returns the snapshot that was in effect at the given
	// time, ie. the latest one captured before it.
	GetSnapshotAt(ctx context.Context, at time.Time) (*ExchangeRateSnapshot, error)
	// ListSnapshots returns up to limit snapshots, most recent first.
	ListSnapshots(ctx context.Context, limit int) ([]*ExchangeRateSnapshot, error)
}
