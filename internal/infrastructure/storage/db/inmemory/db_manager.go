package inmemory

import (
	"sync"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
)

// RepoManager holds all the in-memory repositories in a single data
// structure. Used by tests and by daemons started with DB_TYPE=inmemory.
type RepoManager struct {
	escrowRepository domain.EscrowRepository
	quoteRepository  domain.QuoteRepository
	rateRepository   domain.RateRepository
}

// NewRepoManager returns a RepoManager backed by plain maps guarded by
// per-store mutexes.
func NewRepoManager() ports.RepoManager {
	escrowStore := &escrowInmemoryStore{
		transactions: make(map[string]domain.EscrowTransaction),
		byOrder:      make(map[string]string),
		locker:       &sync.Mutex{},
	}
	quoteStore := &quoteInmemoryStore{
		quotes: make(map[string]domain.Quote),
		locker: &sync.Mutex{},
	}
	rateStore := &rateInmemoryStore{
		locker: &sync.Mutex{},
	}

	return &RepoManager{
		escrowRepository: newEscrowRepositoryImpl(escrowStore),
		quoteRepository:  newQuoteRepositoryImpl(quoteStore),
		rateRepository:   newRateRepositoryImpl(rateStore),
	}
}

func (d *RepoManager) EscrowRepository() domain.EscrowRepository {
	return d.escrowRepository
}

func (d *RepoManager) QuoteRepository() domain.QuoteRepository {
	return d.quoteRepository
}

func (d *RepoManager) RateRepository() domain.RateRepository {
	return d.rateRepository
}

func (d *RepoManager) Close() error { return nil }
