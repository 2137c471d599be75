package ports

import "github.com/bazario/settlement-daemon/internal/core/domain"

// RepoManager holds all the repositories of a storage backend in a single
// data structure.
type RepoManager interface {
	EscrowRepository() domain.EscrowRepository
	QuoteRepository() domain.QuoteRepository
	RateRepository() domain.RateRepository
	Close() error
}
