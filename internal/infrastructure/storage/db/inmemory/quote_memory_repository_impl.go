package inmemory

import (
	"context"
	"sync"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

type quoteInmemoryStore struct {
	quotes map[string]domain.Quote
	locker *sync.Mutex
}

type quoteRepositoryImpl struct {
	store *quoteInmemoryStore
}

func newQuoteRepositoryImpl(store *quoteInmemoryStore) domain.QuoteRepository {
	return &quoteRepositoryImpl{store}
}

func (r quoteRepositoryImpl) AddQuote(
	_ context.Context, quote *domain.Quote,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.quotes[quote.ID] = *quote
	return nil
}

func (r quoteRepositoryImpl) GetQuote(
	_ context.Context, id string,
) (*domain.Quote, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	quote, ok := r.store.quotes[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	return &quote, nil
}

func (r quoteRepositoryImpl) GetQuotesForOrder(
	_ context.Context, orderID string,
) ([]*domain.Quote, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	quotes := make([]*domain.Quote, 0)
	for id := range r.store.quotes {
		quote := r.store.quotes[id]
		if quote.OrderID == orderID {
			quotes = append(quotes, &quote)
		}
	}
	return quotes, nil
}
