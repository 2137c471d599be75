package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

type quoteRepositoryImpl struct {
	store *badgerhold.Store
}

func newQuoteRepositoryImpl(store *badgerhold.Store) domain.QuoteRepository {
	return quoteRepositoryImpl{store}
}

func (r quoteRepositoryImpl) AddQuote(
	_ context.Context, quote *domain.Quote,
) error {
	return r.store.Insert(quote.ID, *quote)
}

func (r quoteRepositoryImpl) GetQuote(
	_ context.Context, id string,
) (*domain.Quote, error) {
	var quote domain.Quote
	if err := r.store.Get(id, &quote); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (r quoteRepositoryImpl) GetQuotesForOrder(
	_ context.Context, orderID string,
) ([]*domain.Quote, error) {
	var records []domain.Quote
	query := badgerhold.Where("OrderID").Eq(orderID)
	if err := r.store.Find(&records, query); err != nil {
		return nil, err
	}

	quotes := make([]*domain.Quote, 0, len(records))
	for i := range records {
		quotes = append(quotes, &records[i])
	}
	return quotes, nil
}
