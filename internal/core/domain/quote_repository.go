package domain

import "context"

// QuoteRepository persists quotes once their checkout attempt is confirmed,
// so the locked rate and totals survive the session.
type QuoteRepository interface {
	// AddQuote persists a locked quote.
	AddQuote(ctx context.Context, quote *Quote) error
	// GetQuote returns the quote with the given id, or ErrQuoteNotFound.
	GetQuote(ctx context.Context, id string) (*Quote, error)
	// GetQuotesForOrder returns every quote created for the given order,
	// superseded ones included.
	GetQuotesForOrder(ctx context.Context, orderID string) ([]*Quote, error)
}
