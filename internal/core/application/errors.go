package application

import "errors"

var (
	// ErrUpstreamUnavailable wraps failures of external collaborators like
	// the rate provider, kept distinct from business rejections.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	// ErrGatewayFailure is returned when the payment gateway rejects or
	// fails a settle call. The transaction is left in its pre-transition
	// status so the same idempotency key can be retried.
	ErrGatewayFailure = errors.New("payment gateway call failed")
	// ErrTooManyConflicts is returned when an optimistic retry loop keeps
	// losing against concurrent transitions and gives up.
	ErrTooManyConflicts = errors.New(
		"too many concurrent conflicts, giving up",
	)
	// ErrInvalidDiscountFunding ...
	ErrInvalidDiscountFunding = errors.New(
		"discount funding must be one of buyer, seller, platform",
	)
	// ErrInvalidEvent ...
	ErrInvalidEvent = errors.New("unknown transition event")
)
