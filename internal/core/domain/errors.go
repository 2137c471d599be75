package domain

import "errors"

var (
	// ErrCurrencyMismatch is returned when combining two Money values tagged
	// with different currencies.
	ErrCurrencyMismatch = errors.New(
		"money operands must have the same currency",
	)
	// ErrInvalidRate is returned when a rate snapshot has no entry for one of
	// the currencies involved in a conversion.
	ErrInvalidRate = errors.New(
		"rate snapshot has no entry for the requested currency",
	)
	// ErrInvalidPercent is returned when a discount or tax percentage is
	// outside the [0, 100] range. Callers must clamp before calling.
	ErrInvalidPercent = errors.New("percent must be in range [0, 100]")
	// ErrNonPositiveAmount ...
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrAmountOverflow is returned when a monetary operation would not fit
	// the int64 minor units.
	ErrAmountOverflow = errors.New("amount overflows the minor units")
	// ErrInvalidTransition is returned whenever a transition guard is
	// violated. The stored transaction is left untouched.
	ErrInvalidTransition = errors.New(
		"transition is not allowed in the current status",
	)
	// ErrStaleVersion is returned when the expected version of a transaction
	// no longer matches the stored one because of a concurrent transition.
	ErrStaleVersion = errors.New(
		"transaction version does not match the expected one",
	)
	// ErrEmptyDisputeReason ...
	ErrEmptyDisputeReason = errors.New("dispute reason must not be empty")
	// ErrInvalidResolution is returned when resolving a dispute to anything
	// but Released or Refunded.
	ErrInvalidResolution = errors.New(
		"dispute can only be resolved to released or refunded",
	)
	// ErrQuoteAlreadyLocked is returned when attaching a rate snapshot to a
	// quote that already locked one.
	ErrQuoteAlreadyLocked = errors.New("quote has already locked a rate")
	// ErrTransactionNotFound ...
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrQuoteNotFound ...
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrSnapshotNotFound ...
	ErrSnapshotNotFound = errors.New("no rate snapshot found")
)
