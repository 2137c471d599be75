package ports

import (
	"context"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

// PaymentGateway is the external service actually moving funds. The core
// invokes it as an opaque operation, exactly once per terminal transition:
// the idempotency key makes a retried call safe on the gateway side.
type PaymentGateway interface {
	Settle(
		ctx context.Context,
		transactionID, idempotencyKey string,
		target domain.EscrowStatus,
	) error
}
