package payment

import (
	"context"
	"time"

	"tourbook/internal/domain"
)

// IntentRepository persists the order-id to reservation mapping.
type IntentRepository interface {
	Create(ctx context.Context, p *domain.PaymentIntent) error
	GetByOrderID(ctx context.Context, orderID int64) (*domain.PaymentIntent, error)
	MarkApproved(ctx context.Context, orderID int64, rawBody string, at time.Time) (bool, error)
	MarkRejected(ctx context.Context, orderID int64, rawBody string) error
}

// ReservationReader loads the reservation being paid for.
type ReservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByCode(ctx context.Context, code string) (*domain.Reservation, error)
}

// PaidTransitioner applies the idempotent paid transition. changed is false
// when another completion path already flipped the status.
type PaidTransitioner interface {
	MarkPaid(ctx context.Context, reservationID int64) (*domain.Reservation, bool, error)
}

// CallbackVerifier authenticates gateway callbacks. Signature generation is
// the gateway integration's concern and lives outside this service.
type CallbackVerifier interface {
	Verify(req CallbackRequest) bool
}
