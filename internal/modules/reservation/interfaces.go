package reservation

import (
	"context"
	"time"

	"tourbook/internal/domain"
)

// ReservationRepository is the storage contract for status transitions.
// All status writes are compare-and-swap on the expected previous status.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus, limit, offset int) ([]domain.Reservation, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	UpdateStatusCAS(ctx context.Context, id int64, expected, next domain.ReservationStatus) (bool, error)
	CancelCAS(ctx context.Context, id int64, expected domain.ReservationStatus, fee float64, notes string, at time.Time) (bool, error)
}

// HotelReader loads the hotel for the cancellation fee lookup.
type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

// NotificationSender pushes transition notifications; failures never
// propagate to the caller.
type NotificationSender interface {
	NotifyQuoteAdded(ctx context.Context, r *domain.Reservation) error
	NotifyStatusChanged(ctx context.Context, r *domain.Reservation, previous domain.ReservationStatus) error
}
