package booking

import (
	"context"

	"tourbook/internal/domain"
	"tourbook/internal/modules/pricing"
)

// ReservationRepository persists and reads reservations.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByCode(ctx context.Context, code string) (*domain.Reservation, error)
}

// CatalogReader resolves the catalog references on a booking request.
type CatalogReader interface {
	GetServiceByCode(ctx context.Context, code string) (*domain.Service, error)
	GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// HotelReader validates the optional hotel reference.
type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

// CapabilityRegistry dispatches pricing by service type.
type CapabilityRegistry interface {
	Lookup(serviceType string) (pricing.Capability, bool)
}

// NotificationSender pushes the operations feed; failures are swallowed.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, r *domain.Reservation) error
}
