package catalog

import (
	"context"

	"tourbook/internal/domain"
)

type ServiceLister interface {
	ListActiveServices(ctx context.Context) ([]domain.Service, error)
}

type VehicleLister interface {
	ListActiveVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

type HotelLister interface {
	ListActive(ctx context.Context) ([]domain.Hotel, error)
}
