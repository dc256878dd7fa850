package catalog

import (
	"context"

	"tourbook/internal/domain"
)

// Service serves the read-only lookups behind the public booking form.
type Service struct {
	services ServiceLister
	vehicles VehicleLister
	hotels   HotelLister
}

func NewService(services ServiceLister, vehicles VehicleLister, hotels HotelLister) *Service {
	return &Service{services: services, vehicles: vehicles, hotels: hotels}
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.ListActiveServices(ctx)
}

func (s *Service) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.hotels.ListActive(ctx)
}

// ListVehicles returns active vehicles; when passengers > 0 only vehicles
// whose capacity range covers the party are included.
func (s *Service) ListVehicles(ctx context.Context, passengers int) ([]VehicleOption, error) {
	vehicles, err := s.vehicles.ListActiveVehicles(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]VehicleOption, 0, len(vehicles))
	for _, v := range vehicles {
		if passengers > 0 && !v.Fits(passengers) {
			continue
		}
		options = append(options, VehicleOption{
			ID:          v.ID,
			Name:        v.Name,
			CapacityMin: v.CapacityMin,
			CapacityMax: v.CapacityMax,
		})
	}
	return options, nil
}
