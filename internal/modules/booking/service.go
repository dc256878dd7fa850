package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourbook/internal/domain"
	"tourbook/internal/modules/pricing"

	"gorm.io/gorm"
)

type Service struct {
	reservations ReservationRepository
	catalog      CatalogReader
	hotels       HotelReader
	registry     CapabilityRegistry
	notifs       NotificationSender
}

func NewService(
	reservations ReservationRepository,
	catalog CatalogReader,
	hotels HotelReader,
	registry CapabilityRegistry,
	notifs NotificationSender,
) *Service {
	return &Service{
		reservations: reservations,
		catalog:      catalog,
		hotels:       hotels,
		registry:     registry,
		notifs:       notifs,
	}
}

// CreateReservation quotes and persists a booking request. An unpriceable
// request is not an error: it comes back as pending_quote for staff to
// price manually.
func (s *Service) CreateReservation(ctx context.Context, req CreateBookingRequest) (*domain.Reservation, error) {
	if req.Passengers < 1 {
		return nil, ErrValidation
	}

	now := time.Now().UTC()
	if !req.ScheduledAt.After(now) {
		return nil, ErrValidation
	}

	if _, err := s.catalog.GetServiceByCode(ctx, req.ServiceType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	capability, ok := s.registry.Lookup(req.ServiceType)
	if !ok {
		return nil, ErrServiceNotFound
	}

	if _, err := s.catalog.GetVehicleByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if req.HotelID != nil {
		if _, err := s.hotels.GetByID(ctx, *req.HotelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHotelNotFound
			}
			return nil, err
		}
	}

	quote, err := capability.Composer.ComposeQuote(ctx, pricing.QuoteRequest{
		ServiceType: req.ServiceType,
		VehicleID:   req.VehicleID,
		Passengers:  req.Passengers,
		AddOns:      req.AddOns,
		HotelID:     req.HotelID,
		AsOf:        now,
	})
	if err != nil {
		return nil, err
	}

	status := domain.StatusPendingQuote
	if quote.Resolved && quote.Final > 0 {
		status = domain.StatusScheduledQuoted
	}

	r := &domain.Reservation{
		Code:         newReservationCode(now),
		ServiceType:  req.ServiceType,
		HotelID:      req.HotelID,
		VehicleID:    req.VehicleID,
		Passengers:   req.Passengers,
		ScheduledAt:  req.ScheduledAt,
		VehiclePrice: quote.VehiclePrice,
		AddOnTotal:   quote.AddOnTotal,
		TotalPrice:   quote.Total,
		Commission:   quote.Commission,
		FinalPrice:   quote.Final,
		Status:       status,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
		Details:      req.Details,
	}

	if err := s.reservations.Create(ctx, r); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, r)
	}

	return r, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	r, err := s.reservations.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func newReservationCode(now time.Time) string {
	return fmt.Sprintf("TB-%d", now.UnixNano())
}
