package booking

import (
	"time"

	"tourbook/internal/domain"
)

type CreateBookingRequest struct {
	ServiceType  string                  `json:"service_type" binding:"required"`
	VehicleID    int64                   `json:"vehicle_id" binding:"required"`
	Passengers   int                     `json:"passengers" binding:"required"`
	ScheduledAt  time.Time               `json:"scheduled_at" binding:"required"`
	HotelID      *int64                  `json:"hotel_id"`
	AddOns       []domain.AddOnSelection `json:"add_ons"`
	ContactName  string                  `json:"contact_name" binding:"required"`
	ContactEmail string                  `json:"contact_email"`
	ContactPhone string                  `json:"contact_phone" binding:"required"`
	Notes        string                  `json:"notes"`
	Details      map[string]any          `json:"details"`
}
