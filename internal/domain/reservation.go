package domain

import "time"

type ReservationStatus string

const (
	StatusPendingQuote    ReservationStatus = "pending_quote"
	StatusScheduledQuoted ReservationStatus = "scheduled_quoted"
	StatusPaid            ReservationStatus = "paid"
	StatusAssigned        ReservationStatus = "assigned"
	StatusCompleted       ReservationStatus = "completed"
	StatusCancelled       ReservationStatus = "cancelled"
)

// legalTransitions lists the target statuses reachable from each status.
// cancelled is reachable from every non-terminal status except completed.
var legalTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPendingQuote:    {StatusScheduledQuoted, StatusCancelled},
	StatusScheduledQuoted: {StatusPaid, StatusCancelled},
	StatusPaid:            {StatusAssigned, StatusCancelled},
	StatusAssigned:        {StatusCompleted, StatusCancelled},
	StatusCompleted:       {},
	StatusCancelled:       {},
}

// ParseReservationStatus validates a wire-level status string.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch st := ReservationStatus(s); st {
	case StatusPendingQuote, StatusScheduledQuoted, StatusPaid, StatusAssigned, StatusCompleted, StatusCancelled:
		return st, true
	}
	return "", false
}

// CanTransitionTo reports whether moving from s to target is legal.
// A no-op write (target == s) is always accepted; it just fires nothing.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	if s == target {
		return true
	}
	for _, t := range legalTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s ReservationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Reservation is one service request, regardless of service type.
// Type-specific fields (pickup point, flight number, dive site, ...) live in
// the Details payload so a single state machine serves every service table.
type Reservation struct {
	ID              int64             `gorm:"primaryKey" json:"id"`
	Code            string            `gorm:"uniqueIndex;not null" json:"code"`
	ServiceType     string            `gorm:"index;not null" json:"service_type"`
	HotelID         *int64            `gorm:"index" json:"hotel_id,omitempty"`
	VehicleID       int64             `json:"vehicle_id"`
	Passengers      int               `json:"passengers"`
	ScheduledAt     time.Time         `gorm:"index" json:"scheduled_at"`
	VehiclePrice    float64           `json:"vehicle_price"`
	AddOnTotal      float64           `json:"addon_total"`
	TotalPrice      float64           `json:"total_price"`
	Commission      float64           `json:"commission"`
	FinalPrice      float64           `json:"final_price"`
	Status          ReservationStatus `gorm:"index;not null" json:"status"`
	ContactName     string            `json:"contact_name"`
	ContactEmail    string            `json:"contact_email"`
	ContactPhone    string            `json:"contact_phone"`
	DriverName      string            `json:"driver_name,omitempty"`
	VehiclePlate    string            `json:"vehicle_plate,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	Details         map[string]any    `gorm:"serializer:json" json:"details,omitempty"`
	CancellationFee float64           `json:"cancellation_fee,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	CancelledAt     *time.Time        `json:"cancelled_at,omitempty"`
}

func (Reservation) TableName() string { return "reservations" }
