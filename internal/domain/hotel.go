package domain

import "time"

// Hotel is a partner that resells services for a commission.
// CommissionPercent is the fallback rate; CancellationFee is the amount
// charged by the late-cancellation policy when configured.
type Hotel struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	Name              string    `json:"name"`
	CommissionPercent float64   `json:"commission_percent"`
	CancellationFee   float64   `json:"cancellation_fee"`
	Active            bool      `gorm:"default:true;index" json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Hotel) TableName() string { return "hotels" }

// HotelCommissionOverride pins a fixed commission amount for one exact
// (hotel, service, vehicle) combination, superseding the hotel percentage.
// A zero Amount is a valid override and still wins over the percentage.
type HotelCommissionOverride struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	HotelID     int64     `gorm:"uniqueIndex:idx_override_identity;not null" json:"hotel_id"`
	ServiceType string    `gorm:"uniqueIndex:idx_override_identity;not null" json:"service_type"`
	VehicleID   int64     `gorm:"uniqueIndex:idx_override_identity;not null" json:"vehicle_id"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (HotelCommissionOverride) TableName() string { return "hotel_commission_overrides" }
