package domain

import "time"

// PriceTier is one versioned price bracket for a (service, vehicle) pair.
// A tier applies to passenger counts in [PassengerMin, PassengerMax] and
// becomes effective at EffectiveFrom; newer tiers supersede older ones.
type PriceTier struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	ServiceType   string    `gorm:"index:idx_tier_service_vehicle;not null" json:"service_type"`
	VehicleID     int64     `gorm:"index:idx_tier_service_vehicle;uniqueIndex:idx_tier_identity;not null" json:"vehicle_id"`
	PassengerMin  int       `gorm:"uniqueIndex:idx_tier_identity" json:"passenger_min"`
	PassengerMax  int       `gorm:"uniqueIndex:idx_tier_identity" json:"passenger_max"`
	Price         float64   `json:"price"`
	EffectiveFrom time.Time `gorm:"uniqueIndex:idx_tier_identity" json:"effective_from"`
	Active        bool      `gorm:"default:true;index" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PriceTier) TableName() string { return "price_tiers" }

// Covers reports whether the tier's passenger range contains the count.
func (t PriceTier) Covers(passengers int) bool {
	return passengers >= t.PassengerMin && passengers <= t.PassengerMax
}

// AddOnPrice is a versioned price for a service add-on (guide, boat, lunch).
// It is keyed by add-on type plus a quantity range instead of passenger count.
// PerUnit add-ons are charged price x quantity; the rest are flat.
type AddOnPrice struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	ServiceType   string    `gorm:"index:idx_addon_service_type;not null" json:"service_type"`
	AddOnType     string    `gorm:"index:idx_addon_service_type;not null" json:"addon_type"`
	QuantityMin   int       `json:"quantity_min"`
	QuantityMax   int       `json:"quantity_max"`
	Price         float64   `json:"price"`
	PerUnit       bool      `json:"per_unit"`
	EffectiveFrom time.Time `json:"effective_from"`
	Active        bool      `gorm:"default:true;index" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (AddOnPrice) TableName() string { return "addon_prices" }

func (a AddOnPrice) Covers(quantity int) bool {
	return quantity >= a.QuantityMin && quantity <= a.QuantityMax
}

// AddOnSelection is one add-on requested on a booking.
type AddOnSelection struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// Quote is the price breakdown composed for a reservation.
// Final = Total + Commission; Resolved is false when no price tier matched
// and the reservation must stay in pending_quote.
type Quote struct {
	VehiclePrice float64 `json:"vehicle_price"`
	AddOnTotal   float64 `json:"addon_total"`
	Total        float64 `json:"total"`
	Commission   float64 `json:"commission"`
	Final        float64 `json:"final"`
	Resolved     bool    `json:"resolved"`
}
