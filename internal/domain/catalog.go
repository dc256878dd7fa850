package domain

import "time"

// Service is a bookable product (airport transfer, island tour, ...).
// Code is the stable serviceType key the capability registry dispatches on;
// Config carries the per-service add-on price lists and custom form fields.
type Service struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"uniqueIndex;not null" json:"code"`
	Name        string         `json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Config      map[string]any `gorm:"serializer:json" json:"config,omitempty"`
	Active      bool           `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Service) TableName() string { return "services" }

type Vehicle struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	CapacityMin int       `json:"capacity_min"`
	CapacityMax int       `json:"capacity_max"`
	Active      bool      `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Vehicle) TableName() string { return "vehicles" }

// Fits reports whether the vehicle can carry the requested passenger count.
func (v Vehicle) Fits(passengers int) bool {
	return passengers >= v.CapacityMin && passengers <= v.CapacityMax
}
