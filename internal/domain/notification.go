package domain

import "time"

type NotificationType string

const (
	NotifBookingCreated NotificationType = "booking_created"
	NotifQuoteAdded     NotificationType = "quote_added"
	NotifStatusChanged  NotificationType = "status_changed"
)

type Notification struct {
	ID            int64            `gorm:"primaryKey" json:"id"`
	ReservationID int64            `gorm:"index" json:"reservation_id"`
	Type          NotificationType `gorm:"index" json:"type"`
	Title         string           `json:"title"`
	Message       string           `gorm:"type:text" json:"message,omitempty"`
	IsRead        bool             `gorm:"default:false;index" json:"is_read"`
	Data          any              `json:"data,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
