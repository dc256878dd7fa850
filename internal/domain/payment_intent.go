package domain

import "time"

type PaymentIntentStatus string

const (
	IntentCreated  PaymentIntentStatus = "created"
	IntentApproved PaymentIntentStatus = "approved"
	IntentRejected PaymentIntentStatus = "rejected"
)

// PaymentIntent links a gateway order id to a reservation on the server so
// the async result callback and the browser return page resolve the same
// reservation no matter which one arrives first.
type PaymentIntent struct {
	ID            int64               `gorm:"primaryKey" json:"id"`
	OrderID       int64               `gorm:"uniqueIndex;not null" json:"order_id"`
	ReservationID int64               `gorm:"index;not null" json:"reservation_id"`
	Amount        float64             `json:"amount"`
	Status        PaymentIntentStatus `gorm:"default:'created';index" json:"status"`
	RawBody       string              `gorm:"type:text" json:"raw_body,omitempty"`
	ApprovedAt    *time.Time          `json:"approved_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (PaymentIntent) TableName() string { return "payment_intents" }
