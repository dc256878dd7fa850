package payment

type InitPaymentRequest struct {
	ReservationCode string `json:"reservation_code" binding:"required"`
}

type InitPaymentResponse struct {
	OrderID         int64   `json:"order_id"`
	ReservationCode string  `json:"reservation_code"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
}

// CallbackRequest is the gateway result notification. Approved mirrors the
// gateway's payment outcome; anything else leaves the reservation untouched.
type CallbackRequest struct {
	OrderID   int64  `json:"order_id" form:"order_id" binding:"required"`
	Approved  bool   `json:"approved" form:"approved"`
	Signature string `json:"signature" form:"signature"`
	RawBody   string `json:"-" form:"-"`
}
