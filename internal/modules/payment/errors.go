package payment

import "errors"

var (
	ErrIntentNotFound      = errors.New("payment intent not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrNotPayable          = errors.New("reservation is not payable")
)
