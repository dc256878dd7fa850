package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrServiceNotFound = errors.New("service not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrNotFound        = errors.New("reservation not found")
)
