package reservation

import "errors"

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrRaceLostUpdate    = errors.New("reservation was updated concurrently")
)
