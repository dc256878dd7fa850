package pricing

import "errors"

var (
	ErrPriceNotFound      = errors.New("no matching price tier")
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrAlreadyRegistered  = errors.New("service type already registered")
)
