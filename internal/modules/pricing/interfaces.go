package pricing

import (
	"context"
	"time"

	"tourbook/internal/domain"
)

// TierLister is the read contract against the price tier table.
type TierLister interface {
	ListActiveTiers(ctx context.Context, serviceType string, vehicleID int64) ([]domain.PriceTier, error)
}

// AddOnPriceLister reads the versioned add-on price rows for a service.
type AddOnPriceLister interface {
	ListActive(ctx context.Context, serviceType, addOnType string) ([]domain.AddOnPrice, error)
}

// HotelReader reads hotels and their commission overrides.
type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	GetOverride(ctx context.Context, hotelID int64, serviceType string, vehicleID int64) (*domain.HotelCommissionOverride, error)
}

// ServiceLister enumerates the bookable services for registry construction.
type ServiceLister interface {
	ListActiveServices(ctx context.Context) ([]domain.Service, error)
}

// PriceResolver resolves the vehicle price for a passenger count at a time.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, serviceType string, vehicleID int64, passengers int, asOf time.Time) (float64, error)
}

// QuoteComposer builds the full price breakdown for a booking request.
type QuoteComposer interface {
	ComposeQuote(ctx context.Context, req QuoteRequest) (domain.Quote, error)
}
