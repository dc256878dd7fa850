package pricing

import (
	"context"
	"errors"
	"math"
	"time"

	"tourbook/internal/domain"
)

// Resolver picks the applicable price from the versioned tier table.
type Resolver struct {
	tiers  TierLister
	addOns AddOnPriceLister
}

func NewResolver(tiers TierLister, addOns AddOnPriceLister) *Resolver {
	return &Resolver{tiers: tiers, addOns: addOns}
}

// ResolvePrice returns the price of the most recently effective active tier
// whose passenger range contains the count. Tiers tying on effective-from
// (overlapping ranges) are broken deterministically: the lowest tier id wins.
func (r *Resolver) ResolvePrice(ctx context.Context, serviceType string, vehicleID int64, passengers int, asOf time.Time) (float64, error) {
	tiers, err := r.tiers.ListActiveTiers(ctx, serviceType, vehicleID)
	if err != nil {
		return 0, err
	}

	var best *domain.PriceTier
	for i := range tiers {
		t := tiers[i]
		if !t.Covers(passengers) || t.EffectiveFrom.After(asOf) {
			continue
		}
		// tiers arrive ordered by id, so a strict After keeps the lowest id
		// among equally recent tiers
		if best == nil || t.EffectiveFrom.After(best.EffectiveFrom) {
			best = &tiers[i]
		}
	}
	if best == nil {
		return 0, ErrPriceNotFound
	}
	return best.Price, nil
}

// ResolveAddOnAmount prices one requested add-on. Selection quantity picks
// the bracket; per-unit rows are multiplied by the quantity, flat rows are
// charged once. Versioning works exactly like ResolvePrice.
func (r *Resolver) ResolveAddOnAmount(ctx context.Context, serviceType string, sel domain.AddOnSelection, asOf time.Time) (float64, error) {
	rows, err := r.addOns.ListActive(ctx, serviceType, sel.Type)
	if err != nil {
		return 0, err
	}

	var best *domain.AddOnPrice
	for i := range rows {
		a := rows[i]
		if !a.Covers(sel.Quantity) || a.EffectiveFrom.After(asOf) {
			continue
		}
		if best == nil || a.EffectiveFrom.After(best.EffectiveFrom) {
			best = &rows[i]
		}
	}
	if best == nil {
		return 0, ErrPriceNotFound
	}
	if best.PerUnit {
		return best.Price * float64(sel.Quantity), nil
	}
	return best.Price, nil
}

// CommissionResolver computes the hotel commission added on top of the total.
type CommissionResolver struct {
	hotels HotelReader
}

func NewCommissionResolver(hotels HotelReader) *CommissionResolver {
	return &CommissionResolver{hotels: hotels}
}

// ResolveCommission returns the commission for a reservation total. A fixed
// override for the exact (hotel, service, vehicle) combination wins over the
// hotel percentage even when the override amount is zero. Direct customers
// (no hotel) pay no commission.
func (c *CommissionResolver) ResolveCommission(ctx context.Context, hotelID *int64, serviceType string, vehicleID int64, total float64) (float64, error) {
	if hotelID == nil {
		return 0, nil
	}

	override, err := c.hotels.GetOverride(ctx, *hotelID, serviceType, vehicleID)
	if err != nil {
		return 0, err
	}
	if override != nil {
		return override.Amount, nil
	}

	hotel, err := c.hotels.GetByID(ctx, *hotelID)
	if err != nil {
		return 0, err
	}
	commission := hotel.CommissionPercent / 100 * total
	return math.Round(commission*100) / 100, nil
}

// QuoteRequest is the input to quote composition.
type QuoteRequest struct {
	ServiceType string
	VehicleID   int64
	Passengers  int
	AddOns      []domain.AddOnSelection
	HotelID     *int64
	AsOf        time.Time
}

// Composer combines vehicle price, add-ons and commission into a quote.
type Composer struct {
	resolver    *Resolver
	commissions *CommissionResolver
}

func NewComposer(resolver *Resolver, commissions *CommissionResolver) *Composer {
	return &Composer{resolver: resolver, commissions: commissions}
}

// ComposeQuote builds the total/commission/final breakdown. A passenger
// count or add-on outside every configured bracket does not fail the
// booking: it yields an unresolved quote with zeroed amounts, and the
// reservation stays in pending_quote until staff price it manually.
func (c *Composer) ComposeQuote(ctx context.Context, req QuoteRequest) (domain.Quote, error) {
	vehiclePrice, err := c.resolver.ResolvePrice(ctx, req.ServiceType, req.VehicleID, req.Passengers, req.AsOf)
	if err != nil {
		if errors.Is(err, ErrPriceNotFound) {
			return domain.Quote{}, nil
		}
		return domain.Quote{}, err
	}

	var addOnTotal float64
	for _, sel := range req.AddOns {
		amount, err := c.resolver.ResolveAddOnAmount(ctx, req.ServiceType, sel, req.AsOf)
		if err != nil {
			if errors.Is(err, ErrPriceNotFound) {
				return domain.Quote{}, nil
			}
			return domain.Quote{}, err
		}
		addOnTotal += amount
	}

	total := vehiclePrice + addOnTotal
	commission, err := c.commissions.ResolveCommission(ctx, req.HotelID, req.ServiceType, req.VehicleID, total)
	if err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		VehiclePrice: vehiclePrice,
		AddOnTotal:   addOnTotal,
		Total:        total,
		Commission:   commission,
		Final:        total + commission,
		Resolved:     true,
	}, nil
}
