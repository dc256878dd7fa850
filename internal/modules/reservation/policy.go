package reservation

import (
	"time"

	"tourbook/internal/domain"
)

// DefaultCancelFeeWindow is how close to the scheduled time a cancellation
// starts incurring the hotel's fee.
const DefaultCancelFeeWindow = 24 * time.Hour

// FeeResult is the outcome of the cancellation fee policy.
type FeeResult struct {
	FeeApplies     bool
	Amount         float64
	HoursRemaining float64
}

// ComputeCancellationFee applies the late-cancellation rule: the fee applies
// only when the service is still ahead but less than the window away.
// Past-due services (hoursRemaining <= 0) never incur the fee; they are
// treated as already consumed. The amount is the hotel's configured fee, or
// zero when the hotel has none (or the booking is direct).
func ComputeCancellationFee(hotel *domain.Hotel, scheduledAt, now time.Time, window time.Duration) FeeResult {
	remaining := scheduledAt.Sub(now).Hours()
	res := FeeResult{HoursRemaining: remaining}

	if remaining <= 0 || remaining >= window.Hours() {
		return res
	}

	res.FeeApplies = true
	if hotel != nil {
		res.Amount = hotel.CancellationFee
	}
	return res
}
