package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	reservations ReservationRepository
	hotels       HotelReader
	notifs       NotificationSender
	cancelWindow time.Duration
	loggerf      func(format string, args ...interface{})
}

func NewService(
	reservations ReservationRepository,
	hotels HotelReader,
	notifs NotificationSender,
	cancelWindow time.Duration,
	loggerf func(format string, args ...interface{}),
) *Service {
	if cancelWindow <= 0 {
		cancelWindow = DefaultCancelFeeWindow
	}
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		reservations: reservations,
		hotels:       hotels,
		notifs:       notifs,
		cancelWindow: cancelWindow,
		loggerf:      loggerf,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Reservation, error) {
	st, ok := domain.ParseReservationStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.reservations.ListByStatus(ctx, st, limit, offset)
}

// UpdateStatus applies an operations edit: optional quote fields, optional
// assignment fields, optional explicit target status. Transitions are never
// inferred from data changes. The status write is compare-and-swap on the
// previous status; losing the race rejects the whole request.
func (s *Service) UpdateStatus(ctx context.Context, id int64, actor string, req UpdateStatusRequest) (*domain.Reservation, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var next domain.ReservationStatus
	if req.NewStatus != nil {
		parsed, ok := domain.ParseReservationStatus(*req.NewStatus)
		if !ok {
			return nil, ErrInvalidStatus
		}
		next = parsed
	}

	fields := s.applyEdits(r, req)

	prev := r.Status
	if req.NewStatus == nil || next == prev {
		// plain edit or no-op status write: no transition, no notification
		if err := s.reservations.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
		return r, nil
	}

	if !prev.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if len(fields) > 0 {
		if err := s.reservations.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	if next == domain.StatusCancelled {
		// cancellation always runs the fee policy and the audit note, no
		// matter which endpoint asked for it
		result, err := s.Cancel(ctx, id, actor)
		if err != nil {
			return nil, err
		}
		return result.Reservation, nil
	}

	ok, err := s.reservations.UpdateStatusCAS(ctx, id, prev, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.loggerf("level=warn msg=status update lost race reservation_id=%d expected=%s target=%s", id, prev, next)
		return nil, ErrRaceLostUpdate
	}
	r.Status = next

	s.notifyTransition(ctx, r, prev)

	return r, nil
}

// applyEdits merges the optional request fields into the loaded reservation
// and returns the column map for the partial update.
func (s *Service) applyEdits(r *domain.Reservation, req UpdateStatusRequest) map[string]any {
	fields := make(map[string]any)

	if req.VehiclePrice != nil {
		r.VehiclePrice = *req.VehiclePrice
		fields["vehicle_price"] = *req.VehiclePrice
	}
	if req.AddOnTotal != nil {
		r.AddOnTotal = *req.AddOnTotal
		fields["add_on_total"] = *req.AddOnTotal
	}
	if req.TotalPrice != nil {
		r.TotalPrice = *req.TotalPrice
		fields["total_price"] = *req.TotalPrice
	}
	if req.Commission != nil {
		r.Commission = *req.Commission
		fields["commission"] = *req.Commission
	}
	switch {
	case req.FinalPrice != nil:
		r.FinalPrice = *req.FinalPrice
		fields["final_price"] = *req.FinalPrice
	case req.TotalPrice != nil || req.Commission != nil:
		// final = total + commission unless the caller pinned it explicitly
		r.FinalPrice = r.TotalPrice + r.Commission
		fields["final_price"] = r.FinalPrice
	}

	if req.DriverName != nil {
		r.DriverName = *req.DriverName
		fields["driver_name"] = *req.DriverName
	}
	if req.VehiclePlate != nil {
		r.VehiclePlate = *req.VehiclePlate
		fields["vehicle_plate"] = *req.VehiclePlate
	}
	if req.AdminNotes != nil && *req.AdminNotes != "" {
		r.Notes = appendNote(r.Notes, *req.AdminNotes)
		fields["notes"] = r.Notes
	}

	return fields
}

// notifyTransition fires at most one notification per accepted transition.
// The quote template wins on the exact pending_quote -> scheduled_quoted
// step with a positive final price.
func (s *Service) notifyTransition(ctx context.Context, r *domain.Reservation, prev domain.ReservationStatus) {
	if s.notifs == nil {
		return
	}
	if prev == domain.StatusPendingQuote && r.Status == domain.StatusScheduledQuoted && r.FinalPrice > 0 {
		if err := s.notifs.NotifyQuoteAdded(ctx, r); err != nil {
			s.loggerf("level=error msg=quote notification failed reservation_id=%d err=%v", r.ID, err)
		}
		return
	}
	if err := s.notifs.NotifyStatusChanged(ctx, r, prev); err != nil {
		s.loggerf("level=error msg=status notification failed reservation_id=%d err=%v", r.ID, err)
	}
}

// MarkPaid is the payment-confirmation transition. Both the gateway webhook
// and the browser return page call it, in either order; only the call that
// actually flips the status notifies. changed reports whether this call won.
func (s *Service) MarkPaid(ctx context.Context, reservationID int64) (*domain.Reservation, bool, error) {
	r, err := s.GetByID(ctx, reservationID)
	if err != nil {
		return nil, false, err
	}

	if r.Status == domain.StatusPaid || r.Status == domain.StatusAssigned || r.Status == domain.StatusCompleted {
		// already paid (possibly further along): idempotent no-op
		return r, false, nil
	}
	prev := r.Status
	if !prev.CanTransitionTo(domain.StatusPaid) {
		return nil, false, ErrInvalidTransition
	}

	ok, err := s.reservations.UpdateStatusCAS(ctx, reservationID, prev, domain.StatusPaid)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		// the other completion path most likely got there first
		fresh, err := s.GetByID(ctx, reservationID)
		if err != nil {
			return nil, false, err
		}
		if fresh.Status == domain.StatusPaid || fresh.Status == domain.StatusAssigned || fresh.Status == domain.StatusCompleted {
			return fresh, false, nil
		}
		s.loggerf("level=warn msg=paid transition lost race reservation_id=%d expected=%s actual=%s", reservationID, prev, fresh.Status)
		return nil, false, ErrRaceLostUpdate
	}

	r.Status = domain.StatusPaid
	s.notifyTransition(ctx, r, prev)

	return r, true, nil
}

// Cancel runs the fee policy, moves the reservation to cancelled and appends
// an audit note. Cancellation is a status, not a deletion.
func (s *Service) Cancel(ctx context.Context, id int64, actor string) (*CancelResult, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Status.CanTransitionTo(domain.StatusCancelled) || r.Status == domain.StatusCancelled {
		return nil, ErrInvalidTransition
	}

	var hotel *domain.Hotel
	if r.HotelID != nil {
		hotel, err = s.hotels.GetByID(ctx, *r.HotelID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	fee := ComputeCancellationFee(hotel, r.ScheduledAt, now, s.cancelWindow)

	if actor == "" {
		actor = "system"
	}
	audit := fmt.Sprintf("cancelled by %s at %s, fee %.2f", actor, now.Format(time.RFC3339), fee.Amount)
	notes := appendNote(r.Notes, audit)

	prev := r.Status
	ok, err := s.reservations.CancelCAS(ctx, id, prev, fee.Amount, notes, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.loggerf("level=warn msg=cancel lost race reservation_id=%d expected=%s", id, prev)
		return nil, ErrRaceLostUpdate
	}

	r.Status = domain.StatusCancelled
	r.CancellationFee = fee.Amount
	r.Notes = notes
	r.CancelledAt = &now

	s.notifyTransition(ctx, r, prev)

	return &CancelResult{
		Reservation:    r,
		FeeApplies:     fee.FeeApplies,
		FeeAmount:      fee.Amount,
		HoursRemaining: fee.HoursRemaining,
	}, nil
}

func appendNote(existing, note string) string {
	if strings.TrimSpace(existing) == "" {
		return note
	}
	return existing + "\n" + note
}
