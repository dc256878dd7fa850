package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	intents      IntentRepository
	reservations ReservationReader
	transitions  PaidTransitioner
	verifier     CallbackVerifier
	loggerf      func(format string, args ...interface{})
}

func NewService(
	intents IntentRepository,
	reservations ReservationReader,
	transitions PaidTransitioner,
	verifier CallbackVerifier,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		intents:      intents,
		reservations: reservations,
		transitions:  transitions,
		verifier:     verifier,
		loggerf:      loggerf,
	}
}

// InitPayment creates the server-side order-id mapping for a quoted
// reservation. The mapping is what lets the webhook and the browser return
// find the reservation in either arrival order.
func (s *Service) InitPayment(ctx context.Context, req InitPaymentRequest) (*InitPaymentResponse, error) {
	r, err := s.reservations.GetByCode(ctx, req.ReservationCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if r.Status != domain.StatusScheduledQuoted || r.FinalPrice <= 0 {
		return nil, ErrNotPayable
	}

	orderID := time.Now().UnixNano()
	intent := &domain.PaymentIntent{
		OrderID:       orderID,
		ReservationID: r.ID,
		Amount:        r.FinalPrice,
		Status:        domain.IntentCreated,
	}
	if err := s.intents.Create(ctx, intent); err != nil {
		return nil, fmt.Errorf("save payment intent failed: %w", err)
	}

	return &InitPaymentResponse{
		OrderID:         orderID,
		ReservationCode: r.Code,
		Amount:          r.FinalPrice,
		Status:          string(domain.IntentCreated),
	}, nil
}

// HandleResultCallback processes the gateway's server-to-server result.
// Only an approved callback may drive the paid transition; replays are
// harmless because both the intent flip and the transition are idempotent.
func (s *Service) HandleResultCallback(ctx context.Context, req CallbackRequest) (string, error) {
	if s.verifier != nil && !s.verifier.Verify(req) {
		s.loggerf("level=warn msg=callback signature rejected order_id=%d", req.OrderID)
		return "", ErrInvalidSignature
	}

	intent, err := s.intents.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrIntentNotFound
		}
		return "", err
	}

	if !req.Approved {
		if err := s.intents.MarkRejected(ctx, req.OrderID, req.RawBody); err != nil {
			s.loggerf("level=error msg=failed to record rejected callback order_id=%d err=%v", req.OrderID, err)
		}
		// rejected or still pending on the gateway side: status untouched
		return "OK" + strconv.FormatInt(req.OrderID, 10), nil
	}

	changed, err := s.intents.MarkApproved(ctx, req.OrderID, req.RawBody, time.Now().UTC())
	if err != nil {
		return "", err
	}
	if !changed {
		s.loggerf("level=info msg=idempotent callback intent already approved order_id=%d", req.OrderID)
	}

	if _, _, err := s.transitions.MarkPaid(ctx, intent.ReservationID); err != nil {
		s.loggerf("level=error msg=paid transition failed reservation_id=%d err=%v", intent.ReservationID, err)
		return "", err
	}

	return "OK" + strconv.FormatInt(req.OrderID, 10), nil
}

// HandleSuccessReturn is the browser's return-navigation leg. It never
// trusts the browser with the payment outcome: the paid transition runs
// only when the gateway callback already approved the intent.
func (s *Service) HandleSuccessReturn(ctx context.Context, orderID int64) (*domain.Reservation, error) {
	intent, err := s.intents.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, err
	}

	if intent.Status != domain.IntentApproved {
		// the browser beat the webhook here; the browser is never trusted
		// with the outcome, so show the current state and let the gateway
		// callback drive the transition when it lands
		s.loggerf("level=info msg=browser returned before gateway approval order_id=%d status=%s", orderID, intent.Status)
		return s.reservations.GetByID(ctx, intent.ReservationID)
	}

	r, _, err := s.transitions.MarkPaid(ctx, intent.ReservationID)
	if err != nil {
		return nil, err
	}
	return r, nil
}
