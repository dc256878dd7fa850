package notification

import (
	"context"
	"fmt"

	"tourbook/internal/domain"
)

// NotificationRepository persists the notification feed rows.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListRecent(ctx context.Context, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// Service persists notification rows and pushes live events to the hub.
// Delivery is best effort by contract: callers ignore the returned error,
// a failed dispatch must never roll back the transition that caused it.
type Service struct {
	notifications NotificationRepository
	hub           *Hub
	loggerf       func(format string, args ...interface{})
}

func NewService(notifications NotificationRepository, hub *Hub, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{notifications: notifications, hub: hub, loggerf: loggerf}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, r *domain.Reservation) error {
	n := &domain.Notification{
		ReservationID: r.ID,
		Type:          domain.NotifBookingCreated,
		Title:         "New booking request",
		Message:       fmt.Sprintf("Reservation %s: %s for %d pax on %s", r.Code, r.ServiceType, r.Passengers, r.ScheduledAt.Format("2006-01-02 15:04")),
		Data:          map[string]any{"status": string(r.Status), "final_price": r.FinalPrice},
	}
	return s.dispatch(ctx, r, n)
}

// NotifyQuoteAdded uses the dedicated quote template; it fires only on the
// pending_quote to scheduled_quoted transition with a positive final price.
func (s *Service) NotifyQuoteAdded(ctx context.Context, r *domain.Reservation) error {
	n := &domain.Notification{
		ReservationID: r.ID,
		Type:          domain.NotifQuoteAdded,
		Title:         "Quote added",
		Message:       fmt.Sprintf("Reservation %s quoted at %.0f (commission %.0f)", r.Code, r.FinalPrice, r.Commission),
		Data:          map[string]any{"final_price": r.FinalPrice, "total_price": r.TotalPrice},
	}
	return s.dispatch(ctx, r, n)
}

func (s *Service) NotifyStatusChanged(ctx context.Context, r *domain.Reservation, previous domain.ReservationStatus) error {
	n := &domain.Notification{
		ReservationID: r.ID,
		Type:          domain.NotifStatusChanged,
		Title:         "Reservation status changed",
		Message:       fmt.Sprintf("Reservation %s: %s -> %s", r.Code, previous, r.Status),
		Data:          map[string]any{"previous": string(previous), "status": string(r.Status)},
	}
	return s.dispatch(ctx, r, n)
}

func (s *Service) dispatch(ctx context.Context, r *domain.Reservation, n *domain.Notification) error {
	if err := s.notifications.Create(ctx, n); err != nil {
		s.loggerf("level=error msg=notification persist failed reservation_id=%d type=%s err=%v", r.ID, n.Type, err)
		return err
	}
	if s.hub != nil {
		s.hub.Broadcast(&WSEvent{
			Type:            string(n.Type),
			ReservationID:   r.ID,
			ReservationCode: r.Code,
			Status:          string(r.Status),
		})
	}
	return nil
}

func (s *Service) ListRecent(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notifications.ListRecent(ctx, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.notifications.MarkRead(ctx, id)
}
