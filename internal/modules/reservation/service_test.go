package reservation

import (
	"context"
	"strings"
	"testing"
	"time"

	"tourbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus, limit, offset int) ([]domain.Reservation, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateStatusCAS(ctx context.Context, id int64, expected, next domain.ReservationStatus) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) CancelCAS(ctx context.Context, id int64, expected domain.ReservationStatus, fee float64, notes string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, expected, fee, notes, at)
	return args.Bool(0), args.Error(1)
}

type MockHotelReader struct {
	mock.Mock
}

func (m *MockHotelReader) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyQuoteAdded(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyStatusChanged(ctx context.Context, r *domain.Reservation, previous domain.ReservationStatus) error {
	args := m.Called(ctx, r, previous)
	return args.Error(0)
}

func newTestService(repo *MockReservationRepository, hotels *MockHotelReader, notifs *MockNotificationSender) *Service {
	return NewService(repo, hotels, notifs, DefaultCancelFeeWindow, nil)
}

func ptr[T any](v T) *T { return &v }

func TestUpdateStatus_QuoteAddedNotification(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Code: "TB-1", Status: domain.StatusPendingQuote,
	}, nil)
	mockRepo.On("UpdateFields", mock.Anything, int64(7), mock.Anything).Return(nil)
	mockRepo.On("UpdateStatusCAS", mock.Anything, int64(7), domain.StatusPendingQuote, domain.StatusScheduledQuoted).Return(true, nil)
	mockNotifs.On("NotifyQuoteAdded", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockRepo, new(MockHotelReader), mockNotifs)

	r, err := service.UpdateStatus(context.Background(), 7, "admin:1", UpdateStatusRequest{
		NewStatus:    ptr("scheduled_quoted"),
		TotalPrice:   ptr(130000.0),
		Commission:   ptr(0.0),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusScheduledQuoted, r.Status)
	assert.Equal(t, 130000.0, r.FinalPrice)
	mockNotifs.AssertCalled(t, "NotifyQuoteAdded", mock.Anything, mock.Anything)
	mockNotifs.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_GenericNotificationOnOtherTransitions(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusPaid, FinalPrice: 220000,
	}, nil)
	mockRepo.On("UpdateFields", mock.Anything, int64(7), mock.Anything).Return(nil)
	mockRepo.On("UpdateStatusCAS", mock.Anything, int64(7), domain.StatusPaid, domain.StatusAssigned).Return(true, nil)
	mockNotifs.On("NotifyStatusChanged", mock.Anything, mock.Anything, domain.StatusPaid).Return(nil)

	service := newTestService(mockRepo, new(MockHotelReader), mockNotifs)

	r, err := service.UpdateStatus(context.Background(), 7, "admin:1", UpdateStatusRequest{
		NewStatus:  ptr("assigned"),
		DriverName: ptr("Made"),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, r.Status)
	assert.Equal(t, "Made", r.DriverName)
	mockNotifs.AssertCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, domain.StatusPaid)
	mockNotifs.AssertNotCalled(t, "NotifyQuoteAdded", mock.Anything, mock.Anything)
}

// Repeating the same status write must not fire a second notification.
func TestUpdateStatus_NoOpWriteFiresNothing(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusScheduledQuoted, FinalPrice: 130000,
	}, nil)
	mockRepo.On("UpdateFields", mock.Anything, int64(7), mock.Anything).Return(nil)

	service := newTestService(mockRepo, new(MockHotelReader), mockNotifs)

	r, err := service.UpdateStatus(context.Background(), 7, "admin:1", UpdateStatusRequest{
		NewStatus: ptr("scheduled_quoted"),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusScheduledQuoted, r.Status)
	mockNotifs.AssertNotCalled(t, "NotifyQuoteAdded", mock.Anything, mock.Anything)
	mockNotifs.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "UpdateStatusCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_IllegalTransitionRejected(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusPendingQuote,
	}, nil)

	service := newTestService(mockRepo, new(MockHotelReader), new(MockNotificationSender))

	_, err := service.UpdateStatus(context.Background(), 7, "admin:1", UpdateStatusRequest{NewStatus: ptr("paid")})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	mockRepo.AssertNotCalled(t, "UpdateStatusCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_InvalidStatusValueRejected(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusPendingQuote,
	}, nil)

	service := newTestService(mockRepo, new(MockHotelReader), new(MockNotificationSender))

	_, err := service.UpdateStatus(context.Background(), 7, "admin:1", UpdateStatusRequest{NewStatus: ptr("shipped")})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_LostRace(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusPaid,
	}, nil)
	mockRepo.On("UpdateStatusCAS", mock.Anything, int64(7), domain.StatusPaid, domain.StatusAssigned).Return(false, nil)

	service := newTestService(mockRepo, new(MockHotelReader), mockNotifs)

	_, err := service.UpdateStatus(context.Background(), 7, "admin:1", UpdateStatusRequest{NewStatus: ptr("assigned")})

	assert.ErrorIs(t, err, ErrRaceLostUpdate)
	mockNotifs.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

// Cancelling through the status endpoint must run the same fee policy and
// audit trail as the dedicated cancel operation.
func TestUpdateStatus_CancelledTargetRunsFeePolicy(t *testing.T) {
	hotelID := int64(3)
	mockRepo := new(MockReservationRepository)
	mockHotels := new(MockHotelReader)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusScheduledQuoted, HotelID: &hotelID,
		ScheduledAt: time.Now().UTC().Add(10 * time.Hour),
	}, nil)
	mockHotels.On("GetByID", mock.Anything, hotelID).Return(&domain.Hotel{ID: hotelID, CancellationFee: 50000}, nil)
	mockRepo.On("CancelCAS", mock.Anything, int64(7), domain.StatusScheduledQuoted, 50000.0, mock.MatchedBy(func(notes string) bool {
		return strings.Contains(notes, "cancelled by admin:1")
	}), mock.Anything).Return(true, nil)
	mockNotifs.On("NotifyStatusChanged", mock.Anything, mock.Anything, domain.StatusScheduledQuoted).Return(nil)

	service := newTestService(mockRepo, mockHotels, mockNotifs)

	r, err := service.UpdateStatus(context.Background(), 7, "admin:1", UpdateStatusRequest{
		NewStatus: ptr("cancelled"),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, r.Status)
	assert.Equal(t, 50000.0, r.CancellationFee)
	assert.Contains(t, r.Notes, "cancelled by admin:1")
	mockHotels.AssertCalled(t, "GetByID", mock.Anything, hotelID)
	// the plain status CAS path must not be used for cancellation
	mockRepo.AssertNotCalled(t, "UpdateStatusCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockRepo, new(MockHotelReader), new(MockNotificationSender))

	_, err := service.UpdateStatus(context.Background(), 404, "admin:1", UpdateStatusRequest{NewStatus: ptr("paid")})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkPaid_FirstCallWinsSecondIsNoOp(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusScheduledQuoted, FinalPrice: 220000,
	}, nil).Once()
	mockRepo.On("UpdateStatusCAS", mock.Anything, int64(7), domain.StatusScheduledQuoted, domain.StatusPaid).Return(true, nil).Once()
	mockNotifs.On("NotifyStatusChanged", mock.Anything, mock.Anything, domain.StatusScheduledQuoted).Return(nil).Once()

	service := newTestService(mockRepo, new(MockHotelReader), mockNotifs)

	r, changed, err := service.MarkPaid(context.Background(), 7)
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusPaid, r.Status)

	// second attempt (browser return after the webhook already won)
	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusPaid, FinalPrice: 220000,
	}, nil).Once()

	r, changed, err = service.MarkPaid(context.Background(), 7)
	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.StatusPaid, r.Status)
	mockNotifs.AssertNumberOfCalls(t, "NotifyStatusChanged", 1)
}

func TestMarkPaid_LosesCASToOtherPath(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusScheduledQuoted,
	}, nil).Once()
	mockRepo.On("UpdateStatusCAS", mock.Anything, int64(7), domain.StatusScheduledQuoted, domain.StatusPaid).Return(false, nil)
	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusPaid,
	}, nil).Once()

	service := newTestService(mockRepo, new(MockHotelReader), mockNotifs)

	r, changed, err := service.MarkPaid(context.Background(), 7)

	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.StatusPaid, r.Status)
	mockNotifs.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkPaid_RejectedWithoutQuote(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusPendingQuote,
	}, nil)

	service := newTestService(mockRepo, new(MockHotelReader), new(MockNotificationSender))

	_, _, err := service.MarkPaid(context.Background(), 7)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_WithinWindowChargesHotelFee(t *testing.T) {
	hotelID := int64(3)
	mockRepo := new(MockReservationRepository)
	mockHotels := new(MockHotelReader)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusScheduledQuoted, HotelID: &hotelID,
		ScheduledAt: time.Now().UTC().Add(10 * time.Hour),
		Notes:       "customer asked for child seat",
	}, nil)
	mockHotels.On("GetByID", mock.Anything, hotelID).Return(&domain.Hotel{ID: hotelID, CancellationFee: 50000}, nil)
	mockRepo.On("CancelCAS", mock.Anything, int64(7), domain.StatusScheduledQuoted, 50000.0, mock.Anything, mock.Anything).Return(true, nil)
	mockNotifs.On("NotifyStatusChanged", mock.Anything, mock.Anything, domain.StatusScheduledQuoted).Return(nil)

	service := newTestService(mockRepo, mockHotels, mockNotifs)

	result, err := service.Cancel(context.Background(), 7, "admin:1")

	assert.NoError(t, err)
	assert.True(t, result.FeeApplies)
	assert.Equal(t, 50000.0, result.FeeAmount)
	assert.InDelta(t, 10.0, result.HoursRemaining, 0.01)
	assert.Equal(t, domain.StatusCancelled, result.Reservation.Status)
	// audit note appended, prior notes preserved
	assert.Contains(t, result.Reservation.Notes, "customer asked for child seat")
	assert.Contains(t, result.Reservation.Notes, "cancelled by admin:1")
}

func TestCancel_CompletedRejected(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusCompleted,
	}, nil)

	service := newTestService(mockRepo, new(MockHotelReader), new(MockNotificationSender))

	_, err := service.Cancel(context.Background(), 7, "admin:1")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_FarAheadNoFee(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockNotifs := new(MockNotificationSender)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Reservation{
		ID: 7, Status: domain.StatusScheduledQuoted,
		ScheduledAt: time.Now().UTC().Add(72 * time.Hour),
	}, nil)
	mockRepo.On("CancelCAS", mock.Anything, int64(7), domain.StatusScheduledQuoted, 0.0, mock.Anything, mock.Anything).Return(true, nil)
	mockNotifs.On("NotifyStatusChanged", mock.Anything, mock.Anything, domain.StatusScheduledQuoted).Return(nil)

	service := newTestService(mockRepo, new(MockHotelReader), mockNotifs)

	result, err := service.Cancel(context.Background(), 7, "admin:1")

	assert.NoError(t, err)
	assert.False(t, result.FeeApplies)
	assert.Equal(t, 0.0, result.FeeAmount)
}
