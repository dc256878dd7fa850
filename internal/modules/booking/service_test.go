package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourbook/internal/domain"
	"tourbook/internal/modules/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	if r != nil {
		r.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) GetServiceByCode(ctx context.Context, code string) (*domain.Service, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockCatalogReader) GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
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

type MockComposer struct {
	mock.Mock
}

func (m *MockComposer) ComposeQuote(ctx context.Context, req pricing.QuoteRequest) (domain.Quote, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Quote), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func registryWith(t *testing.T, serviceType string, composer pricing.QuoteComposer) *pricing.Registry {
	t.Helper()
	reg := pricing.NewRegistry()
	if err := reg.Register(serviceType, pricing.Capability{Composer: composer}); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestService_CreateReservation_Quoted(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockCatalog := new(MockCatalogReader)
	mockComposer := new(MockComposer)

	mockCatalog.On("GetServiceByCode", mock.Anything, "airport_transfer").Return(&domain.Service{ID: 1, Code: "airport_transfer"}, nil)
	mockCatalog.On("GetVehicleByID", mock.Anything, int64(4)).Return(&domain.Vehicle{ID: 4, CapacityMin: 1, CapacityMax: 3}, nil)
	mockComposer.On("ComposeQuote", mock.Anything, mock.Anything).Return(domain.Quote{
		VehiclePrice: 150000, Total: 150000, Final: 150000, Resolved: true,
	}, nil)
	mockReservations.On("Create", mock.Anything, mock.Anything).Return(nil)

	mockNotifs := new(MockNotificationSender)
	mockNotifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockReservations, mockCatalog, new(MockHotelReader),
		registryWith(t, "airport_transfer", mockComposer), mockNotifs)

	r, err := service.CreateReservation(context.Background(), CreateBookingRequest{
		ServiceType:  "airport_transfer",
		VehicleID:    4,
		Passengers:   2,
		ScheduledAt:  time.Now().Add(48 * time.Hour),
		ContactName:  "A. Traveller",
		ContactPhone: "+62 811 000 111",
	})

	assert.NoError(t, err)
	assert.NotNil(t, r)
	assert.Equal(t, domain.StatusScheduledQuoted, r.Status)
	assert.Equal(t, 150000.0, r.FinalPrice)
	assert.NotEmpty(t, r.Code)
	mockNotifs.AssertExpectations(t)
}

// A passenger count outside every configured tier must not fail the booking;
// the reservation lands in pending_quote with zeroed prices.
func TestService_CreateReservation_UnresolvedForcesPendingQuote(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockCatalog := new(MockCatalogReader)
	mockComposer := new(MockComposer)

	mockCatalog.On("GetServiceByCode", mock.Anything, "island_tour").Return(&domain.Service{ID: 2, Code: "island_tour"}, nil)
	mockCatalog.On("GetVehicleByID", mock.Anything, int64(4)).Return(&domain.Vehicle{ID: 4}, nil)
	mockComposer.On("ComposeQuote", mock.Anything, mock.Anything).Return(domain.Quote{Resolved: false}, nil)
	mockReservations.On("Create", mock.Anything, mock.Anything).Return(nil)

	mockNotifs := new(MockNotificationSender)
	mockNotifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockReservations, mockCatalog, new(MockHotelReader),
		registryWith(t, "island_tour", mockComposer), mockNotifs)

	r, err := service.CreateReservation(context.Background(), CreateBookingRequest{
		ServiceType:  "island_tour",
		VehicleID:    4,
		Passengers:   14,
		ScheduledAt:  time.Now().Add(24 * time.Hour),
		ContactName:  "B. Group",
		ContactPhone: "+62 811 222 333",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPendingQuote, r.Status)
	assert.Equal(t, 0.0, r.FinalPrice)
}

func TestService_CreateReservation_UnknownService(t *testing.T) {
	mockCatalog := new(MockCatalogReader)
	mockCatalog.On("GetServiceByCode", mock.Anything, "submarine_tour").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockReservationRepository), mockCatalog, new(MockHotelReader),
		pricing.NewRegistry(), new(MockNotificationSender))

	_, err := service.CreateReservation(context.Background(), CreateBookingRequest{
		ServiceType:  "submarine_tour",
		VehicleID:    4,
		Passengers:   2,
		ScheduledAt:  time.Now().Add(24 * time.Hour),
		ContactName:  "C",
		ContactPhone: "1",
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_CreateReservation_PastDateRejected(t *testing.T) {
	service := NewService(new(MockReservationRepository), new(MockCatalogReader), new(MockHotelReader),
		pricing.NewRegistry(), new(MockNotificationSender))

	_, err := service.CreateReservation(context.Background(), CreateBookingRequest{
		ServiceType:  "airport_transfer",
		VehicleID:    4,
		Passengers:   2,
		ScheduledAt:  time.Now().Add(-time.Hour),
		ContactName:  "C",
		ContactPhone: "1",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

// Notification dispatch is best effort; a failing sender must not surface.
func TestService_CreateReservation_NotifyFailureIgnored(t *testing.T) {
	mockReservations := new(MockReservationRepository)
	mockCatalog := new(MockCatalogReader)
	mockComposer := new(MockComposer)

	mockCatalog.On("GetServiceByCode", mock.Anything, "airport_transfer").Return(&domain.Service{ID: 1, Code: "airport_transfer"}, nil)
	mockCatalog.On("GetVehicleByID", mock.Anything, int64(4)).Return(&domain.Vehicle{ID: 4}, nil)
	mockComposer.On("ComposeQuote", mock.Anything, mock.Anything).Return(domain.Quote{
		VehiclePrice: 100000, Total: 100000, Final: 100000, Resolved: true,
	}, nil)
	mockReservations.On("Create", mock.Anything, mock.Anything).Return(nil)

	mockNotifs := new(MockNotificationSender)
	mockNotifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	service := NewService(mockReservations, mockCatalog, new(MockHotelReader),
		registryWith(t, "airport_transfer", mockComposer), mockNotifs)

	r, err := service.CreateReservation(context.Background(), CreateBookingRequest{
		ServiceType:  "airport_transfer",
		VehicleID:    4,
		Passengers:   2,
		ScheduledAt:  time.Now().Add(48 * time.Hour),
		ContactName:  "D",
		ContactPhone: "2",
	})

	assert.NoError(t, err)
	assert.NotNil(t, r)
}
