package pricing

import (
	"context"
	"testing"

	"tourbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockServiceLister struct {
	mock.Mock
}

func (m *MockServiceLister) ListActiveServices(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register("airport_transfer", Capability{})
	assert.NoError(t, err)

	_, ok := reg.Lookup("airport_transfer")
	assert.True(t, ok)

	_, ok = reg.Lookup("submarine_tour")
	assert.False(t, ok)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := NewRegistry()

	assert.NoError(t, reg.Register("airport_transfer", Capability{}))
	err := reg.Register("airport_transfer", Capability{})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestBuildRegistry_FromCatalog(t *testing.T) {
	mockServices := new(MockServiceLister)
	mockServices.On("ListActiveServices", mock.Anything).Return([]domain.Service{
		{ID: 1, Code: "airport_transfer", Active: true},
		{ID: 2, Code: "island_tour", Active: true},
	}, nil)

	resolver := NewResolver(new(MockTierLister), new(MockAddOnPriceLister))
	composer := NewComposer(resolver, NewCommissionResolver(new(MockHotelReader)))

	reg, err := BuildRegistry(context.Background(), mockServices, resolver, composer)

	assert.NoError(t, err)
	c, ok := reg.Lookup("island_tour")
	assert.True(t, ok)
	assert.NotNil(t, c.Composer)
}
