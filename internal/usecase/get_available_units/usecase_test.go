package get_available_units

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	offeringRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/offering"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type mockOfferingRepo struct{ mock.Mock }

func (m *mockOfferingRepo) GetOfferByID(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Offer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOfferingRepo) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Offering), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) ListAvailable(ctx context.Context, offerID int64, day time.Time) ([]*domain.InventoryUnit, error) {
	args := m.Called(ctx, offerID, day)
	return args.Get(0).([]*domain.InventoryUnit), args.Error(1)
}

func (m *mockInventoryRepo) ListUpcoming(ctx context.Context, offerID int64, from time.Time) ([]*domain.InventoryUnit, error) {
	args := m.Called(ctx, offerID, from)
	return args.Get(0).([]*domain.InventoryUnit), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

func newUseCase(offerings *mockOfferingRepo, inventory *mockInventoryRepo, now time.Time) *UseCase {
	uc := NewUseCase(offerings, inventory, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_WithDayListsAvailable(t *testing.T) {
	offerings := &mockOfferingRepo{}
	inventory := &mockInventoryRepo{}
	offerings.On("GetOfferByID", mock.Anything, int64(3)).Return(&domain.Offer{ID: 3, OfferingID: 1}, nil)
	offerings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Offering{ID: 1, Kind: domain.KindActivity}, nil)
	units := []*domain.InventoryUnit{{ID: 7, OfferID: 3, Day: date("2024-01-05"), Stock: 2}}
	inventory.On("ListAvailable", mock.Anything, int64(3), date("2024-01-05")).Return(units, nil)

	resp, err := newUseCase(offerings, inventory, date("2024-01-01")).
		Execute(context.Background(), &Request{OfferID: 3, Day: ptr.Ptr(date("2024-01-05").Add(15 * time.Hour))})

	require.NoError(t, err)
	assert.Equal(t, domain.KindActivity, resp.Kind)
	assert.Equal(t, units, resp.Units)
	inventory.AssertNotCalled(t, "ListUpcoming", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_WithoutDayListsUpcomingFromToday(t *testing.T) {
	offerings := &mockOfferingRepo{}
	inventory := &mockInventoryRepo{}
	offerings.On("GetOfferByID", mock.Anything, int64(4)).Return(&domain.Offer{ID: 4, OfferingID: 2}, nil)
	offerings.On("GetByID", mock.Anything, int64(2)).Return(&domain.Offering{ID: 2, Kind: domain.KindTour}, nil)
	units := []*domain.InventoryUnit{
		{ID: 1, OfferID: 4, Day: date("2024-01-02"), Stock: 0},
		{ID: 2, OfferID: 4, Day: date("2024-01-03"), Stock: 6},
	}
	inventory.On("ListUpcoming", mock.Anything, int64(4), date("2024-01-02")).Return(units, nil)

	resp, err := newUseCase(offerings, inventory, date("2024-01-02").Add(18*time.Hour)).
		Execute(context.Background(), &Request{OfferID: 4})

	require.NoError(t, err)
	assert.Nil(t, resp.Day)
	assert.Len(t, resp.Units, 2)
}

func TestExecute_PastDayIsEmpty(t *testing.T) {
	offerings := &mockOfferingRepo{}
	inventory := &mockInventoryRepo{}
	offerings.On("GetOfferByID", mock.Anything, int64(3)).Return(&domain.Offer{ID: 3, OfferingID: 1}, nil)
	offerings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Offering{ID: 1, Kind: domain.KindActivity}, nil)

	resp, err := newUseCase(offerings, inventory, date("2024-01-10").Add(9*time.Hour)).
		Execute(context.Background(), &Request{OfferID: 3, Day: ptr.Ptr(date("2024-01-09"))})

	require.NoError(t, err)
	assert.NotNil(t, resp.Units)
	assert.Empty(t, resp.Units)
	inventory.AssertNotCalled(t, "ListAvailable", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_TodayIsStillListed(t *testing.T) {
	offerings := &mockOfferingRepo{}
	inventory := &mockInventoryRepo{}
	offerings.On("GetOfferByID", mock.Anything, int64(3)).Return(&domain.Offer{ID: 3, OfferingID: 1}, nil)
	offerings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Offering{ID: 1, Kind: domain.KindActivity}, nil)
	units := []*domain.InventoryUnit{{ID: 8, OfferID: 3, Day: date("2024-01-10"), Stock: 1}}
	inventory.On("ListAvailable", mock.Anything, int64(3), date("2024-01-10")).Return(units, nil)

	resp, err := newUseCase(offerings, inventory, date("2024-01-10").Add(20*time.Hour)).
		Execute(context.Background(), &Request{OfferID: 3, Day: ptr.Ptr(date("2024-01-10"))})

	require.NoError(t, err)
	assert.Equal(t, units, resp.Units)
}

func TestExecute_UnknownOffer(t *testing.T) {
	offerings := &mockOfferingRepo{}
	offerings.On("GetOfferByID", mock.Anything, int64(9)).Return(nil, offeringRepo.ErrOfferNotFound)

	_, err := newUseCase(offerings, &mockInventoryRepo{}, date("2024-01-01")).
		Execute(context.Background(), &Request{OfferID: 9})

	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestExecute_InvalidOfferID(t *testing.T) {
	_, err := newUseCase(&mockOfferingRepo{}, &mockInventoryRepo{}, date("2024-01-01")).
		Execute(context.Background(), &Request{OfferID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
