package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) SupplierStats(ctx context.Context, supplierID int64, monthStart time.Time) (*domain.SupplierDashboard, error) {
	args := m.Called(ctx, supplierID, monthStart)
	if v := args.Get(0); v != nil {
		return v.(*domain.SupplierDashboard), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOfferingRepo struct{ mock.Mock }

func (m *mockOfferingRepo) GetByOfferID(ctx context.Context, offerID int64) (*domain.Offering, error) {
	args := m.Called(ctx, offerID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Offering), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOfferingRepo) CountBySupplier(ctx context.Context, supplierID int64) (int, error) {
	args := m.Called(ctx, supplierID)
	return args.Int(0), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	customer = domain.Actor{UserID: 20, Role: domain.RoleCustomer}
	supplier = domain.Actor{UserID: 10, Role: domain.RoleSupplier}
)

func TestGetByID_Access(t *testing.T) {
	booking := &domain.Booking{ID: 1, Kind: domain.KindTour, CustomerID: 20, OfferID: 3, Quantity: 1}

	tests := []struct {
		name    string
		actor   domain.Actor
		owner   int64
		wantErr error
	}{
		{name: "owner customer", actor: customer, owner: 10},
		{name: "owner supplier", actor: supplier, owner: 10},
		{name: "admin", actor: domain.Actor{UserID: 1, Role: domain.RoleAdmin}, owner: 10},
		{name: "other customer", actor: domain.Actor{UserID: 21, Role: domain.RoleCustomer}, owner: 10, wantErr: ErrAccessDenied},
		{name: "other supplier", actor: supplier, owner: 11, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingRepo{}
			offerings := &mockOfferingRepo{}
			bookings.On("GetByID", mock.Anything, int64(1)).Return(booking, nil)
			offerings.On("GetByOfferID", mock.Anything, int64(3)).Return(&domain.Offering{ID: 5, SupplierID: tt.owner}, nil)

			resp, err := NewService(bookings, offerings, nopLogger{}).GetByID(context.Background(), 1, tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "pending", resp.State)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := NewService(bookings, &mockOfferingRepo{}, nopLogger{}).GetByID(context.Background(), 1, customer)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCustomerBookings_FiltersByState(t *testing.T) {
	bookings := &mockBookingRepo{}
	state := domain.StateConfirmed
	bookings.On("List", mock.Anything, domain.BookingsFilter{CustomerID: ptr.Ptr(int64(20)), State: &state}).
		Return([]*domain.Booking{{ID: 1, Confirmed: true, StartDate: ptr.Ptr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))}}, nil)

	resp, err := NewService(bookings, &mockOfferingRepo{}, nopLogger{}).
		GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{Actor: customer, State: ptr.Ptr("confirmed")})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "confirmed", resp.Bookings[0].State)
	assert.Equal(t, "2024-01-05", *resp.Bookings[0].StartDate)
}

func TestGetCustomerBookings_InvalidState(t *testing.T) {
	_, err := NewService(&mockBookingRepo{}, &mockOfferingRepo{}, nopLogger{}).
		GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{Actor: customer, State: ptr.Ptr("cancelled")})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSupplierBookings_RequiresSupplier(t *testing.T) {
	_, err := NewService(&mockBookingRepo{}, &mockOfferingRepo{}, nopLogger{}).
		GetSupplierBookings(context.Background(), &models.GetSupplierBookingsRequest{Actor: customer})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSupplierBookings_FiltersByKind(t *testing.T) {
	bookings := &mockBookingRepo{}
	kind := domain.KindPackage
	bookings.On("List", mock.Anything, domain.BookingsFilter{SupplierID: ptr.Ptr(int64(10)), Kind: &kind}).
		Return([]*domain.Booking{}, nil)

	resp, err := NewService(bookings, &mockOfferingRepo{}, nopLogger{}).
		GetSupplierBookings(context.Background(), &models.GetSupplierBookingsRequest{Actor: supplier, Kind: ptr.Ptr("package")})

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.NotNil(t, resp.Bookings)
}

func TestGetDashboard_UsesMonthStart(t *testing.T) {
	bookings := &mockBookingRepo{}
	offerings := &mockOfferingRepo{}
	bookings.On("SupplierStats", mock.Anything, int64(10), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).
		Return(&domain.SupplierDashboard{SupplierID: 10, TotalSales: 12, ConfirmedBookings: 4, UnconfirmedBookings: 2}, nil)
	offerings.On("CountBySupplier", mock.Anything, int64(10)).Return(3, nil)

	svc := NewService(bookings, offerings, nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2024, 3, 17, 15, 0, 0, 0, time.UTC)}

	resp, err := svc.GetDashboard(context.Background(), supplier)

	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalSales)
	assert.Equal(t, 3, resp.OfferingsCount)
	assert.Equal(t, 2, resp.UnconfirmedBookings)
}
