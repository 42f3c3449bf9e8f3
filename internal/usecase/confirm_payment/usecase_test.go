package confirm_payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockOfferingRepo struct{ mock.Mock }

func (m *mockOfferingRepo) GetByOfferID(ctx context.Context, offerID int64) (*domain.Offering, error) {
	args := m.Called(ctx, offerID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Offering), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, recipientID int64, message string) error {
	return m.Called(ctx, recipientID, message).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) RecordBookingTransition(transition, result string) {
	m.Called(transition, result)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	supplierID = int64(10)
	customerID = int64(20)
)

var supplier = domain.Actor{UserID: supplierID, Role: domain.RoleSupplier}

type deps struct {
	bookings  *mockBookingRepo
	offerings *mockOfferingRepo
	notifier  *mockNotifier
	metrics   *mockMetrics
}

func newDeps() *deps {
	return &deps{&mockBookingRepo{}, &mockOfferingRepo{}, &mockNotifier{}, &mockMetrics{}}
}

func (d *deps) useCase(opts Options) *UseCase {
	return NewUseCase(d.bookings, d.offerings, d.notifier, inlineTx{}, d.metrics, opts, nopLogger{})
}

func (d *deps) withBooking(b *domain.Booking) {
	d.bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	d.offerings.On("GetByOfferID", mock.Anything, b.OfferID).
		Return(&domain.Offering{ID: 1, SupplierID: supplierID, Title: "Kayak"}, nil)
}

func TestPay_MarksPaidAndNotifiesBothSides(t *testing.T) {
	d := newDeps()
	d.withBooking(&domain.Booking{ID: 5, OfferID: 2, CustomerID: customerID, Quantity: 1})
	d.bookings.On("MarkPaid", mock.Anything, int64(5)).Return(nil)
	d.notifier.On("Notify", mock.Anything, customerID, mock.Anything).Return(nil)
	d.notifier.On("Notify", mock.Anything, supplierID, mock.Anything).Return(errors.New("down"))
	d.metrics.On("RecordBookingTransition", "pay", "ok").Return()

	resp, err := d.useCase(Options{}).Execute(context.Background(), &Request{BookingID: 5, Actor: supplier})

	require.NoError(t, err)
	assert.True(t, resp.Booking.Paid)
	assert.Equal(t, domain.StatePaid, resp.Booking.State())
	d.bookings.AssertExpectations(t)
	d.notifier.AssertExpectations(t)
	d.metrics.AssertExpectations(t)
}

func TestPay_AlreadyPaid(t *testing.T) {
	d := newDeps()
	d.withBooking(&domain.Booking{ID: 5, OfferID: 2, Paid: true, Confirmed: true})
	d.metrics.On("RecordBookingTransition", "pay", "already_paid").Return()

	_, err := d.useCase(Options{}).Execute(context.Background(), &Request{BookingID: 5, Actor: supplier})

	assert.ErrorIs(t, err, ErrAlreadyPaid)
	d.bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	d.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestPay_ConfirmationRequirement(t *testing.T) {
	t.Run("not required by default", func(t *testing.T) {
		d := newDeps()
		d.withBooking(&domain.Booking{ID: 5, OfferID: 2, CustomerID: customerID})
		d.bookings.On("MarkPaid", mock.Anything, int64(5)).Return(nil)
		d.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		d.metrics.On("RecordBookingTransition", "pay", "ok").Return()

		_, err := d.useCase(Options{}).Execute(context.Background(), &Request{BookingID: 5, Actor: supplier})
		assert.NoError(t, err)
	})

	t.Run("required", func(t *testing.T) {
		d := newDeps()
		d.withBooking(&domain.Booking{ID: 5, OfferID: 2, CustomerID: customerID})
		d.metrics.On("RecordBookingTransition", "pay", "not_confirmed").Return()

		_, err := d.useCase(Options{RequireConfirmation: true}).
			Execute(context.Background(), &Request{BookingID: 5, Actor: supplier})
		assert.ErrorIs(t, err, ErrNotConfirmed)
	})
}

func TestPay_Forbidden(t *testing.T) {
	d := newDeps()
	d.withBooking(&domain.Booking{ID: 5, OfferID: 2})
	d.metrics.On("RecordBookingTransition", "pay", "forbidden").Return()

	_, err := d.useCase(Options{}).Execute(context.Background(),
		&Request{BookingID: 5, Actor: domain.Actor{UserID: 77, Role: domain.RoleSupplier}})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPay_NotFound(t *testing.T) {
	d := newDeps()
	d.bookings.On("GetByID", mock.Anything, int64(9)).Return(nil, bookingRepo.ErrBookingNotFound)
	d.metrics.On("RecordBookingTransition", "pay", "not_found").Return()

	_, err := d.useCase(Options{}).Execute(context.Background(), &Request{BookingID: 9, Actor: supplier})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
