package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
)

var scanColumns = []string{
	"id", "kind", "customer_id", "offer_id", "unit_id", "start_date",
	"quantity", "confirmed", "paid", "ticket", "created_at", "updated_at",
}

func TestGetByID_LocksRowInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := NewRepository(wrapped)
	now := time.Now()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings b WHERE b.id = $1 FOR UPDATE")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(scanColumns).
			AddRow(int64(11), "package", int64(3), int64(5), nil, start, 2, false, false, nil, now, now))
	mock.ExpectRollback()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	booking, err := repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 11)
	require.NoError(t, err)

	assert.Equal(t, domain.KindPackage, booking.Kind)
	assert.Nil(t, booking.UnitID)
	require.NotNil(t, booking.StartDate)
	assert.True(t, start.Equal(*booking.StartDate))
	assert.Equal(t, domain.StatePending, booking.State())

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM bookings b").WillReturnRows(sqlmock.NewRows(scanColumns))

	_, err = NewRepository(db).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestMarkConfirmed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	update := regexp.QuoteMeta("UPDATE bookings SET confirmed = $1, ticket = $2, updated_at = NOW() WHERE id = $3")

	mock.ExpectExec(update).WithArgs(true, "TKT-1", int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkConfirmed(context.Background(), 4, "TKT-1"))

	mock.ExpectExec(update).WithArgs(true, "TKT-2", int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.MarkConfirmed(context.Background(), 5, "TKT-2"), ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_BySupplierJoinsOfferings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	state := domain.StatePaid
	supplierID := int64(8)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM bookings b JOIN offers f ON f.id = b.offer_id JOIN offerings o ON o.id = f.offering_id WHERE o.supplier_id = $1 AND b.paid = $2")).
		WithArgs(supplierID, true).
		WillReturnRows(sqlmock.NewRows(scanColumns))

	bookings, err := NewRepository(db).List(context.Background(), domain.BookingsFilter{
		SupplierID: &supplierID,
		State:      &state,
	})

	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}
