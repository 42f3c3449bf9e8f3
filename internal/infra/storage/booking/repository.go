package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.kind",
	"b.customer_id",
	"b.offer_id",
	"b.unit_id",
	"b.start_date",
	"b.quantity",
	"b.confirmed",
	"b.paid",
	"b.ticket",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий журнала бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование в состоянии pending
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"kind",
			"customer_id",
			"offer_id",
			"unit_id",
			"start_date",
			"quantity",
		).
		Values(
			booking.Kind,
			booking.CustomerID,
			booking.OfferID,
			booking.UnitID,
			booking.StartDate,
			booking.Quantity,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Если в контексте есть транзакция, строка блокируется (FOR UPDATE) до ее завершения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// MarkConfirmed выставляет confirmed и токен билета
func (r *Repository) MarkConfirmed(ctx context.Context, id int64, ticket string) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("confirmed", true).
		Set("ticket", ticket).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "MarkConfirmed", query, args)
}

// MarkPaid выставляет paid
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "MarkPaid", query, args)
}

// List получает бронирования по фильтру, новые первыми
// Фильтр по поставщику идет через offers -> offerings
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		OrderBy("b.created_at DESC", "b.id DESC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.customer_id": *filter.CustomerID})
	}
	if filter.SupplierID != nil {
		selectBuilder = selectBuilder.
			Join("offers f ON f.id = b.offer_id").
			Join("offerings o ON o.id = f.offering_id").
			Where(squirrel.Eq{"o.supplier_id": *filter.SupplierID})
	}
	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.kind": *filter.Kind})
	}
	if filter.State != nil {
		switch *filter.State {
		case domain.StatePending:
			selectBuilder = selectBuilder.Where(squirrel.Eq{"b.confirmed": false, "b.paid": false})
		case domain.StateConfirmed:
			selectBuilder = selectBuilder.Where(squirrel.Eq{"b.confirmed": true, "b.paid": false})
		case domain.StatePaid:
			selectBuilder = selectBuilder.Where(squirrel.Eq{"b.paid": true})
		}
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// SupplierStats агрегаты продаж поставщика; monthStart - начало текущего месяца
func (r *Repository) SupplierStats(ctx context.Context, supplierID int64, monthStart time.Time) (*domain.SupplierDashboard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(SUM(b.quantity) FILTER (WHERE b.confirmed), 0)",
		"COUNT(*) FILTER (WHERE b.confirmed)",
	).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE b.confirmed AND b.created_at >= ?)", monthStart)).
		Column("COUNT(*) FILTER (WHERE NOT b.confirmed)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE NOT b.confirmed AND b.created_at >= ?)", monthStart)).
		From("bookings b").
		Join("offers f ON f.id = b.offer_id").
		Join("offerings o ON o.id = f.offering_id").
		Where(squirrel.Eq{"o.supplier_id": supplierID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SupplierStats - build select query: %v", ErrBuildQuery, err)
	}

	stats := &domain.SupplierDashboard{SupplierID: supplierID}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalSales,
		&stats.ConfirmedBookings,
		&stats.ConfirmedThisMonth,
		&stats.UnconfirmedBookings,
		&stats.UnconfirmedThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: SupplierStats - scan stats: %v", ErrScanRow, err)
	}

	return stats, nil
}

func (r *Repository) execOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		unitID               sql.NullInt64
		startDate            sql.NullTime
		ticket               sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Kind,
		&booking.CustomerID,
		&booking.OfferID,
		&unitID,
		&startDate,
		&booking.Quantity,
		&booking.Confirmed,
		&booking.Paid,
		&ticket,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if unitID.Valid {
		booking.UnitID = &unitID.Int64
	}
	if startDate.Valid {
		d := domain.DateOnly(startDate.Time)
		booking.StartDate = &d
	}
	if ticket.Valid {
		booking.Ticket = &ticket.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
