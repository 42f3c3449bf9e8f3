package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

// DefaultBatchSize размер пакета вставки, если в конфиге не указан
const DefaultBatchSize = 500

// pgCheckViolation нарушение CHECK (stock >= 0)
const pgCheckViolation = "23514"

var unitColumns = []string{
	"id",
	"offer_id",
	"day",
	"time_from",
	"time_to",
	"stock",
}

// Repository репозиторий единиц инвентаря
// Остаток меняется только через DecrementStock
type Repository struct {
	db        DBExecutor
	batchSize int
}

// NewRepository создает новый экземпляр репозитория инвентаря
func NewRepository(db DBExecutor, batchSize int) *Repository {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Repository{db: db, batchSize: batchSize}
}

// GetOrCreate сохраняет единицы пакетами с ON CONFLICT DO NOTHING
// Существующие по натуральному ключу единицы не меняются, остаток не пересинхронизируется
// Возвращает количество реально вставленных строк
func (r *Repository) GetOrCreate(ctx context.Context, units []*domain.InventoryUnit) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var inserted int64
	for start := 0; start < len(units); start += r.batchSize {
		end := start + r.batchSize
		if end > len(units) {
			end = len(units)
		}

		insertBuilder := psqlbuilder.Insert("inventory_units").
			Columns("offer_id", "day", "time_from", "time_to", "stock")
		for _, u := range units[start:end] {
			insertBuilder = insertBuilder.Values(u.OfferID, u.Day, u.TimeFrom, u.TimeTo, u.Stock)
		}

		query, args, err := insertBuilder.Suffix("ON CONFLICT DO NOTHING").ToSql()
		if err != nil {
			return inserted, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("%w: GetOrCreate - execute insert: %v", ErrExecQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("%w: GetOrCreate - get rows affected: %v", ErrExecQuery, err)
		}
		inserted += affected
	}

	return inserted, nil
}

// ListAvailable единицы ценового варианта на день с положительным остатком (активности)
func (r *Repository) ListAvailable(ctx context.Context, offerID int64, day time.Time) ([]*domain.InventoryUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(unitColumns...).
		From("inventory_units").
		Where(squirrel.Eq{"offer_id": offerID, "day": domain.DateOnly(day)}).
		Where(squirrel.Gt{"stock": 0}).
		OrderBy("time_from ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListAvailable", query, args)
}

// ListUpcoming все единицы ценового варианта начиная с дня from, независимо от остатка (туры, пакеты)
func (r *Repository) ListUpcoming(ctx context.Context, offerID int64, from time.Time) ([]*domain.InventoryUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(unitColumns...).
		From("inventory_units").
		Where(squirrel.Eq{"offer_id": offerID}).
		Where(squirrel.GtOrEq{"day": domain.DateOnly(from)}).
		OrderBy("day ASC", "time_from ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListUpcoming", query, args)
}

// GetByID получает единицу по ID
// В транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.InventoryUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(unitColumns...).
		From("inventory_units").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	unit, err := scanUnit(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan unit: %v", ErrScanRow, err)
	}

	return unit, nil
}

// GetRange единицы ценового варианта с днями в [from, to] в порядке (day, id)
// В транзакции блокирует все строки диапазона (FOR UPDATE) в этом же порядке
func (r *Repository) GetRange(ctx context.Context, offerID int64, from, to time.Time) ([]*domain.InventoryUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(unitColumns...).
		From("inventory_units").
		Where(squirrel.Eq{"offer_id": offerID}).
		Where(squirrel.GtOrEq{"day": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"day": domain.DateOnly(to)}).
		OrderBy("day ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetRange", query, args)
}

// DecrementStock условно списывает quantity с единицы
// Если остатка не хватает, ни одна строка не меняется и возвращается ErrInsufficientStock
func (r *Repository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("inventory_units").
		Set("stock", squirrel.Expr("stock - ?", quantity)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"stock": quantity}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementStock - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgCheckViolation {
			return fmt.Errorf("%w: unit id=%d, quantity=%d: %s", ErrInsufficientStock, id, quantity, pqErr.Constraint)
		}
		return fmt.Errorf("%w: DecrementStock - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementStock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: unit id=%d, quantity=%d", ErrInsufficientStock, id, quantity)
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.InventoryUnit, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	units := make([]*domain.InventoryUnit, 0)
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return units, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUnit(row rowScanner) (*domain.InventoryUnit, error) {
	var u domain.InventoryUnit
	if err := row.Scan(&u.ID, &u.OfferID, &u.Day, &u.TimeFrom, &u.TimeTo, &u.Stock); err != nil {
		return nil, err
	}
	u.Day = domain.DateOnly(u.Day)
	return &u, nil
}
