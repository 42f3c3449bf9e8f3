package offering

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

var offeringColumns = []string{
	"id",
	"supplier_id",
	"kind",
	"title",
	"description",
	"price",
	"available_from",
	"available_to",
	"days_off",
	"start_time",
	"end_time",
	"period",
	"created_at",
	"updated_at",
}

var offerColumns = []string{
	"id",
	"offering_id",
	"title",
	"price",
	"stock",
}

// Repository репозиторий предложений поставщиков и их ценовых вариантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория предложений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает предложение
// Использует транзакцию из контекста, если она есть
func (r *Repository) Create(ctx context.Context, o *domain.Offering) (*domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("offerings").
		Columns(
			"supplier_id",
			"kind",
			"title",
			"description",
			"price",
			"available_from",
			"available_to",
			"days_off",
			"start_time",
			"end_time",
			"period",
		).
		Values(
			o.SupplierID,
			o.Kind,
			o.Title,
			o.Description,
			o.Price,
			o.AvailableFrom,
			o.AvailableTo,
			o.DaysOff,
			o.StartTime,
			o.EndTime,
			o.Period,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return o, nil
}

// CreateOffer создает ценовой вариант предложения
func (r *Repository) CreateOffer(ctx context.Context, offer *domain.Offer) (*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("offers").
		Columns("offering_id", "title", "price", "stock").
		Values(offer.OfferingID, offer.Title, offer.Price, offer.Stock).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOffer - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&offer.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateOffer - execute insert: %v", ErrExecQuery, err)
	}

	return offer, nil
}

// GetByID получает предложение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offeringColumns...).
		From("offerings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOffering(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan offering: %v", ErrScanRow, err)
	}

	return o, nil
}

// GetByOfferID получает предложение, которому принадлежит ценовой вариант
// Используется для проверки владельца при переходах бронирования
func (r *Repository) GetByOfferID(ctx context.Context, offerID int64) (*domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, len(offeringColumns))
	for i, c := range offeringColumns {
		columns[i] = "o." + c
	}

	query, args, err := psqlbuilder.Select(columns...).
		From("offerings o").
		Join("offers f ON f.offering_id = o.id").
		Where(squirrel.Eq{"f.id": offerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOfferID - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOffering(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOfferID - scan offering: %v", ErrScanRow, err)
	}

	return o, nil
}

// List получает предложения по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.OfferingsFilter) ([]*domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(offeringColumns...).
		From("offerings").
		OrderBy("created_at DESC", "id DESC")

	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.SupplierID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"supplier_id": *filter.SupplierID})
	}
	if filter.AvailableOn != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"available_to": *filter.AvailableOn})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
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

	offerings := make([]*domain.Offering, 0)
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return offerings, nil
}

// CountBySupplier количество предложений поставщика
func (r *Repository) CountBySupplier(ctx context.Context, supplierID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("offerings").
		Where(squirrel.Eq{"supplier_id": supplierID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBySupplier - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySupplier - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetOfferByID получает ценовой вариант по ID
func (r *Repository) GetOfferByID(ctx context.Context, id int64) (*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offerColumns...).
		From("offers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfferByID - build select query: %v", ErrBuildQuery, err)
	}

	offer, err := scanOffer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfferByID - scan offer: %v", ErrScanRow, err)
	}

	return offer, nil
}

// GetOffersByOfferingID получает ценовые варианты предложения в порядке создания
func (r *Repository) GetOffersByOfferingID(ctx context.Context, offeringID int64) ([]*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offerColumns...).
		From("offers").
		Where(squirrel.Eq{"offering_id": offeringID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffersByOfferingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffersByOfferingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offers := make([]*domain.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOffersByOfferingID - scan row: %v", ErrScanRow, err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOffersByOfferingID - rows error: %v", ErrScanRow, err)
	}

	return offers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffering(row rowScanner) (*domain.Offering, error) {
	var (
		o                    domain.Offering
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&o.ID,
		&o.SupplierID,
		&o.Kind,
		&o.Title,
		&o.Description,
		&o.Price,
		&o.AvailableFrom,
		&o.AvailableTo,
		&o.DaysOff,
		&o.StartTime,
		&o.EndTime,
		&o.Period,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}

func scanOffer(row rowScanner) (*domain.Offer, error) {
	var offer domain.Offer
	if err := row.Scan(&offer.ID, &offer.OfferingID, &offer.Title, &offer.Price, &offer.Stock); err != nil {
		return nil, err
	}
	return &offer, nil
}
