package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	inventoryRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/inventory"
	offeringRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/offering"
)

// UseCase создание бронирования клиентом
type UseCase struct {
	bookingRepo   BookingRepository
	offeringRepo  OfferingRepository
	inventoryRepo InventoryRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	offeringRepo OfferingRepository,
	inventoryRepo InventoryRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		offeringRepo:  offeringRepo,
		inventoryRepo: inventoryRepo,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute создает бронирование в состоянии pending
// Остаток не резервируется: он списывается только при подтверждении поставщиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, offer=%d, quantity=%d", req.Actor.UserID, req.OfferID, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем предложение по ценовому варианту
	offering, err := uc.offeringRepo.GetByOfferID(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrOfferNotFound) {
			return nil, fmt.Errorf("%w: offer id=%d", ErrOfferNotFound, req.OfferID)
		}
		uc.logger.Error("CreateBooking: failed to get offering for offer=%d: %v", req.OfferID, err)
		return nil, fmt.Errorf("%w: failed to get offering: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if offering.IsExpired(now) {
		return nil, fmt.Errorf("%w: offering id=%d ended %s", ErrOfferingExpired, offering.ID, offering.AvailableTo.Format(domain.DateFormat))
	}

	// 3. Проверяем объект бронирования
	if err := validateTarget(req, offering.Kind); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	booking := &domain.Booking{
		Kind:       offering.Kind,
		CustomerID: req.Actor.UserID,
		OfferID:    req.OfferID,
		Quantity:   req.Quantity,
	}

	if offering.Kind == domain.KindPackage {
		startDate := domain.DateOnly(*req.StartDate)
		if err := uc.checkPackage(ctx, offering, req.OfferID, startDate, req.Quantity, now); err != nil {
			return nil, err
		}
		booking.StartDate = &startDate
	} else {
		if err := uc.checkUnit(ctx, req.OfferID, *req.UnitID, req.Quantity, now); err != nil {
			return nil, err
		}
		booking.UnitID = req.UnitID
	}

	// 4. Сохраняем бронирование
	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d, kind=%s", created.ID, created.Kind)

	return &Response{Booking: created, Offering: offering}, nil
}

// checkUnit проверяет единицу инвентаря активности или тура
// Проверка остатка предварительная, окончательно его проверяет подтверждение
func (uc *UseCase) checkUnit(ctx context.Context, offerID, unitID int64, quantity int, now time.Time) error {
	unit, err := uc.inventoryRepo.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, inventoryRepo.ErrUnitNotFound) {
			return fmt.Errorf("%w: unit id=%d", ErrUnitNotFound, unitID)
		}
		uc.logger.Error("CreateBooking: failed to get unit=%d: %v", unitID, err)
		return fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
	}

	if unit.OfferID != offerID {
		return fmt.Errorf("%w: unit id=%d belongs to offer id=%d", ErrUnitNotFound, unitID, unit.OfferID)
	}

	if err := validateDay(unit.Day, now); err != nil {
		return err
	}

	if !unit.HasStock(quantity) {
		return fmt.Errorf("%w: %s has %d left, requested %d", ErrInsufficientStock, unit.Label(), unit.Stock, quantity)
	}

	return nil
}

// checkPackage проверяет, что все дни пакета существуют и на них хватает остатка
func (uc *UseCase) checkPackage(ctx context.Context, offering *domain.Offering, offerID int64, startDate time.Time, quantity int, now time.Time) error {
	if err := validateDay(startDate, now); err != nil {
		return err
	}

	endDate := offering.PackageEndDate(startDate)
	if startDate.Before(domain.DateOnly(offering.AvailableFrom)) || endDate.After(domain.DateOnly(offering.AvailableTo)) {
		return fmt.Errorf("%w: package %s..%s is outside availability window", ErrInvalidDate,
			startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))
	}

	units, err := uc.inventoryRepo.GetRange(ctx, offerID, startDate, endDate)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get package units for offer=%d: %v", offerID, err)
		return fmt.Errorf("%w: failed to get package units: %v", ErrInternal, err)
	}

	if len(units) == 0 {
		return fmt.Errorf("%w: no inventory for package starting %s", ErrInsufficientStock, startDate.Format(domain.DateFormat))
	}

	if short := domain.FirstShortUnit(units, quantity); short != nil {
		return fmt.Errorf("%w: %s has %d left, requested %d", ErrInsufficientStock, short.Label(), short.Stock, quantity)
	}

	return nil
}
