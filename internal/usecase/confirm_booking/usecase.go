package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	inventoryRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/inventory"
)

const transition = "confirm"

// UseCase подтверждение бронирования поставщиком со списанием остатка
// Один переход для всех типов предложений
type UseCase struct {
	bookingRepo   BookingRepository
	offeringRepo  OfferingRepository
	inventoryRepo InventoryRepository
	tickets       TicketGenerator
	notifier      Notifier
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	offeringRepo OfferingRepository,
	inventoryRepo InventoryRepository,
	tickets TicketGenerator,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		offeringRepo:  offeringRepo,
		inventoryRepo: inventoryRepo,
		tickets:       tickets,
		notifier:      notifier,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute подтверждает бронирование
// Бронирование и все затронутые единицы блокируются до конца транзакции,
// списание идет условным UPDATE, поэтому остаток не уходит в минус при конкурентных подтверждениях
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%d, actor=%d", req.BookingID, req.Actor.UserID)

	var (
		booking  *domain.Booking
		offering *domain.Offering
		units    []*domain.InventoryUnit
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем бронирование
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Только поставщик-владелец
		offering, err = uc.offeringRepo.GetByOfferID(txCtx, booking.OfferID)
		if err != nil {
			return fmt.Errorf("%w: failed to get offering for offer id=%d: %v", ErrInternal, booking.OfferID, err)
		}
		if !req.Actor.OwnsOffering(offering) {
			return fmt.Errorf("%w: user id=%d does not own offering id=%d", ErrForbidden, req.Actor.UserID, offering.ID)
		}

		// 3. Повторное подтверждение запрещено для всех типов
		if err := booking.CanConfirm(); err != nil {
			return ErrAlreadyConfirmed
		}

		// 4. Блокируем затронутые единицы
		units, err = uc.lockUnits(txCtx, booking, offering)
		if err != nil {
			return err
		}

		// 5. Проверяем остаток на всех единицах до любых изменений
		if short := domain.FirstShortUnit(units, booking.Quantity); short != nil {
			return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, short.Label(), short.Stock, booking.Quantity)
		}

		// 6. Условное списание
		for _, unit := range units {
			if err := uc.inventoryRepo.DecrementStock(txCtx, unit.ID, booking.Quantity); err != nil {
				if errors.Is(err, inventoryRepo.ErrInsufficientStock) {
					return fmt.Errorf("%w: %s", ErrInsufficientStock, unit.Label())
				}
				return fmt.Errorf("%w: failed to decrement unit id=%d: %v", ErrInternal, unit.ID, err)
			}
			unit.Stock -= booking.Quantity
		}

		// 7. Билет и подтверждение
		ticket := uc.tickets.Generate()
		if err := uc.bookingRepo.MarkConfirmed(txCtx, booking.ID, ticket); err != nil {
			return fmt.Errorf("%w: failed to mark booking confirmed: %v", ErrInternal, err)
		}
		booking.Confirmed = true
		booking.Ticket = &ticket

		return nil
	})
	if err != nil {
		uc.metrics.RecordBookingTransition(transition, resultLabel(err))
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ConfirmBooking: booking=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("ConfirmBooking: booking=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.metrics.RecordBookingTransition(transition, "ok")
	uc.logger.Info("ConfirmBooking: booking=%d confirmed, units=%d, quantity=%d",
		booking.ID, len(units), booking.Quantity)

	// 8. Уведомление после коммита, ошибка не отменяет подтверждение
	message := fmt.Sprintf("Бронирование #%d на «%s» подтверждено", booking.ID, offering.Title)
	if err := uc.notifier.Notify(ctx, booking.CustomerID, message); err != nil {
		uc.logger.Warn("ConfirmBooking: failed to notify customer=%d: %v", booking.CustomerID, err)
	}

	return &Response{Booking: booking, Units: units}, nil
}

// lockUnits единица бронирования (активность, тур) или диапазон дней пакета в порядке (day, id)
func (uc *UseCase) lockUnits(ctx context.Context, booking *domain.Booking, offering *domain.Offering) ([]*domain.InventoryUnit, error) {
	if booking.Kind == domain.KindPackage {
		from, to, err := booking.ImplicatedDays(offering)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		units, err := uc.inventoryRepo.GetRange(ctx, booking.OfferID, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to lock package units: %v", ErrInternal, err)
		}
		if len(units) == 0 {
			return nil, fmt.Errorf("%w: no inventory between %s and %s",
				ErrInsufficientStock, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
		}
		return units, nil
	}

	if booking.UnitID == nil {
		return nil, fmt.Errorf("%w: %v: booking id=%d has no unit", ErrInternal, domain.ErrInvalidBooking, booking.ID)
	}

	unit, err := uc.inventoryRepo.GetByID(ctx, *booking.UnitID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to lock unit id=%d: %v", ErrInternal, *booking.UnitID, err)
	}
	if unit.OfferID != booking.OfferID {
		return nil, fmt.Errorf("%w: %v: unit id=%d belongs to offer id=%d", ErrInternal, domain.ErrInvalidBooking, unit.ID, unit.OfferID)
	}

	return []*domain.InventoryUnit{unit}, nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrAlreadyConfirmed):
		return "already_confirmed"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrBookingNotFound):
		return "not_found"
	default:
		return "error"
	}
}
