package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
)

const transition = "pay"

// UseCase отметка оплаты бронирования поставщиком
type UseCase struct {
	bookingRepo  BookingRepository
	offeringRepo OfferingRepository
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	options      Options
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	offeringRepo OfferingRepository,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	options Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		offeringRepo: offeringRepo,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		options:      options,
		logger:       logger,
	}
}

// Execute отмечает бронирование оплаченным
// Остаток инвентаря не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, actor=%d", req.BookingID, req.Actor.UserID)

	var (
		booking  *domain.Booking
		offering *domain.Offering
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

		// 3. Проверка перехода
		if err := booking.CanPay(uc.options.RequireConfirmation); err != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadyPaid):
				return ErrAlreadyPaid
			case errors.Is(err, domain.ErrNotConfirmed):
				return ErrNotConfirmed
			default:
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		// 4. Отмечаем оплату
		if err := uc.bookingRepo.MarkPaid(txCtx, booking.ID); err != nil {
			return fmt.Errorf("%w: failed to mark booking paid: %v", ErrInternal, err)
		}
		booking.Paid = true

		return nil
	})
	if err != nil {
		uc.metrics.RecordBookingTransition(transition, resultLabel(err))
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ConfirmPayment: booking=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("ConfirmPayment: booking=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.metrics.RecordBookingTransition(transition, "ok")
	uc.logger.Info("ConfirmPayment: booking=%d paid", booking.ID)

	// 5. Уведомляем клиента и поставщика после коммита
	message := fmt.Sprintf("Бронирование #%d на «%s» оплачено", booking.ID, offering.Title)
	for _, recipient := range []int64{booking.CustomerID, offering.SupplierID} {
		if err := uc.notifier.Notify(ctx, recipient, message); err != nil {
			uc.logger.Warn("ConfirmPayment: failed to notify user=%d: %v", recipient, err)
		}
	}

	return &Response{Booking: booking}, nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, ErrNotConfirmed):
		return "not_confirmed"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrBookingNotFound):
		return "not_found"
	default:
		return "error"
	}
}
