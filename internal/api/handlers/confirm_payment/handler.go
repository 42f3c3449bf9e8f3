package confirm_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
	confirmPayment "github.com/m04kA/SMC-MarketplaceService/internal/usecase/confirm_payment"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "отметить оплату может только поставщик предложения"
	msgAlreadyPaid      = "бронирование уже оплачено"
	msgNotConfirmed     = "бронирование еще не подтверждено"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/confirm-payment/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /confirm-payment/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /confirm-payment/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{BookingID: bookingID, Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmPayment.ErrAlreadyPaid):
			handlers.RespondBadRequest(w, msgAlreadyPaid)

		case errors.Is(err, confirmPayment.ErrNotConfirmed):
			handlers.RespondBadRequest(w, msgNotConfirmed)

		default:
			h.logger.Error("POST /confirm-payment/{id} - Failed to mark paid: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /confirm-payment/{id} - Booking paid: booking_id=%d, supplier_id=%d",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
