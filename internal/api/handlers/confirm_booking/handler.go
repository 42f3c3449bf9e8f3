package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
	confirmBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/confirm_booking"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "бронирование не найдено"
	msgForbidden         = "подтвердить бронирование может только поставщик предложения"
	msgAlreadyConfirmed  = "бронирование уже подтверждено"
	msgInsufficientStock = "недостаточно мест"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/confirm-booking/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /confirm-booking/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /confirm-booking/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{BookingID: bookingID, Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmBooking.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmBooking.ErrAlreadyConfirmed):
			handlers.RespondBadRequest(w, msgAlreadyConfirmed)

		case errors.Is(err, confirmBooking.ErrInsufficientStock):
			h.logger.Warn("POST /confirm-booking/{id} - Insufficient stock: booking_id=%d, %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInsufficientStock+": "+stockDetails(err))

		default:
			h.logger.Error("POST /confirm-booking/{id} - Failed to confirm: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /confirm-booking/{id} - Booking confirmed: booking_id=%d, supplier_id=%d",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}

// stockDetails единица, на которой не хватило остатка, без префикса ошибки
func stockDetails(err error) string {
	return strings.TrimPrefix(err.Error(), confirmBooking.ErrInsufficientStock.Error()+": ")
}
