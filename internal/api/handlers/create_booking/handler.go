package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты начала, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "бронировать может только клиент"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgOfferNotFound      = "ценовой вариант не найден"
	msgUnitNotFound       = "единица инвентаря не найдена"
	msgOfferingExpired    = "предложение больше не доступно"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgInsufficientStock  = "недостаточно мест"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /bookings - Forbidden: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrOfferNotFound):
			h.logger.Warn("POST /bookings - Offer not found: offer_id=%d", req.OfferID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, createBooking.ErrUnitNotFound):
			h.logger.Warn("POST /bookings - Unit not found: offer_id=%d, unit_id=%v", req.OfferID, req.UnitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrOfferingExpired):
			handlers.RespondBadRequest(w, msgOfferingExpired)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInsufficientStock):
			h.logger.Warn("POST /bookings - Insufficient stock: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInsufficientStock)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, offer_id=%d, error=%v",
				actor.UserID, req.OfferID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, offer_id=%d",
		result.Booking.ID, actor.UserID, req.OfferID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
