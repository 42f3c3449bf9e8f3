package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "ID бронирования должен быть положительным числом"
	msgNotFound         = "бронирование не найдено"
	msgUnauthorized     = "требуется заголовок X-User-ID"
	msgForbidden        = "бронирование доступно только клиенту-владельцу или поставщику предложения"
)

// Handler карточка бронирования для клиента, поставщика или администратора
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id} - Bad booking id %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - No actor in context: booking_id=%d", bookingID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, actor)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id} - Unknown booking: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - Not owner: booking_id=%d, user_id=%d, role=%s",
			bookingID, actor.UserID, actor.Role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	default:
		h.logger.Error("GET /bookings/{id} - Lookup failed: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking: booking_id=%d, offer_id=%d, kind=%s, state=%s, viewer=%s:%d",
		booking.ID, booking.OfferID, booking.Kind, booking.State, actor.Role, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
