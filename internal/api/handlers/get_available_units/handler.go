package get_available_units

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	getAvailableUnits "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_units"
)

const (
	msgInvalidOfferID = "некорректный ID ценового варианта"
	msgInvalidDay     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound       = "ценовой вариант не найден"
)

type Handler struct {
	useCase GetAvailableUnitsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableUnitsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/offers/{offerId}/units?day=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	offerID, err := strconv.ParseInt(mux.Vars(r)["offerId"], 10, 64)
	if err != nil || offerID <= 0 {
		h.logger.Warn("GET /offers/{id}/units - Invalid offer ID: %s", mux.Vars(r)["offerId"])
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	req := &getAvailableUnits.Request{OfferID: offerID}
	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		day, err := time.Parse(domain.DateFormat, dayStr)
		if err != nil {
			h.logger.Warn("GET /offers/{id}/units - Invalid day: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDay)
			return
		}
		req.Day = &day
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableUnits.ErrOfferNotFound):
			h.logger.Warn("GET /offers/{id}/units - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getAvailableUnits.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidOfferID)

		default:
			h.logger.Error("GET /offers/{id}/units - Failed to get units: offer_id=%d, error=%v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offers/{id}/units - Units retrieved: offer_id=%d, count=%d", offerID, len(result.Units))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
