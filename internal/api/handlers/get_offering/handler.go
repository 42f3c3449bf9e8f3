package get_offering

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog"
)

const (
	msgInvalidOfferingID = "некорректный ID предложения"
	msgNotFound          = "предложение не найдено"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/offerings/{offeringId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	offeringID, err := strconv.ParseInt(mux.Vars(r)["offeringId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /offerings/{id} - Invalid offering ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferingID)
		return
	}

	offering, err := h.service.GetByID(r.Context(), offeringID)
	if err != nil {
		if errors.Is(err, catalog.ErrOfferingNotFound) {
			h.logger.Warn("GET /offerings/{id} - Offering not found: offering_id=%d", offeringID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /offerings/{id} - Failed to get offering: offering_id=%d, error=%v", offeringID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /offerings/{id} - Offering retrieved: offering_id=%d", offeringID)
	handlers.RespondJSON(w, http.StatusOK, offering)
}
