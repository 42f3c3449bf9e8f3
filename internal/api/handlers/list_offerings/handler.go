package list_offerings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

const (
	msgInvalidLimit  = "некорректный параметр limit"
	msgInvalidFilter = "некорректный тип предложения, ожидается activity, tour или package"
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

// Handle GET /api/v1/offerings?kind=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListOfferingsRequest{}
	if kind := query.Get("kind"); kind != "" {
		req.Kind = &kind
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			h.logger.Warn("GET /offerings - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("GET /offerings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /offerings - Failed to list offerings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /offerings - Offerings retrieved: count=%d", len(result.Offerings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
