package create_offering

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	createOffering "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_offering"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFormat      = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgInvalidOffering    = "некорректные параметры предложения"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "создавать предложения может только администратор или сам поставщик"
)

type Handler struct {
	useCase CreateOfferingUseCase
	logger  Logger
}

func NewHandler(useCase CreateOfferingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/offerings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/offerings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateOfferingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/offerings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /admin/offerings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createOffering.ErrInvalidInput):
			h.logger.Warn("POST /admin/offerings - Invalid offering: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidOffering+": "+err.Error())

		case errors.Is(err, createOffering.ErrForbidden):
			h.logger.Warn("POST /admin/offerings - Forbidden: user_id=%d, supplier_id=%d", actor.UserID, req.SupplierID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /admin/offerings - Failed to create offering: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/offerings - Offering created: offering_id=%d, units=%d",
		result.Offering.ID, result.UnitsGenerated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
