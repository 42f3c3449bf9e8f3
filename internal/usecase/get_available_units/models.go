package get_available_units

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модель запроса единиц инвентаря
type Request struct {
	OfferID int64
	Day     *time.Time // если задан - только единицы этого дня с ненулевым остатком
}

// Response модель ответа со списком единиц
type Response struct {
	Offer *domain.Offer
	Kind  domain.OfferingKind
	Day   *time.Time
	Units []*domain.InventoryUnit
}
