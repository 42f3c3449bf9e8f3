package get_available_units

import (
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	getAvailableUnits "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_units"
)

// UnitsResponse HTTP response model
type UnitsResponse struct {
	OfferID int64          `json:"offerId"`
	Kind    string         `json:"kind"`
	Day     *string        `json:"day,omitempty"`
	Units   []UnitResponse `json:"units"`
}

// UnitResponse единица инвентаря
type UnitResponse struct {
	ID       int64   `json:"id"`
	Day      string  `json:"day"`                // "2025-10-15"
	TimeFrom *string `json:"timeFrom,omitempty"` // "09:00", только активности
	TimeTo   *string `json:"timeTo,omitempty"`
	Stock    int     `json:"stock"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableUnits.Response) *UnitsResponse {
	result := &UnitsResponse{
		OfferID: resp.Offer.ID,
		Kind:    string(resp.Kind),
		Units:   make([]UnitResponse, 0, len(resp.Units)),
	}

	if resp.Day != nil {
		day := resp.Day.Format(domain.DateFormat)
		result.Day = &day
	}

	for _, unit := range resp.Units {
		u := UnitResponse{
			ID:    unit.ID,
			Day:   unit.Day.Format(domain.DateFormat),
			Stock: unit.Stock,
		}
		if unit.IsTimeSlot() {
			from, to := unit.TimeFrom.String(), unit.TimeTo.String()
			u.TimeFrom, u.TimeTo = &from, &to
		}
		result.Units = append(result.Units, u)
	}

	return result
}
