package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	createBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OfferID   int64   `json:"offerId"`
	UnitID    *int64  `json:"unitId,omitempty"`    // активность, тур
	StartDate *string `json:"startDate,omitempty"` // "2025-10-15", пакет
	Quantity  int     `json:"quantity"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	req := &createBooking.Request{
		Actor:    actor,
		OfferID:  r.OfferID,
		UnitID:   r.UnitID,
		Quantity: r.Quantity,
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	return req, nil
}
