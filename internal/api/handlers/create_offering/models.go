package create_offering

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
	createOffering "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_offering"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// CreateOfferingRequest HTTP request model
type CreateOfferingRequest struct {
	SupplierID    int64           `json:"supplierId"`
	Kind          string          `json:"kind"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	AvailableFrom string          `json:"availableFrom"` // "2025-10-15"
	AvailableTo   string          `json:"availableTo"`
	DaysOff       *string         `json:"daysOff,omitempty"`   // "Saturday, Sunday"
	StartTime     *string         `json:"startTime,omitempty"` // "09:00", только активности
	EndTime       *string         `json:"endTime,omitempty"`
	Period        int             `json:"period"` // минуты для активностей, дни для пакетов
	Offers        []OfferRequest  `json:"offers"`
}

// OfferRequest ценовой вариант
type OfferRequest struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// CreateOfferingResponse HTTP response model
type CreateOfferingResponse struct {
	models.OfferingResponse
	UnitsGenerated int64 `json:"unitsGenerated"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOfferingRequest) ToUseCaseRequest(actor domain.Actor) (*createOffering.Request, error) {
	from, err := time.Parse(domain.DateFormat, r.AvailableFrom)
	if err != nil {
		return nil, fmt.Errorf("availableFrom: %w", err)
	}
	to, err := time.Parse(domain.DateFormat, r.AvailableTo)
	if err != nil {
		return nil, fmt.Errorf("availableTo: %w", err)
	}

	req := &createOffering.Request{
		Actor:         actor,
		SupplierID:    r.SupplierID,
		Kind:          domain.OfferingKind(r.Kind),
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		AvailableFrom: from,
		AvailableTo:   to,
		DaysOff:       r.DaysOff,
		Period:        r.Period,
		Offers:        make([]createOffering.OfferInput, 0, len(r.Offers)),
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("startTime: %w", err)
		}
		req.StartTime = &startTime
	}
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
		req.EndTime = &endTime
	}

	for _, offer := range r.Offers {
		req.Offers = append(req.Offers, createOffering.OfferInput{
			Title: offer.Title,
			Price: offer.Price,
			Stock: offer.Stock,
		})
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOffering.Response) *CreateOfferingResponse {
	return &CreateOfferingResponse{
		OfferingResponse: *models.FromDomainOffering(resp.Offering, resp.Offers),
		UnitsGenerated:   resp.UnitsGenerated,
	}
}
