package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// ListOfferingsRequest запрос каталога
type ListOfferingsRequest struct {
	Kind  *string `json:"kind,omitempty"`
	Limit int     `json:"limit,omitempty"` // 0 - значение по умолчанию
}

// OfferResponse ценовой вариант
type OfferResponse struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// OfferingResponse предложение поставщика
type OfferingResponse struct {
	ID            int64           `json:"id"`
	SupplierID    int64           `json:"supplierId"`
	Kind          string          `json:"kind"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	AvailableFrom string          `json:"availableFrom"` // "2025-10-15"
	AvailableTo   string          `json:"availableTo"`
	DaysOff       *string         `json:"daysOff,omitempty"`
	StartTime     *string         `json:"startTime,omitempty"` // "09:00", только активности
	EndTime       *string         `json:"endTime,omitempty"`
	Period        int             `json:"period,omitempty"`
	Offers        []OfferResponse `json:"offers,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// OfferingListResponse список предложений
type OfferingListResponse struct {
	Offerings []OfferingResponse `json:"offerings"`
}

// Методы конвертации

// FromDomainOffering конвертирует domain модель в DTO
func FromDomainOffering(o *domain.Offering, offers []*domain.Offer) *OfferingResponse {
	if o == nil {
		return nil
	}

	resp := &OfferingResponse{
		ID:            o.ID,
		SupplierID:    o.SupplierID,
		Kind:          string(o.Kind),
		Title:         o.Title,
		Description:   o.Description,
		Price:         o.Price,
		AvailableFrom: o.AvailableFrom.Format(domain.DateFormat),
		AvailableTo:   o.AvailableTo.Format(domain.DateFormat),
		DaysOff:       o.DaysOff,
		Period:        o.Period,
		CreatedAt:     o.CreatedAt,
	}

	if o.StartTime != nil {
		startTime := o.StartTime.String()
		resp.StartTime = &startTime
	}
	if o.EndTime != nil {
		endTime := o.EndTime.String()
		resp.EndTime = &endTime
	}

	for _, offer := range offers {
		resp.Offers = append(resp.Offers, OfferResponse{
			ID:    offer.ID,
			Title: offer.Title,
			Price: offer.Price,
			Stock: offer.Stock,
		})
	}

	return resp
}

// FromDomainOfferingList конвертирует список предложений без вариантов
func FromDomainOfferingList(offerings []*domain.Offering) *OfferingListResponse {
	resp := &OfferingListResponse{
		Offerings: make([]OfferingResponse, 0, len(offerings)),
	}
	for _, o := range offerings {
		resp.Offerings = append(resp.Offerings, *FromDomainOffering(o, nil))
	}
	return resp
}
