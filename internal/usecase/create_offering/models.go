package create_offering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// Request модель запроса на создание предложения с ценовыми вариантами
type Request struct {
	Actor domain.Actor `validate:"-"`

	SupplierID    int64               `validate:"required,gt=0"`
	Kind          domain.OfferingKind `validate:"required,oneof=activity tour package"`
	Title         string              `validate:"required,max=255"`
	Description   string
	Price         decimal.Decimal
	AvailableFrom time.Time `validate:"required"`
	AvailableTo   time.Time `validate:"required"`
	DaysOff       *string   `validate:"omitempty,max=255"`
	StartTime     *types.TimeString
	EndTime       *types.TimeString
	Period        int `validate:"gte=0"`

	Offers []OfferInput `validate:"required,min=1,dive"`
}

// OfferInput ценовой вариант с шаблоном остатка
type OfferInput struct {
	Title string `validate:"required,max=255"`
	Price decimal.Decimal
	Stock int `validate:"gte=0"`
}

// Response созданное предложение
type Response struct {
	Offering       *domain.Offering
	Offers         []*domain.Offer
	UnitsGenerated int64
}
