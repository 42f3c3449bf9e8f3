package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor     domain.Actor `validate:"-"`
	OfferID   int64        `validate:"required,gt=0"`
	UnitID    *int64       `validate:"omitempty,gt=0"` // активность, тур
	StartDate *time.Time   // пакет
	Quantity  int          `validate:"required,gt=0,lte=1000"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking  *domain.Booking
	Offering *domain.Offering
}
