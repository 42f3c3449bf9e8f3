package confirm_booking

import "github.com/m04kA/SMC-MarketplaceService/internal/domain"

// Request модель запроса на подтверждение бронирования
type Request struct {
	BookingID int64
	Actor     domain.Actor
}

// Response подтвержденное бронирование и списанные единицы
type Response struct {
	Booking *domain.Booking
	Units   []*domain.InventoryUnit // остатки после списания
}
