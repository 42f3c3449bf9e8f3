package confirm_payment

import "github.com/m04kA/SMC-MarketplaceService/internal/domain"

// Request модель запроса на отметку оплаты
type Request struct {
	BookingID int64
	Actor     domain.Actor
}

// Response оплаченное бронирование
type Response struct {
	Booking *domain.Booking
}

// Options настройки перехода
type Options struct {
	// RequireConfirmation оплата только после подтверждения
	RequireConfirmation bool
}
