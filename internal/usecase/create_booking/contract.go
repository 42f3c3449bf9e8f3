package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// OfferingRepository интерфейс репозитория предложений
type OfferingRepository interface {
	GetByOfferID(ctx context.Context, offerID int64) (*domain.Offering, error)
}

// InventoryRepository интерфейс репозитория инвентаря
type InventoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InventoryUnit, error)
	GetRange(ctx context.Context, offerID int64, from, to time.Time) ([]*domain.InventoryUnit, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
