package get_available_units

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// OfferingRepository интерфейс репозитория предложений
type OfferingRepository interface {
	GetOfferByID(ctx context.Context, id int64) (*domain.Offer, error)
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
}

// InventoryRepository интерфейс репозитория инвентаря
type InventoryRepository interface {
	// ListAvailable единицы варианта на день с остатком > 0
	ListAvailable(ctx context.Context, offerID int64, day time.Time) ([]*domain.InventoryUnit, error)
	// ListUpcoming все единицы варианта начиная с from независимо от остатка
	ListUpcoming(ctx context.Context, offerID int64, from time.Time) ([]*domain.InventoryUnit, error)
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
