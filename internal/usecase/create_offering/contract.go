package create_offering

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// OfferingRepository интерфейс репозитория предложений
type OfferingRepository interface {
	Create(ctx context.Context, o *domain.Offering) (*domain.Offering, error)
	CreateOffer(ctx context.Context, offer *domain.Offer) (*domain.Offer, error)
}

// InventoryRepository интерфейс репозитория инвентаря
type InventoryRepository interface {
	GetOrCreate(ctx context.Context, units []*domain.InventoryUnit) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики генерации
type Metrics interface {
	RecordUnitsGenerated(kind string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
