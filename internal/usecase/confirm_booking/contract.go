package confirm_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkConfirmed(ctx context.Context, id int64, ticket string) error
}

// OfferingRepository интерфейс репозитория предложений
type OfferingRepository interface {
	GetByOfferID(ctx context.Context, offerID int64) (*domain.Offering, error)
}

// InventoryRepository интерфейс репозитория инвентаря
type InventoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InventoryUnit, error)
	GetRange(ctx context.Context, offerID int64, from, to time.Time) ([]*domain.InventoryUnit, error)
	DecrementStock(ctx context.Context, id int64, quantity int) error
}

// TicketGenerator выпускает токены билетов
type TicketGenerator interface {
	Generate() string
}

// Notifier отправляет уведомления пользователям
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, message string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики переходов бронирования
type Metrics interface {
	RecordBookingTransition(transition, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
