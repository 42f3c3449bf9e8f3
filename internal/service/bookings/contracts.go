package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	SupplierStats(ctx context.Context, supplierID int64, monthStart time.Time) (*domain.SupplierDashboard, error)
}

// OfferingRepository интерфейс репозитория предложений
type OfferingRepository interface {
	GetByOfferID(ctx context.Context, offerID int64) (*domain.Offering, error)
	CountBySupplier(ctx context.Context, supplierID int64) (int, error)
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
