package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// OfferingRepository интерфейс репозитория предложений
type OfferingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
	List(ctx context.Context, filter domain.OfferingsFilter) ([]*domain.Offering, error)
	GetOffersByOfferingID(ctx context.Context, offeringID int64) ([]*domain.Offer, error)
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
