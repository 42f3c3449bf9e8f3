package get_available_units

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	offeringRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/offering"
)

// UseCase use case для получения единиц инвентаря ценового варианта
type UseCase struct {
	offeringRepo  OfferingRepository
	inventoryRepo InventoryRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	offeringRepo OfferingRepository,
	inventoryRepo InventoryRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		offeringRepo:  offeringRepo,
		inventoryRepo: inventoryRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute возвращает единицы инвентаря
// С днем - доступные слоты активности (stock > 0), без дня - все предстоящие единицы
// Для прошедшего дня возвращается пустой список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.OfferID <= 0 {
		return nil, fmt.Errorf("%w: offer id must be positive", ErrInvalidInput)
	}

	// 2. Получаем ценовой вариант и тип предложения
	offer, err := uc.offeringRepo.GetOfferByID(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrOfferNotFound) {
			uc.logger.Warn("GetAvailableUnits: offer id=%d not found", req.OfferID)
			return nil, ErrOfferNotFound
		}
		uc.logger.Error("GetAvailableUnits: failed to get offer id=%d: %v", req.OfferID, err)
		return nil, fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
	}

	offering, err := uc.offeringRepo.GetByID(ctx, offer.OfferingID)
	if err != nil {
		uc.logger.Error("GetAvailableUnits: failed to get offering id=%d: %v", offer.OfferingID, err)
		return nil, fmt.Errorf("%w: failed to get offering: %v", ErrInternal, err)
	}

	resp := &Response{Offer: offer, Kind: offering.Kind}

	// 3. Запрашиваем инвентарь, прошедшие дни не отдаем
	today := domain.DateOnly(uc.timeProvider.Now())
	switch {
	case req.Day == nil:
		resp.Units, err = uc.inventoryRepo.ListUpcoming(ctx, offer.ID, today)
	case domain.DateOnly(*req.Day).Before(today):
		day := domain.DateOnly(*req.Day)
		resp.Day = &day
		resp.Units = []*domain.InventoryUnit{}
	default:
		day := domain.DateOnly(*req.Day)
		resp.Day = &day
		resp.Units, err = uc.inventoryRepo.ListAvailable(ctx, offer.ID, day)
	}
	if err != nil {
		uc.logger.Error("GetAvailableUnits: failed to list units for offer id=%d: %v", offer.ID, err)
		return nil, fmt.Errorf("%w: failed to list units: %v", ErrInternal, err)
	}

	return resp, nil
}
