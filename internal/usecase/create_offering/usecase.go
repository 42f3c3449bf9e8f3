package create_offering

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// UseCase use case создания предложения с генерацией инвентаря
type UseCase struct {
	offeringRepo  OfferingRepository
	inventoryRepo InventoryRepository
	txManager     TransactionManager
	metrics       Metrics
	options       GenerateOptions
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	offeringRepo OfferingRepository,
	inventoryRepo InventoryRepository,
	txManager TransactionManager,
	metrics Metrics,
	options GenerateOptions,
	logger Logger,
) *UseCase {
	return &UseCase{
		offeringRepo:  offeringRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		metrics:       metrics,
		options:       options,
		logger:        logger,
	}
}

// Execute создает предложение, его ценовые варианты и единицы инвентаря в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOffering: actor=%d, supplier=%d, kind=%s, offers=%d",
		req.Actor.UserID, req.SupplierID, req.Kind, len(req.Offers))

	// 1. Права исполнителя
	if err := checkAccess(req); err != nil {
		uc.logger.Warn("CreateOffering: %v", err)
		return nil, err
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOffering: validation failed: %v", err)
		return nil, err
	}

	offering := buildOffering(req)
	result := &Response{}

	// 3. Предложение, варианты и инвентарь создаются атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.offeringRepo.Create(txCtx, offering)
		if err != nil {
			uc.logger.Error("CreateOffering: failed to create offering: %v", err)
			return fmt.Errorf("%w: failed to create offering: %v", ErrInternal, err)
		}

		offers := make([]*domain.Offer, 0, len(req.Offers))
		for _, input := range req.Offers {
			offer, err := uc.offeringRepo.CreateOffer(txCtx, &domain.Offer{
				OfferingID: created.ID,
				Title:      input.Title,
				Price:      input.Price,
				Stock:      input.Stock,
			})
			if err != nil {
				uc.logger.Error("CreateOffering: failed to create offer for offering id=%d: %v", created.ID, err)
				return fmt.Errorf("%w: failed to create offer: %v", ErrInternal, err)
			}
			offers = append(offers, offer)
		}

		// 3.1. Генерация единиц инвентаря
		units, err := GenerateUnits(created.Kind, created.Window(), offers, uc.options)
		if err != nil {
			uc.logger.Error("CreateOffering: generation failed for offering id=%d: %v", created.ID, err)
			return err
		}

		inserted, err := uc.inventoryRepo.GetOrCreate(txCtx, units)
		if err != nil {
			uc.logger.Error("CreateOffering: failed to persist %d units: %v", len(units), err)
			return fmt.Errorf("%w: failed to persist inventory: %v", ErrInternal, err)
		}

		result.Offering = created
		result.Offers = offers
		result.UnitsGenerated = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordUnitsGenerated(string(result.Offering.Kind), int(result.UnitsGenerated))
	uc.logger.Info("CreateOffering: created offering id=%d with %d offers and %d units",
		result.Offering.ID, len(result.Offers), result.UnitsGenerated)

	return result, nil
}

func buildOffering(req *Request) *domain.Offering {
	o := &domain.Offering{
		SupplierID:    req.SupplierID,
		Kind:          req.Kind,
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		AvailableFrom: domain.DateOnly(req.AvailableFrom),
		AvailableTo:   domain.DateOnly(req.AvailableTo),
		DaysOff:       req.DaysOff,
		Period:        req.Period,
	}

	switch req.Kind {
	case domain.KindActivity:
		o.StartTime = req.StartTime
		o.EndTime = req.EndTime
	case domain.KindTour:
		o.Period = 0
	}

	return o
}
