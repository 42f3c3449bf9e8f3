package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	offeringRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/offering"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

// Service сервис публичного каталога предложений
type Service struct {
	offeringRepo OfferingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(offeringRepo OfferingRepository, logger Logger) *Service {
	return &Service{
		offeringRepo: offeringRepo,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// List возвращает еще доступные предложения (available_to >= сегодня), новые первыми
func (s *Service) List(ctx context.Context, req *models.ListOfferingsRequest) (*models.OfferingListResponse, error) {
	s.logger.Info("List: kind=%v, limit=%d", req.Kind, req.Limit)

	today := domain.DateOnly(s.timeProvider.Now())
	filter := domain.OfferingsFilter{
		AvailableOn: &today,
		Limit:       domain.DefaultListLimit,
	}

	if req.Kind != nil {
		kind := domain.OfferingKind(*req.Kind)
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, *req.Kind)
		}
		filter.Kind = &kind
	}

	switch {
	case req.Limit < 0:
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	case req.Limit > domain.MaxListLimit:
		filter.Limit = domain.MaxListLimit
	case req.Limit > 0:
		filter.Limit = req.Limit
	}

	offerings, err := s.offeringRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOfferingList(offerings), nil
}

// GetByID возвращает предложение вместе с ценовыми вариантами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.OfferingResponse, error) {
	s.logger.Info("GetByID: offering id=%d", id)

	offering, err := s.offeringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrOfferingNotFound) {
			s.logger.Warn("GetByID: offering id=%d not found", id)
			return nil, ErrOfferingNotFound
		}
		s.logger.Error("GetByID: repository error for offering id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	offers, err := s.offeringRepo.GetOffersByOfferingID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get offers for offering id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - offers: %v", ErrInternal, err)
	}

	return models.FromDomainOffering(offering, offers), nil
}
