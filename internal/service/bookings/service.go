package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
)

// Service сервис чтения журнала бронирований
type Service struct {
	bookingRepo  BookingRepository
	offeringRepo OfferingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	offeringRepo OfferingRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		offeringRepo: offeringRepo,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может клиент-владелец, поставщик-владелец предложения или администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, booking, actor); err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по состоянию
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, state=%v", req.Actor.UserID, req.State)

	if !req.Actor.IsCustomer() {
		return nil, fmt.Errorf("%w: user id=%d is not a customer", ErrAccessDenied, req.Actor.UserID)
	}

	filter := domain.BookingsFilter{CustomerID: &req.Actor.UserID}
	if req.State != nil {
		state, err := models.ToDomainBookingState(*req.State)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.State = &state
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.Actor.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSupplierBookings получает бронирования на предложения поставщика
// Поддерживает фильтрацию по состоянию и типу предложения
func (s *Service) GetSupplierBookings(ctx context.Context, req *models.GetSupplierBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSupplierBookings: fetching bookings for supplier=%d, state=%v, kind=%v", req.Actor.UserID, req.State, req.Kind)

	if !req.Actor.IsSupplier() {
		return nil, fmt.Errorf("%w: user id=%d is not a supplier", ErrAccessDenied, req.Actor.UserID)
	}

	filter := domain.BookingsFilter{SupplierID: &req.Actor.UserID}
	if req.State != nil {
		state, err := models.ToDomainBookingState(*req.State)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.State = &state
	}
	if req.Kind != nil {
		kind, err := models.ToDomainOfferingKind(*req.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Kind = &kind
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetSupplierBookings: repository error for supplier=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: GetSupplierBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSupplierBookings: fetched %d bookings for supplier=%d", len(bookings), req.Actor.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetDashboard сводка продаж поставщика за все время и за текущий месяц
func (s *Service) GetDashboard(ctx context.Context, actor domain.Actor) (*models.DashboardResponse, error) {
	s.logger.Info("GetDashboard: supplier=%d", actor.UserID)

	if !actor.IsSupplier() {
		return nil, fmt.Errorf("%w: user id=%d is not a supplier", ErrAccessDenied, actor.UserID)
	}

	stats, err := s.bookingRepo.SupplierStats(ctx, actor.UserID, monthStart(s.timeProvider.Now()))
	if err != nil {
		s.logger.Error("GetDashboard: failed to get stats for supplier=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetDashboard - stats: %v", ErrInternal, err)
	}

	stats.OfferingsCount, err = s.offeringRepo.CountBySupplier(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("GetDashboard: failed to count offerings for supplier=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetDashboard - count offerings: %v", ErrInternal, err)
	}

	return models.FromDomainDashboard(stats), nil
}

// Вспомогательные методы

// checkAccess проверяет доступ исполнителя к бронированию
func (s *Service) checkAccess(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	if actor.IsAdmin() || (actor.IsCustomer() && booking.CustomerID == actor.UserID) {
		return nil
	}

	if !actor.IsSupplier() {
		s.logger.Warn("checkAccess: user=%d denied access to booking id=%d", actor.UserID, booking.ID)
		return ErrAccessDenied
	}

	offering, err := s.offeringRepo.GetByOfferID(ctx, booking.OfferID)
	if err != nil {
		s.logger.Error("checkAccess: failed to get offering for offer=%d: %v", booking.OfferID, err)
		return fmt.Errorf("%w: checkAccess - failed to get offering: %v", ErrInternal, err)
	}

	if !actor.OwnsOffering(offering) {
		s.logger.Warn("checkAccess: supplier=%d is not the owner of offering id=%d", actor.UserID, offering.ID)
		return ErrAccessDenied
	}

	return nil
}

// monthStart первое число месяца в UTC
func monthStart(now time.Time) time.Time {
	y, m, _ := now.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
