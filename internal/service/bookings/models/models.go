package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

var (
	// ErrInvalidState возвращается при некорректном состоянии
	ErrInvalidState = errors.New("invalid booking state")

	// ErrInvalidKind возвращается при некорректном типе предложения
	ErrInvalidKind = errors.New("invalid offering kind")
)

// Request модели

// GetCustomerBookingsRequest запрос истории бронирований клиента
type GetCustomerBookingsRequest struct {
	Actor domain.Actor `json:"-"`
	State *string      `json:"state,omitempty"`
}

// GetSupplierBookingsRequest запрос бронирований на предложения поставщика
type GetSupplierBookingsRequest struct {
	Actor domain.Actor `json:"-"`
	State *string      `json:"state,omitempty"`
	Kind  *string      `json:"kind,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64   `json:"id"`
	Kind       string  `json:"kind"`
	CustomerID int64   `json:"customerId"`
	OfferID    int64   `json:"offerId"`
	UnitID     *int64  `json:"unitId,omitempty"`
	StartDate  *string `json:"startDate,omitempty"` // "2025-10-15", только пакеты
	Quantity   int     `json:"quantity"`
	Confirmed  bool    `json:"confirmed"`
	Paid       bool    `json:"paid"`
	State      string  `json:"state"`
	Ticket     *string `json:"ticket,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// DashboardResponse сводка продаж поставщика
type DashboardResponse struct {
	SupplierID           int64 `json:"supplierId"`
	TotalSales           int   `json:"totalSales"`
	ConfirmedBookings    int   `json:"confirmedBookings"`
	ConfirmedThisMonth   int   `json:"confirmedThisMonth"`
	UnconfirmedBookings  int   `json:"unconfirmedBookings"`
	UnconfirmedThisMonth int   `json:"unconfirmedThisMonth"`
	OfferingsCount       int   `json:"offeringsCount"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID,
		Kind:       string(b.Kind),
		CustomerID: b.CustomerID,
		OfferID:    b.OfferID,
		UnitID:     b.UnitID,
		Quantity:   b.Quantity,
		Confirmed:  b.Confirmed,
		Paid:       b.Paid,
		State:      string(b.State()),
		Ticket:     b.Ticket,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	if b.StartDate != nil {
		startDate := b.StartDate.Format(domain.DateFormat)
		resp.StartDate = &startDate
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainDashboard конвертирует сводку поставщика в DTO
func FromDomainDashboard(d *domain.SupplierDashboard) *DashboardResponse {
	return &DashboardResponse{
		SupplierID:           d.SupplierID,
		TotalSales:           d.TotalSales,
		ConfirmedBookings:    d.ConfirmedBookings,
		ConfirmedThisMonth:   d.ConfirmedThisMonth,
		UnconfirmedBookings:  d.UnconfirmedBookings,
		UnconfirmedThisMonth: d.UnconfirmedThisMonth,
		OfferingsCount:       d.OfferingsCount,
	}
}

// ToDomainBookingState конвертирует строку в domain.BookingState с валидацией
func ToDomainBookingState(state string) (domain.BookingState, error) {
	s := domain.BookingState(state)
	switch s {
	case domain.StatePending, domain.StateConfirmed, domain.StatePaid:
		return s, nil
	default:
		return "", ErrInvalidState
	}
}

// ToDomainOfferingKind конвертирует строку в domain.OfferingKind с валидацией
func ToDomainOfferingKind(kind string) (domain.OfferingKind, error) {
	k := domain.OfferingKind(kind)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}
