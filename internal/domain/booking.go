package domain

import (
	"fmt"
	"time"
)

// BookingState состояние бронирования в журнале
type BookingState string

const (
	StatePending   BookingState = "pending"
	StateConfirmed BookingState = "confirmed"
	StatePaid      BookingState = "paid"
)

// Booking бронирование клиента на одну единицу инвентаря (активность, тур)
// или на диапазон дней (пакет, начиная со StartDate)
type Booking struct {
	ID         int64
	Kind       OfferingKind
	CustomerID int64
	OfferID    int64
	UnitID     *int64     // активность, тур
	StartDate  *time.Time // пакет
	Quantity   int
	Confirmed  bool
	Paid       bool
	Ticket     *string // токен погашения, выдается при подтверждении

	CreatedAt time.Time
	UpdatedAt time.Time
}

// State возвращает состояние бронирования
// Оплата без подтверждения отображается как paid
func (b *Booking) State() BookingState {
	switch {
	case b.Paid:
		return StatePaid
	case b.Confirmed:
		return StateConfirmed
	default:
		return StatePending
	}
}

// CanConfirm единая проверка перехода pending -> confirmed для всех типов
func (b *Booking) CanConfirm() error {
	if b.Confirmed {
		return ErrAlreadyConfirmed
	}
	return nil
}

// CanPay проверка перехода в paid
func (b *Booking) CanPay(requireConfirmed bool) error {
	if b.Paid {
		return ErrAlreadyPaid
	}
	if requireConfirmed && !b.Confirmed {
		return ErrNotConfirmed
	}
	return nil
}

// ImplicatedDays диапазон дней, затрагиваемых пакетным бронированием
func (b *Booking) ImplicatedDays(offering *Offering) (time.Time, time.Time, error) {
	if b.StartDate == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: booking id=%d has no start date", ErrInvalidBooking, b.ID)
	}
	start := DateOnly(*b.StartDate)
	return start, offering.PackageEndDate(start), nil
}

// FirstShortUnit возвращает первую единицу, на которой не хватает остатка
func FirstShortUnit(units []*InventoryUnit, quantity int) *InventoryUnit {
	for _, u := range units {
		if !u.HasStock(quantity) {
			return u
		}
	}
	return nil
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	CustomerID *int64
	SupplierID *int64
	Kind       *OfferingKind
	State      *BookingState
}

// SupplierDashboard сводка продаж поставщика
type SupplierDashboard struct {
	SupplierID           int64
	TotalSales           int // сумма quantity по подтвержденным бронированиям
	ConfirmedBookings    int
	ConfirmedThisMonth   int
	UnconfirmedBookings  int
	UnconfirmedThisMonth int
	OfferingsCount       int
}
