package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// InventoryUnit сгенерированная единица инвентаря со своим остатком
// Для активностей - временной слот (день + интервал), для туров и пакетов - календарный день
type InventoryUnit struct {
	ID       int64
	OfferID  int64
	Day      time.Time
	TimeFrom *types.TimeString
	TimeTo   *types.TimeString
	Stock    int
}

// IsTimeSlot возвращает true для единиц с временным интервалом
func (u *InventoryUnit) IsTimeSlot() bool {
	return u.TimeFrom != nil && u.TimeTo != nil
}

// HasStock проверяет, что остатка хватает на quantity
func (u *InventoryUnit) HasStock(quantity int) bool {
	return quantity > 0 && u.Stock >= quantity
}

// Key натуральный ключ единицы (offer, day[, time_from, time_to])
func (u *InventoryUnit) Key() string {
	if u.IsTimeSlot() {
		return fmt.Sprintf("%d/%s/%s-%s", u.OfferID, u.Day.Format(DateFormat), *u.TimeFrom, *u.TimeTo)
	}
	return fmt.Sprintf("%d/%s", u.OfferID, u.Day.Format(DateFormat))
}

// Label человекочитаемое описание единицы для сообщений об ошибках
func (u *InventoryUnit) Label() string {
	if u.IsTimeSlot() {
		return fmt.Sprintf("%s %s-%s", u.Day.Format(DateFormat), *u.TimeFrom, *u.TimeTo)
	}
	return u.Day.Format(DateFormat)
}
