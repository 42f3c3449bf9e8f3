package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// OfferingKind тип предложения поставщика
type OfferingKind string

const (
	KindActivity OfferingKind = "activity"
	KindTour     OfferingKind = "tour"
	KindPackage  OfferingKind = "package"
)

// IsValid проверяет, что тип известен
func (k OfferingKind) IsValid() bool {
	switch k {
	case KindActivity, KindTour, KindPackage:
		return true
	default:
		return false
	}
}

// HasTimeSlots возвращает true, если единицы инвентаря - временные слоты внутри дня
func (k OfferingKind) HasTimeSlots() bool {
	return k == KindActivity
}

// Offering бронируемый продукт поставщика (активность, тур или пакет)
type Offering struct {
	ID          int64
	SupplierID  int64
	Kind        OfferingKind
	Title       string
	Description string
	Price       decimal.Decimal

	AvailableFrom time.Time
	AvailableTo   time.Time
	DaysOff       *string // дни недели через запятую, регистр не важен

	// Только для активностей
	StartTime *types.TimeString
	EndTime   *types.TimeString

	// Для активностей - длительность слота в минутах,
	// для пакетов - продолжительность пакета в днях, для туров не используется
	Period int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window возвращает параметры генерации инвентаря
func (o *Offering) Window() AvailabilityWindow {
	w := AvailabilityWindow{
		From:   o.AvailableFrom,
		To:     o.AvailableTo,
		Period: o.Period,
	}
	if o.DaysOff != nil {
		w.DaysOff = *o.DaysOff
	}
	if o.StartTime != nil {
		w.StartTime = *o.StartTime
	}
	if o.EndTime != nil {
		w.EndTime = *o.EndTime
	}
	return w
}

// IsExpired возвращает true, если период доступности закончился до указанной даты
func (o *Offering) IsExpired(today time.Time) bool {
	return DateOnly(o.AvailableTo).Before(DateOnly(today))
}

// PackageEndDate последний день пакета, начинающегося в startDate
func (o *Offering) PackageEndDate(startDate time.Time) time.Time {
	days := o.Period
	if days < 1 {
		days = 1
	}
	return DateOnly(startDate).AddDate(0, 0, days-1)
}

// Offer ценовой вариант предложения со своим шаблоном остатка
type Offer struct {
	ID         int64
	OfferingID int64
	Title      string
	Price      decimal.Decimal
	Stock      int // начальный остаток каждой сгенерированной единицы
}

// AvailabilityWindow параметры генерации единиц инвентаря
type AvailabilityWindow struct {
	From      time.Time // включительно
	To        time.Time // включительно
	StartTime types.TimeString
	EndTime   types.TimeString
	Period    int    // минуты (активности)
	DaysOff   string // "Monday, sunday"
}

// IsEmpty возвращает true, если диапазон дат пуст (From > To)
func (w AvailabilityWindow) IsEmpty() bool {
	return DateOnly(w.From).After(DateOnly(w.To))
}

// DaysOffSet нормализованное множество выходных дней (lowercase, без пробелов)
func (w AvailabilityWindow) DaysOffSet() map[string]struct{} {
	return ParseDaysOff(w.DaysOff)
}

// ParseDaysOff разбирает список дней недели через запятую
func ParseDaysOff(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		day := strings.ToLower(strings.TrimSpace(part))
		if day == "" {
			continue
		}
		set[day] = struct{}{}
	}
	return set
}

// IsWeekdayName проверяет, что строка - английское название дня недели
func IsWeekdayName(name string) bool {
	_, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IsDayOff проверяет, попадает ли дата в выходные дни
// Название дня недели берется на английском независимо от локали
func IsDayOff(date time.Time, daysOff map[string]struct{}) bool {
	_, off := daysOff[strings.ToLower(date.Weekday().String())]
	return off
}

var weekdayNames = map[string]struct{}{
	"monday":    {},
	"tuesday":   {},
	"wednesday": {},
	"thursday":  {},
	"friday":    {},
	"saturday":  {},
	"sunday":    {},
}

// DateOnly обнуляет время, оставляя дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OfferingsFilter фильтр списка предложений
type OfferingsFilter struct {
	Kind        *OfferingKind
	SupplierID  *int64
	AvailableOn *time.Time // только предложения с available_to >= AvailableOn
	Limit       int
}
