package create_offering

import (
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// GenerateOptions параметры генерации
type GenerateOptions struct {
	// ActivityHonorsDaysOff исключать выходные дни и для активностей
	ActivityHonorsDaysOff bool
}

// GenerateUnits материализует окно доступности в единицы инвентаря для каждого ценового варианта
// Чистая функция: повторный вызов с теми же аргументами дает тот же набор натуральных ключей
// Пустой диапазон дат (From > To) не ошибка, возвращается пустой набор
func GenerateUnits(
	kind domain.OfferingKind,
	window domain.AvailabilityWindow,
	offers []*domain.Offer,
	opts GenerateOptions,
) ([]*domain.InventoryUnit, error) {
	if window.IsEmpty() || len(offers) == 0 {
		return []*domain.InventoryUnit{}, nil
	}

	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown offering kind %q", ErrInvalidInput, kind)
	}
	if kind.HasTimeSlots() {
		return generateTimeSlots(window, offers, opts)
	}
	return generateDays(window, offers), nil
}

// generateTimeSlots слоты [cursor, cursor+period) от start_time с шагом period
// Слот, пересекающий end_time, отбрасывается
func generateTimeSlots(window domain.AvailabilityWindow, offers []*domain.Offer, opts GenerateOptions) ([]*domain.InventoryUnit, error) {
	if window.Period <= 0 {
		return nil, fmt.Errorf("%w: activity period must be positive, got %d", ErrInvalidInput, window.Period)
	}

	start, err := window.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	end, err := window.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}

	type slot struct{ from, to types.TimeString }
	slots := make([]slot, 0)
	for cursor := start; cursor+window.Period <= end; cursor += window.Period {
		from, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: slot start: %v", ErrInvalidInput, err)
		}
		to, err := types.NewTimeStringFromMinutes(cursor + window.Period)
		if err != nil {
			// Слот до полуночи не помещается в сутки
			break
		}
		slots = append(slots, slot{from: from, to: to})
	}

	var daysOff map[string]struct{}
	if opts.ActivityHonorsDaysOff {
		daysOff = window.DaysOffSet()
	}

	units := make([]*domain.InventoryUnit, 0)
	for day := domain.DateOnly(window.From); !day.After(domain.DateOnly(window.To)); day = day.AddDate(0, 0, 1) {
		if daysOff != nil && domain.IsDayOff(day, daysOff) {
			continue
		}
		for _, offer := range offers {
			for _, s := range slots {
				units = append(units, &domain.InventoryUnit{
					OfferID:  offer.ID,
					Day:      day,
					TimeFrom: ptr.Ptr(s.from),
					TimeTo:   ptr.Ptr(s.to),
					Stock:    offer.Stock,
				})
			}
		}
	}

	return units, nil
}

// generateDays по одной единице на каждый не выходной день для каждого варианта
func generateDays(window domain.AvailabilityWindow, offers []*domain.Offer) []*domain.InventoryUnit {
	daysOff := window.DaysOffSet()

	units := make([]*domain.InventoryUnit, 0)
	for day := domain.DateOnly(window.From); !day.After(domain.DateOnly(window.To)); day = day.AddDate(0, 0, 1) {
		if domain.IsDayOff(day, daysOff) {
			continue
		}
		for _, offer := range offers {
			units = append(units, &domain.InventoryUnit{
				OfferID: offer.ID,
				Day:     day,
				Stock:   offer.Stock,
			})
		}
	}

	return units
}
