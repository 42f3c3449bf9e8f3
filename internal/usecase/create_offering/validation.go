package create_offering

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует запрос до любых обращений к БД
func validateRequest(req *Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	from := domain.DateOnly(req.AvailableFrom)
	to := domain.DateOnly(req.AvailableTo)
	if from.After(to) {
		return fmt.Errorf("%w: availableFrom %s is after availableTo %s",
			ErrInvalidInput, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}
	if to.Sub(from).Hours()/24 > domain.MaxAvailabilityDays {
		return fmt.Errorf("%w: availability window exceeds %d days", ErrInvalidInput, domain.MaxAvailabilityDays)
	}

	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	for i, offer := range req.Offers {
		if offer.Price.IsNegative() {
			return fmt.Errorf("%w: offer #%d price must not be negative", ErrInvalidInput, i+1)
		}
	}

	if req.DaysOff != nil {
		if err := validateDaysOff(*req.DaysOff); err != nil {
			return err
		}
	}

	switch req.Kind {
	case domain.KindActivity:
		return validateActivity(req)
	case domain.KindPackage:
		if req.Period < 1 || req.Period > domain.MaxPackagePeriodDays {
			return fmt.Errorf("%w: package period must be between 1 and %d days", ErrInvalidInput, domain.MaxPackagePeriodDays)
		}
	}

	return nil
}

func validateActivity(req *Request) error {
	if req.StartTime == nil || req.EndTime == nil {
		return fmt.Errorf("%w: activity requires startTime and endTime", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(*req.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidInput, *req.StartTime, *req.EndTime)
	}
	if req.Period < domain.MinActivityPeriodMinutes || req.Period > domain.MaxActivityPeriodMinutes {
		return fmt.Errorf("%w: activity period must be between %d and %d minutes",
			ErrInvalidInput, domain.MinActivityPeriodMinutes, domain.MaxActivityPeriodMinutes)
	}
	return nil
}

// validateDaysOff все элементы списка - английские названия дней недели
func validateDaysOff(raw string) error {
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !domain.IsWeekdayName(name) {
			return fmt.Errorf("%w: unknown weekday %q in daysOff", ErrInvalidInput, name)
		}
	}
	return nil
}

// checkAccess создавать предложения может только администратор,
// в том числе от имени поставщика
func checkAccess(req *Request) error {
	if req.Actor.IsAdmin() {
		return nil
	}
	return fmt.Errorf("%w: user id=%d role=%s", ErrForbidden, req.Actor.UserID, req.Actor.Role)
}
