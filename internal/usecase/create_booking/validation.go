package create_booking

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Actor.IsCustomer() {
		return fmt.Errorf("%w: user id=%d role=%s", ErrForbidden, req.Actor.UserID, req.Actor.Role)
	}

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateTarget проверяет, что указан нужный объект бронирования для типа предложения
func validateTarget(req *Request, kind domain.OfferingKind) error {
	if kind == domain.KindPackage {
		if req.StartDate == nil || req.StartDate.IsZero() {
			return fmt.Errorf("%w: package booking requires startDate", ErrInvalidInput)
		}
		return nil
	}

	if req.UnitID == nil {
		return fmt.Errorf("%w: %s booking requires unitId", ErrInvalidInput, kind)
	}
	return nil
}

// validateDay день не в прошлом
func validateDay(day time.Time, now time.Time) error {
	if domain.DateOnly(day).Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, day.Format(domain.DateFormat))
	}
	return nil
}
