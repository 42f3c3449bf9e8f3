package get_available_units

import (
	"context"

	getAvailableUnits "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_units"
)

type GetAvailableUnitsUseCase interface {
	Execute(ctx context.Context, req *getAvailableUnits.Request) (*getAvailableUnits.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
