package create_offering

import (
	"context"

	createOffering "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_offering"
)

type CreateOfferingUseCase interface {
	Execute(ctx context.Context, req *createOffering.Request) (*createOffering.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
