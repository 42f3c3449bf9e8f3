package create_offering

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

type mockOfferingRepo struct{ mock.Mock }

func (m *mockOfferingRepo) Create(ctx context.Context, o *domain.Offering) (*domain.Offering, error) {
	args := m.Called(ctx, o)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Offering) *domain.Offering); ok {
		return fn(ctx, o), args.Error(1)
	}
	if v := args.Get(0); v != nil {
		return v.(*domain.Offering), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOfferingRepo) CreateOffer(ctx context.Context, offer *domain.Offer) (*domain.Offer, error) {
	args := m.Called(ctx, offer)
	if v := args.Get(0); v != nil {
		return v.(*domain.Offer), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) GetOrCreate(ctx context.Context, units []*domain.InventoryUnit) (int64, error) {
	args := m.Called(ctx, units)
	return args.Get(0).(int64), args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) RecordUnitsGenerated(kind string, count int) {
	m.Called(kind, count)
}

// inlineTx выполняет fn без настоящей транзакции
type inlineTx struct{ calls int }

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
