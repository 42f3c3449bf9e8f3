package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	offeringRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/offering"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

type mockOfferingRepo struct{ mock.Mock }

func (m *mockOfferingRepo) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Offering), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOfferingRepo) List(ctx context.Context, filter domain.OfferingsFilter) ([]*domain.Offering, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Offering), args.Error(1)
}

func (m *mockOfferingRepo) GetOffersByOfferingID(ctx context.Context, offeringID int64) ([]*domain.Offer, error) {
	args := m.Called(ctx, offeringID)
	return args.Get(0).([]*domain.Offer), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var today = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func newService(repo *mockOfferingRepo) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = fixedTime{now: today.Add(13 * time.Hour)}
	return svc
}

func TestList_DefaultsAndFilter(t *testing.T) {
	repo := &mockOfferingRepo{}
	kind := domain.KindTour
	repo.On("List", mock.Anything, domain.OfferingsFilter{Kind: &kind, AvailableOn: &today, Limit: domain.DefaultListLimit}).
		Return([]*domain.Offering{{ID: 1, Kind: domain.KindTour, AvailableFrom: today, AvailableTo: today}}, nil)

	resp, err := newService(repo).List(context.Background(), &models.ListOfferingsRequest{Kind: ptr.Ptr("tour")})

	require.NoError(t, err)
	require.Len(t, resp.Offerings, 1)
	assert.Equal(t, "2024-01-10", resp.Offerings[0].AvailableTo)
}

func TestList_ClampsLimit(t *testing.T) {
	repo := &mockOfferingRepo{}
	repo.On("List", mock.Anything, domain.OfferingsFilter{AvailableOn: &today, Limit: domain.MaxListLimit}).
		Return([]*domain.Offering{}, nil)

	resp, err := newService(repo).List(context.Background(), &models.ListOfferingsRequest{Limit: 10000})

	require.NoError(t, err)
	assert.NotNil(t, resp.Offerings)
}

func TestList_InvalidKind(t *testing.T) {
	_, err := newService(&mockOfferingRepo{}).List(context.Background(), &models.ListOfferingsRequest{Kind: ptr.Ptr("cruise")})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_WithOffers(t *testing.T) {
	repo := &mockOfferingRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Offering{
		ID: 1, Kind: domain.KindActivity, Title: "Kayak",
		StartTime: ptr.Ptr(types.TimeString("09:00")), EndTime: ptr.Ptr(types.TimeString("11:00")), Period: 30,
	}, nil)
	repo.On("GetOffersByOfferingID", mock.Anything, int64(1)).Return([]*domain.Offer{
		{ID: 3, OfferingID: 1, Title: "Single", Price: decimal.RequireFromString("25.50"), Stock: 4},
	}, nil)

	resp, err := newService(repo).GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "09:00", *resp.StartTime)
	require.Len(t, resp.Offers, 1)
	assert.Equal(t, "25.5", resp.Offers[0].Price.String())
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockOfferingRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(nil, offeringRepo.ErrOfferingNotFound)

	_, err := newService(repo).GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, ErrOfferingNotFound)
}
