package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
)

type stubService struct {
	resp *models.BookingResponse
	err  error
}

func (s stubService) GetByID(_ context.Context, _ int64, _ domain.Actor) (*models.BookingResponse, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(svc stubService, bookingID string, actor *domain.Actor) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/bookings/"+bookingID, nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Statuses(t *testing.T) {
	customer := &domain.Actor{UserID: 20, Role: domain.RoleCustomer}

	tests := []struct {
		name      string
		bookingID string
		actor     *domain.Actor
		err       error
		status    int
	}{
		{name: "not a number", bookingID: "abc", actor: customer, status: http.StatusBadRequest},
		{name: "zero id", bookingID: "0", actor: customer, status: http.StatusBadRequest},
		{name: "no actor", bookingID: "5", status: http.StatusUnauthorized},
		{name: "unknown booking", bookingID: "5", actor: customer, err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "foreign booking", bookingID: "5", actor: customer, err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{name: "storage failure", bookingID: "5", actor: customer, err: errors.New("connection reset"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(stubService{err: tt.err}, tt.bookingID, tt.actor)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_ReturnsBooking(t *testing.T) {
	svc := stubService{resp: &models.BookingResponse{ID: 5, Kind: "tour", OfferID: 3, Quantity: 2, State: "pending"}}

	rec := get(svc, "5", &domain.Actor{UserID: 10, Role: domain.RoleSupplier})

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, int64(3), body.OfferID)
	assert.Equal(t, "pending", body.State)
}
