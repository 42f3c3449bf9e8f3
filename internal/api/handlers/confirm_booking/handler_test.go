package confirm_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	confirmBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type stubUseCase struct {
	resp *confirmBooking.Response
	err  error
	got  *confirmBooking.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var supplier = domain.Actor{UserID: 10, Role: domain.RoleSupplier}

func serve(uc *stubUseCase, bookingID string, actor *domain.Actor) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/confirm-booking/{bookingId}", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/confirm-booking/"+bookingID, nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: confirmBooking.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "forbidden", err: fmt.Errorf("%w: not owner", confirmBooking.ErrForbidden), status: http.StatusForbidden},
		{name: "already confirmed", err: confirmBooking.ErrAlreadyConfirmed, status: http.StatusBadRequest},
		{name: "insufficient stock", err: fmt.Errorf("%w: 2024-01-01 has 3, requested 5", confirmBooking.ErrInsufficientStock), status: http.StatusBadRequest},
		{name: "internal", err: fmt.Errorf("%w: db down", confirmBooking.ErrInternal), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, "42", &supplier)

			assert.Equal(t, tt.status, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandle_InsufficientStockNamesUnit(t *testing.T) {
	err := fmt.Errorf("%w: 2024-01-01 09:00-09:30 has 3, requested 5", confirmBooking.ErrInsufficientStock)

	rec := serve(&stubUseCase{err: err}, "42", &supplier)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "недостаточно мест: 2024-01-01 09:00-09:30 has 3, requested 5", body.Message)
}

func TestHandle_MissingActor(t *testing.T) {
	rec := serve(&stubUseCase{}, "42", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidID(t *testing.T) {
	rec := serve(&stubUseCase{}, "abc", &supplier)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_Success(t *testing.T) {
	uc := &stubUseCase{resp: &confirmBooking.Response{Booking: &domain.Booking{
		ID: 42, Kind: domain.KindTour, Quantity: 2, Confirmed: true, Ticket: ptr.Ptr("TKT-ABC"),
	}}}

	rec := serve(uc, "42", &supplier)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), uc.got.BookingID)
	assert.Equal(t, supplier, uc.got.Actor)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "confirmed", body["state"])
	assert.Equal(t, "TKT-ABC", body["ticket"])
}
