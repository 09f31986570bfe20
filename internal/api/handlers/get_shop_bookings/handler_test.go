package get_shop_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubService struct {
	got *models.GetShopBookingsRequest
	err error
}

func (s *stubService) GetShopBookings(_ context.Context, req *models.GetShopBookingsRequest) (*models.BookingListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/3/bookings?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"shopId": "3"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 100))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ParsesFilter(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	rec := get(h, "barberId=10&startDate=2026-03-01&endDate=2026-03-31&status=upcoming&includeCancelled=true")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(100), svc.got.RequesterID)
	assert.Equal(t, int64(3), svc.got.ShopID)
	require.NotNil(t, svc.got.BarberID)
	assert.Equal(t, int64(10), *svc.got.BarberID)
	assert.Equal(t, "2026-03-01", svc.got.StartDate.Format(domain.DateFormat))
	assert.Equal(t, "2026-03-31", svc.got.EndDate.Format(domain.DateFormat))
	assert.Equal(t, "upcoming", *svc.got.Status)
	assert.True(t, svc.got.IncludeCancelled)
	assert.JSONEq(t, `{"bookings":[]}`, rec.Body.String())
}

func TestHandle_InvalidQuery(t *testing.T) {
	h := NewHandler(&stubService{}, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, get(h, "startDate=01.03.2026").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "barberId=zero").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "includeCancelled=maybe").Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{bookings.ErrShopNotFound, http.StatusNotFound},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{domain.WithReason(bookings.ErrInvalidInput, "endDate is before startDate"), http.StatusBadRequest},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := NewHandler(&stubService{err: tt.err}, logger.NewNop())
		assert.Equal(t, tt.want, get(h, "").Code, tt.err.Error())
	}
}

func TestHandle_MissingUser(t *testing.T) {
	h := NewHandler(&stubService{}, logger.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/3/bookings", nil)
	req = mux.SetURLVars(req, map[string]string{"shopId": "3"})
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
