package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type stubUseCase struct {
	got *createBooking.Request
	res *domain.Booking
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*domain.Booking, error) {
	s.got = req
	return s.res, s.err
}

const validBody = `{
	"shopId": 1,
	"userId": 7,
	"bookingDate": "2026-03-02",
	"startTime": "10:00",
	"durationMinutes": 30,
	"serviceNames": ["haircut"],
	"originalPrice": 1000,
	"paymentMethod": "online"
}`

func doRequest(h *Handler, userID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{res: &domain.Booking{
		ID:          10,
		ShopID:      1,
		BarberID:    3,
		UserID:      ptr.Ptr(int64(7)),
		BookingDate: mustDate(t, "2026-03-02"),
		Status:      domain.StatusUpcoming,
		BookingKey:  "0042",
		Financials: domain.FinancialSplit{
			OriginalPrice: decimal.NewFromInt(1000),
			FinalPrice:    decimal.NewFromInt(950),
		},
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := doRequest(h, 7, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.RequesterID)
	assert.Equal(t, "online", uc.got.Type)
	assert.Nil(t, uc.got.BarberID)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
	require.NotNil(t, uc.got.OriginalPrice)
	assert.Equal(t, 1000.0, *uc.got.OriginalPrice)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "0042", resp.BookingKey)
}

func TestHandle_BadInput(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, doRequest(h, 7, `{"shopId":`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, 7, strings.Replace(validBody, "2026-03-02", "02.03.2026", 1)).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, 7, strings.Replace(validBody, "10:00", "25:99", 1)).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{createBooking.ErrNoBarberAvailable, http.StatusConflict},
		{createBooking.ErrShopNotFound, http.StatusNotFound},
		{createBooking.ErrBarberNotFound, http.StatusNotFound},
		{createBooking.ErrAccessDenied, http.StatusForbidden},
		{createBooking.ErrTooLateToBook, http.StatusBadRequest},
		{createBooking.ErrPastDateTime, http.StatusBadRequest},
		{fmt.Errorf("%w: boom", createBooking.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
		assert.Equal(t, tt.want, doRequest(h, 7, validBody).Code, tt.err.Error())
	}
}

func TestHandle_CashCapReason(t *testing.T) {
	err := domain.WithReason(createBooking.ErrCashLimitExceeded, "cash bookings are limited to 2 per month")
	h := NewHandler(&stubUseCase{err: err}, logger.NewNop())

	rec := doRequest(h, 7, validBody)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cash bookings are limited to 2 per month", body.Message)
}

func TestHandle_MissingPrice(t *testing.T) {
	uc := &stubUseCase{err: domain.WithReason(createBooking.ErrInvalidInput, "originalPrice is required")}
	h := NewHandler(uc, logger.NewNop())

	rec := doRequest(h, 7, strings.Replace(validBody, `"originalPrice": 1000,`, "", 1))

	require.NotNil(t, uc.got)
	assert.Nil(t, uc.got.OriginalPrice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "originalPrice is required", body.Message)
}

func TestHandle_TimingReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			err:  domain.WithReason(createBooking.ErrTooLateToBook, "Must book at least 60 minutes in advance"),
			want: "Must book at least 60 minutes in advance",
		},
		{
			err:  domain.WithReason(createBooking.ErrDateTooFarInFuture, "Can only book 14 days in advance"),
			want: "Can only book 14 days in advance",
		},
	}

	for _, tt := range tests {
		h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())

		rec := doRequest(h, 7, validBody)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.want, body.Message)
	}
}

func TestHandle_MissingUser(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := domain.ParseDate(s)
	require.NoError(t, err)
	return parsed
}
