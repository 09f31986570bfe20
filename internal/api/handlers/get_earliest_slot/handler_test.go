package get_earliest_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubUseCase struct {
	got *getAvailableSlots.EarliestRequest
	res *getAvailableSlots.EarliestResponse
	err error
}

func (s *stubUseCase) ExecuteEarliest(_ context.Context, req *getAvailableSlots.EarliestRequest) (*getAvailableSlots.EarliestResponse, error) {
	s.got = req
	return s.res, s.err
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/1/earliest-slot?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"shopId": "1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Found(t *testing.T) {
	uc := &stubUseCase{res: &getAvailableSlots.EarliestResponse{
		Found:     true,
		Date:      time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime: "09:30",
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := get(h, "duration=30&barberId=10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), uc.got.ShopID)
	require.NotNil(t, uc.got.BarberID)
	assert.Equal(t, int64(10), *uc.got.BarberID)
	assert.Equal(t, 30, uc.got.DurationMinutes)

	var resp EarliestSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, EarliestSlotResponse{Found: true, Date: "2026-03-03", StartTime: "09:30"}, resp)
}

func TestHandle_NotFoundWithinHorizon(t *testing.T) {
	h := NewHandler(&stubUseCase{res: &getAvailableSlots.EarliestResponse{}}, logger.NewNop())

	rec := get(h, "duration=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":false}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.NewNop())
	assert.Equal(t, http.StatusBadRequest, get(h, "").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "duration=30&barberId=x").Code)

	tests := []struct {
		err  error
		want int
	}{
		{getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{getAvailableSlots.ErrShopNotFound, http.StatusNotFound},
		{getAvailableSlots.ErrBarberNotFound, http.StatusNotFound},
		{getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
		assert.Equal(t, tt.want, get(h, "duration=30").Code, tt.err.Error())
	}
}
