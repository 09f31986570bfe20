package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type stubUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &getAvailableSlots.Response{
		Date:            req.Date,
		ShopID:          req.ShopID,
		BarberID:        req.BarberID,
		DurationMinutes: req.DurationMinutes,
		Slots:           []types.TimeString{"10:00", "10:32"},
	}, nil
}

func get(h *Handler, shopID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+shopID+"/available-slots?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"shopId": shopID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := get(h, "1", "date=2026-03-02&duration=30&barberId=4")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got.BarberID)
	assert.Equal(t, int64(4), *uc.got.BarberID)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, []string{"10:00", "10:32"}, resp.Slots)
}

func TestHandle_AnyBarber(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := get(h, "1", "date=2026-03-02&duration=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.BarberID)
}

func TestHandle_BadParams(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, get(h, "x", "date=2026-03-02&duration=30").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "1", "duration=30").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "1", "date=2026-13-02&duration=30").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "1", "date=2026-03-02").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "1", "date=2026-03-02&duration=30&barberId=abc").Code)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound,
		get(NewHandler(&stubUseCase{err: getAvailableSlots.ErrShopNotFound}, logger.NewNop()), "1", "date=2026-03-02&duration=30").Code)
	assert.Equal(t, http.StatusNotFound,
		get(NewHandler(&stubUseCase{err: getAvailableSlots.ErrBarberNotFound}, logger.NewNop()), "1", "date=2026-03-02&duration=30").Code)
	assert.Equal(t, http.StatusBadRequest,
		get(NewHandler(&stubUseCase{err: getAvailableSlots.ErrInvalidInput}, logger.NewNop()), "1", "date=2026-03-02&duration=3").Code)
	assert.Equal(t, http.StatusInternalServerError,
		get(NewHandler(&stubUseCase{err: getAvailableSlots.ErrInternal}, logger.NewNop()), "1", "date=2026-03-02&duration=30").Code)
}
