package update_system_config

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/systemconfig"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubService struct {
	got *systemconfig.UpdateRequest
	err error
}

func (s *stubService) Update(_ context.Context, req *systemconfig.UpdateRequest) (*domain.SystemConfig, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	cfg := req.Apply(domain.DefaultSystemConfig())
	return &cfg, nil
}

func put(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/system-config", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_PartialUpdate(t *testing.T) {
	svc := &stubService{}

	rec := put(NewHandler(svc, logger.NewNop()), `{"userDiscountRate":"7.5","maxCashBookingsPerMonth":3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Nil(t, svc.got.AdminCommissionRate)
	require.NotNil(t, svc.got.UserDiscountRate)
	assert.True(t, svc.got.UserDiscountRate.Equal(decimal.RequireFromString("7.5")))

	var resp domain.SystemConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.MaxCashBookingsPerMonth)
	assert.True(t, resp.AdminCommissionRate.Equal(decimal.NewFromInt(10)))
}

func TestHandle_ValidationReason(t *testing.T) {
	err := domain.WithReason(systemconfig.ErrInvalidInput, "adminCommissionRate must be between 0 and 100")

	rec := put(NewHandler(&stubService{err: err}, logger.NewNop()), `{"adminCommissionRate":"120"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "adminCommissionRate must be between 0 and 100", body.Message)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, put(NewHandler(&stubService{}, logger.NewNop()), `{"unknown":1}`).Code)
	assert.Equal(t, http.StatusInternalServerError,
		put(NewHandler(&stubService{err: systemconfig.ErrInternal}, logger.NewNop()), `{}`).Code)
}
