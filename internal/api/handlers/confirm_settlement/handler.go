package confirm_settlement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settlements"
)

const (
	msgInvalidSettlementID = "некорректный ID взаиморасчета"
	msgNotFound            = "взаиморасчет не найден"
	msgAlreadyCompleted    = "взаиморасчет уже подтвержден"
)

type Handler struct {
	service SettlementService
	logger  Logger
}

func NewHandler(service SettlementService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/settlements/{settlementId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "settlementId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSettlementID)
		return
	}

	resp, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, settlements.ErrSettlementNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settlements.ErrAlreadyCompleted):
			h.logger.Warn("PATCH /settlements/{id}/confirm - Already completed: settlement_id=%d", id)
			handlers.RespondUnprocessable(w, msgAlreadyCompleted)

		default:
			h.logger.Error("PATCH /settlements/{id}/confirm - Failed to confirm: settlement_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /settlements/{id}/confirm - Settlement confirmed: settlement_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
