package get_settlement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settlements"
)

const (
	msgInvalidSettlementID = "некорректный ID взаиморасчета"
	msgNotFound            = "взаиморасчет не найден"
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

// Handle GET /api/v1/settlements/{settlementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "settlementId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSettlementID)
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, settlements.ErrSettlementNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /settlements/{id} - Failed to get settlement: settlement_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
