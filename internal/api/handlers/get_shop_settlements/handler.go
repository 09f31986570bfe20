package get_shop_settlements

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settlements"
)

const (
	msgInvalidShopID = "некорректный ID салона"
	msgShopNotFound  = "салон не найден"
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

// Handle GET /api/v1/shops/{shopId}/settlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathInt64(r, "shopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	resp, err := h.service.ListByShop(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, settlements.ErrShopNotFound) {
			handlers.RespondNotFound(w, msgShopNotFound)
			return
		}
		h.logger.Error("GET /shops/{id}/settlements - Failed to list settlements: shop_id=%d, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shops/{id}/settlements - Retrieved %d settlements: shop_id=%d", len(resp.Settlements), shopID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
