package commit_settlement

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settlements/models"
	commitSettlement "github.com/m04kA/SMC-SalonBooking/internal/usecase/commit_settlement"
)

const (
	msgInvalidShopID        = "некорректный ID салона"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректный список бронирований"
	msgShopNotFound         = "салон не найден"
	msgNoEligibleBookings   = "нет бронирований для взаиморасчета"
	msgConcurrentSettlement = "бронирования уже включены в другой взаиморасчет"
)

type Handler struct {
	useCase CommitSettlementUseCase
	logger  Logger
}

func NewHandler(useCase CommitSettlementUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/settlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathInt64(r, "shopId")
	if err != nil {
		h.logger.Warn("POST /shops/{id}/settlements - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	// Тело необязательно
	var req CommitSettlementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /shops/{id}/settlements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settlement, err := h.useCase.Execute(r.Context(), &commitSettlement.Request{
		ShopID:     shopID,
		BookingIDs: req.BookingIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, commitSettlement.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidInput)

		case errors.Is(err, commitSettlement.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, commitSettlement.ErrNoEligibleBookings):
			h.logger.Warn("POST /shops/{id}/settlements - No eligible bookings: shop_id=%d", shopID)
			handlers.RespondUnprocessable(w, msgNoEligibleBookings)

		case errors.Is(err, commitSettlement.ErrConcurrentSettlement):
			h.logger.Warn("POST /shops/{id}/settlements - Concurrent settlement: shop_id=%d", shopID)
			handlers.RespondConflict(w, msgConcurrentSettlement)

		default:
			h.logger.Error("POST /shops/{id}/settlements - Failed to commit settlement: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/settlements - Settlement committed: settlement_id=%d, shop_id=%d, type=%s, amount=%s",
		settlement.ID, shopID, settlement.Type, settlement.Amount.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainSettlement(settlement))
}
