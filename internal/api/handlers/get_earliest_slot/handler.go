package get_earliest_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidShopID   = "некорректный ID салона"
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDuration = "некорректная длительность услуг"
	msgShopNotFound    = "салон не найден"
	msgBarberNotFound  = "барбер не найден"
)

type Handler struct {
	useCase EarliestSlotUseCase
	logger  Logger
}

func NewHandler(useCase EarliestSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/earliest-slot?duration=&barberId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathInt64(r, "shopId")
	if err != nil {
		h.logger.Warn("GET /shops/{id}/earliest-slot - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	barberID, err := handlers.QueryInt64(r, "barberId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	resp, err := h.useCase.ExecuteEarliest(r.Context(), &getAvailableSlots.EarliestRequest{
		ShopID:          shopID,
		BarberID:        barberID,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			handlers.RespondNotFound(w, msgBarberNotFound)

		default:
			h.logger.Error("GET /shops/{id}/earliest-slot - Failed to find slot: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
