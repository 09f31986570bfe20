package get_shop_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const (
	msgInvalidShopID     = "некорректный ID салона"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParameters = "некорректные параметры фильтрации"
	msgShopNotFound      = "салон не найден"
	msgForbidden         = "доступ только для владельца салона"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/bookings
// Query params: barberId, startDate, endDate, status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathInt64(r, "shopId")
	if err != nil {
		h.logger.Warn("GET /shops/{id}/bookings - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ParseQueryParams(r, requesterID, shopID)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/bookings - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParameters)
		return
	}

	resp, err := h.service.GetShopBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/bookings - Access denied: shop_id=%d, user_id=%d", shopID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidParameters)

		default:
			h.logger.Error("GET /shops/{id}/bookings - Failed to get bookings: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/bookings - Retrieved %d bookings: shop_id=%d", len(resp.Bookings), shopID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
