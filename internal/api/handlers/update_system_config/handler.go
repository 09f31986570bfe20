package update_system_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/systemconfig"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректные значения конфигурации"
)

type Handler struct {
	service SystemConfigService
	logger  Logger
}

func NewHandler(service SystemConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/system-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req systemconfig.UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /system-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, systemconfig.ErrInvalidInput) {
			handlers.RespondDomainError(w, err, msgInvalidConfig)
			return
		}
		h.logger.Error("PUT /system-config - Failed to update system config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("PUT /system-config - System config updated by user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
