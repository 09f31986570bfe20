package preview_settlements

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	previewSettlements "github.com/m04kA/SMC-SalonBooking/internal/usecase/preview_settlements"
)

const (
	msgMissingCutoffDate = "дата отсечки обязательна"
	msgInvalidCutoffDate = "некорректный формат даты отсечки, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase PreviewSettlementsUseCase
	logger  Logger
}

func NewHandler(useCase PreviewSettlementsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/settlements/preview?cutoffDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cutoff, err := handlers.QueryDate(r, "cutoffDate")
	if err != nil {
		h.logger.Warn("GET /settlements/preview - Invalid cutoff date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCutoffDate)
		return
	}
	if cutoff == nil {
		handlers.RespondBadRequest(w, msgMissingCutoffDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &previewSettlements.Request{CutoffDate: *cutoff})
	if err != nil {
		switch {
		case errors.Is(err, previewSettlements.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidCutoffDate)

		default:
			h.logger.Error("GET /settlements/preview - Failed to build preview: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /settlements/preview - Preview built: cutoff=%s, shops=%d",
		cutoff.Format("2006-01-02"), resp.ShopCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
