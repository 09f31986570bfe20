package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidPrice       = "цена должна быть неотрицательным числом"
	msgPastDateTime       = "время бронирования уже прошло"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgUserRequired       = "для онлайн-бронирования нужен клиент"
	msgCashLimitExceeded  = "превышен месячный лимит бронирований за наличные"
	msgShopNotFound       = "салон не найден"
	msgBarberNotFound     = "барбер не найден"
	msgForbidden          = "доступ запрещен"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgNoBarberAvailable  = "нет свободных барберов на выбранное время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requesterID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: shop_id=%d, requester_id=%d", req.ShopID, requesterID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrNoBarberAvailable):
			h.logger.Warn("POST /bookings - No barber available: shop_id=%d, requester_id=%d", req.ShopID, requesterID)
			handlers.RespondConflict(w, msgNoBarberAvailable)

		case errors.Is(err, createBooking.ErrShopNotFound):
			h.logger.Warn("POST /bookings - Shop not found: shop_id=%d", req.ShopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, createBooking.ErrBarberNotFound):
			h.logger.Warn("POST /bookings - Barber not found: shop_id=%d", req.ShopID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: shop_id=%d, requester_id=%d, type=%s", req.ShopID, requesterID, useCaseReq.Type)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrCashLimitExceeded):
			h.logger.Warn("POST /bookings - Cash limit exceeded: shop_id=%d", req.ShopID)
			handlers.RespondDomainError(w, err, msgCashLimitExceeded)

		case errors.Is(err, createBooking.ErrPastDateTime):
			handlers.RespondBadRequest(w, msgPastDateTime)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondDomainError(w, err, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondDomainError(w, err, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrUserRequired):
			handlers.RespondBadRequest(w, msgUserRequired)

		case errors.Is(err, createBooking.ErrInvalidPrice):
			handlers.RespondBadRequest(w, msgInvalidPrice)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: shop_id=%d, requester_id=%d, error=%v",
				req.ShopID, requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, shop_id=%d, barber_id=%d",
		booking.ID, booking.ShopID, booking.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(booking).ForViewer(requesterID))
}
