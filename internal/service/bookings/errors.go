package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: bookings: booking not found", domain.ErrNotFound)

	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = fmt.Errorf("%w: bookings: shop not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("%w: bookings: access denied", domain.ErrAuthorization)

	// ErrInvalidPIN возвращается, когда PIN при check-in не совпал с кодом бронирования
	ErrInvalidPIN = fmt.Errorf("%w: bookings: invalid check-in pin", domain.ErrAuthorization)

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = fmt.Errorf("%w: bookings: status transition is not allowed", domain.ErrState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: bookings: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
