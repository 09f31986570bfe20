package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInvalidPrice возвращается, когда цена отрицательная или не является конечным числом
	ErrInvalidPrice = fmt.Errorf("%w: create_booking: price must be a non-negative number", domain.ErrValidation)

	// ErrShopNotFound возвращается, когда салон не найден или неактивен
	ErrShopNotFound = fmt.Errorf("%w: create_booking: shop not found", domain.ErrNotFound)

	// ErrBarberNotFound возвращается, когда барбер не найден в салоне
	ErrBarberNotFound = fmt.Errorf("%w: create_booking: barber not found", domain.ErrNotFound)

	// ErrPastDateTime возвращается, когда время начала уже прошло
	ErrPastDateTime = fmt.Errorf("%w: create_booking: booking time is in the past", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает maxBookingNotice салона
	ErrDateTooFarInFuture = fmt.Errorf("%w: create_booking: date is too far in the future", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда нарушен minBookingNotice салона
	ErrTooLateToBook = fmt.Errorf("%w: create_booking: too late to book this slot", domain.ErrValidation)

	// ErrUserRequired возвращается, когда для онлайн-бронирования не указан клиент
	ErrUserRequired = fmt.Errorf("%w: create_booking: userId is required for online bookings", domain.ErrValidation)

	// ErrCashLimitExceeded возвращается при превышении месячного лимита бронирований за наличные
	ErrCashLimitExceeded = fmt.Errorf("%w: create_booking: monthly cash bookings limit reached", domain.ErrValidation)

	// ErrAccessDenied возвращается, когда пользователь не может создать бронирование такого типа
	ErrAccessDenied = fmt.Errorf("%w: create_booking: access denied", domain.ErrAuthorization)

	// ErrSlotNotAvailable возвращается, когда барбер занят или вне смены
	ErrSlotNotAvailable = fmt.Errorf("%w: create_booking: slot no longer available", domain.ErrConflict)

	// ErrNoBarberAvailable возвращается, когда для "любого барбера" свободных нет
	ErrNoBarberAvailable = fmt.Errorf("%w: create_booking: no barber available for this slot", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
