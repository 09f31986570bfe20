package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrShopNotFound возвращается, когда салон не найден или неактивен
	ErrShopNotFound = fmt.Errorf("%w: get_available_slots: shop not found", domain.ErrNotFound)

	// ErrBarberNotFound возвращается, когда барбер не найден в салоне
	ErrBarberNotFound = fmt.Errorf("%w: get_available_slots: barber not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
