package commit_settlement

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: commit_settlement: invalid input data", domain.ErrValidation)

	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = fmt.Errorf("%w: commit_settlement: shop not found", domain.ErrNotFound)

	// ErrNoEligibleBookings возвращается, когда у салона нет бронирований для взаиморасчета
	ErrNoEligibleBookings = fmt.Errorf("%w: commit_settlement: no eligible bookings", domain.ErrState)

	// ErrConcurrentSettlement возвращается, когда бронирования захвачены параллельным расчетом
	ErrConcurrentSettlement = fmt.Errorf("%w: commit_settlement: bookings were settled concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_settlement: internal error")
)
