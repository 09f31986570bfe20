package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается при нарушении уникальности (barber_id, booking_date, start_time)
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrSerialization возвращается при конфликте сериализации или deadlock, транзакцию можно повторить
	ErrSerialization = errors.New("booking.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// execError раскладывает ошибку postgres по sentinel-ошибкам репозитория
func execError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrSlotNotAvailable, op, err)
	case pgerrors.IsRetryable(err):
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
