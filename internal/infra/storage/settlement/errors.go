package settlement

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
)

var (
	// ErrSettlementNotFound возвращается, когда взаиморасчет не найден
	ErrSettlementNotFound = errors.New("settlement.repository: settlement not found")

	// ErrNotPending возвращается, когда подтверждается уже завершенный взаиморасчет
	ErrNotPending = errors.New("settlement.repository: settlement is not pending")

	// ErrSerialization возвращается при конфликте сериализации или deadlock
	ErrSerialization = errors.New("settlement.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settlement.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settlement.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settlement.repository: failed to scan row")
)

func execError(op string, err error) error {
	if pgerrors.IsRetryable(err) {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
