package settlements

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrSettlementNotFound возвращается, когда взаиморасчет не найден
	ErrSettlementNotFound = fmt.Errorf("%w: settlements: settlement not found", domain.ErrNotFound)

	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = fmt.Errorf("%w: settlements: shop not found", domain.ErrNotFound)

	// ErrAlreadyCompleted возвращается при повторном подтверждении
	ErrAlreadyCompleted = fmt.Errorf("%w: settlements: settlement is already completed", domain.ErrState)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settlements.service: internal error")
)
