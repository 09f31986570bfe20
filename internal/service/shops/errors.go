package shops

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = fmt.Errorf("%w: shops: shop not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не владелец салона
	ErrAccessDenied = fmt.Errorf("%w: shops: access denied", domain.ErrAuthorization)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: shops: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("shops.service: internal error")
)
