package systemconfig

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных значениях конфигурации
	ErrInvalidInput = fmt.Errorf("%w: systemconfig: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("systemconfig.service: internal error")
)
