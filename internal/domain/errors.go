package domain

import (
	"errors"
	"fmt"
)

// Виды бизнес-ошибок. Каждая ошибка usecase/service оборачивает ровно один вид,
// HTTP слой выбирает статус по виду через errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")
	ErrAuthorization = errors.New("authorization error")
	ErrNotFound      = errors.New("not found")
	ErrState         = errors.New("invalid state")
)

// ReasonError ошибка с человекочитаемой причиной для клиента
type ReasonError struct {
	err    error
	reason string
}

func (e *ReasonError) Error() string {
	return fmt.Sprintf("%v: %s", e.err, e.reason)
}

func (e *ReasonError) Unwrap() error {
	return e.err
}

// WithReason прикрепляет к ошибке причину, которую можно показать пользователю
func WithReason(err error, reason string) error {
	return &ReasonError{err: err, reason: reason}
}

// ReasonOf достает причину из цепочки ошибок
func ReasonOf(err error) (string, bool) {
	var re *ReasonError
	if errors.As(err, &re) {
		return re.reason, true
	}
	return "", false
}
