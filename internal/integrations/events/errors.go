package events

import "errors"

var (
	// ErrMarshalEvent возвращается, когда событие не сериализуется в JSON
	ErrMarshalEvent = errors.New("events.publisher: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации в redis
	ErrPublish = errors.New("events.publisher: failed to publish event")
)
