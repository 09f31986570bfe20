package systemconfig

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
)

// ConfigRepository интерфейс репозитория конфигурации платформы
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.SystemConfig, error)
	Upsert(ctx context.Context, cfg domain.SystemConfig) (*domain.SystemConfig, error)
}

// Cache кеш конфигурации платформы
type Cache interface {
	Get(ctx context.Context) (*domain.SystemConfig, error)
	Set(ctx context.Context, cfg domain.SystemConfig) error
	Invalidate(ctx context.Context) error
}

// EventPublisher публикует доменные события
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.Type, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
