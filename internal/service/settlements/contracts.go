package settlements

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
)

// SettlementRepository интерфейс репозитория взаиморасчетов
type SettlementRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Settlement, error)
	GetByShop(ctx context.Context, shopID int64) ([]*domain.Settlement, error)
	Complete(ctx context.Context, id int64, completedAt time.Time) (*domain.Settlement, error)
}

// ShopRepository интерфейс репозитория салонов
type ShopRepository interface {
	GetShopByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует доменные события после коммита
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.Type, payload interface{}) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
