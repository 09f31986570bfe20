package commit_settlement

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetEligibleForSettlement(ctx context.Context, filter domain.EligibleBookingsFilter) ([]*domain.Booking, error)
	MarkSettled(ctx context.Context, bookingIDs []int64, settlementID int64) (int64, error)
}

// SettlementRepository интерфейс репозитория взаиморасчетов
type SettlementRepository interface {
	Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error)
}

// ShopRepository интерфейс репозитория салонов
type ShopRepository interface {
	GetShopByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует доменные события после коммита
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.Type, payload interface{}) error
}

// Metrics бизнес-счетчики взаиморасчетов
type Metrics interface {
	IncSettlementCommitted(settlementType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
