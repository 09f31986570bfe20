package create_booking

import (
	"context"
	"math/rand"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBarberBookings(ctx context.Context, barberIDs []int64, from, to time.Time) ([]*domain.Booking, error)
	CountCashBookings(ctx context.Context, userID int64, from, to time.Time) (int, error)
}

// ShopRepository интерфейс репозитория салонов и барберов
type ShopRepository interface {
	GetShopByID(ctx context.Context, id int64) (*domain.Shop, error)
	GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetBarbersByShop(ctx context.Context, shopID int64) ([]*domain.Barber, error)
}

// SystemConfigProvider источник глобальных ставок платформы
type SystemConfigProvider interface {
	Get(ctx context.Context) (*domain.SystemConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует доменные события после коммита
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.Type, payload interface{}) error
}

// Metrics бизнес-счетчики резервирования
type Metrics interface {
	IncBookingCreated(bookingType string)
	IncReservationConflict()
}

// RandomSource источник случайности для выбора барбера и PIN
type RandomSource interface {
	// Intn возвращает число из [0, n)
	Intn(n int) int
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

// RealRandomSource генератор из math/rand/v2
type RealRandomSource struct{}

func (RealRandomSource) Intn(n int) int {
	return rand.Intn(n)
}
