package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBarberBookings неотмененные бронирования барберов в диапазоне дат включительно
	GetBarberBookings(ctx context.Context, barberIDs []int64, from, to time.Time) ([]*domain.Booking, error)
}

// ShopRepository интерфейс репозитория салонов и барберов
type ShopRepository interface {
	GetShopByID(ctx context.Context, id int64) (*domain.Shop, error)
	GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetBarbersByShop(ctx context.Context, shopID int64) ([]*domain.Barber, error)
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
