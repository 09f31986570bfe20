package shops

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ShopRepository интерфейс репозитория салонов
type ShopRepository interface {
	GetShopByID(ctx context.Context, id int64) (*domain.Shop, error)
	UpdateSettings(ctx context.Context, shopID int64, settings domain.ShopSettings) (*domain.Shop, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
