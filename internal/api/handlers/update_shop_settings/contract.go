package update_shop_settings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/shops/models"
)

type ShopService interface {
	UpdateSettings(ctx context.Context, shopID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
