package get_shop_settlements

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/settlements/models"
)

type SettlementService interface {
	ListByShop(ctx context.Context, shopID int64) (*models.SettlementListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
