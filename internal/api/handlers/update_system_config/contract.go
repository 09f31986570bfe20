package update_system_config

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/systemconfig"
)

type SystemConfigService interface {
	Update(ctx context.Context, req *systemconfig.UpdateRequest) (*domain.SystemConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
