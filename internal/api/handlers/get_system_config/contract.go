package get_system_config

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type SystemConfigService interface {
	Get(ctx context.Context) (*domain.SystemConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
