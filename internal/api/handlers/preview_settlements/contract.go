package preview_settlements

import (
	"context"

	previewSettlements "github.com/m04kA/SMC-SalonBooking/internal/usecase/preview_settlements"
)

type PreviewSettlementsUseCase interface {
	Execute(ctx context.Context, req *previewSettlements.Request) (*previewSettlements.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
