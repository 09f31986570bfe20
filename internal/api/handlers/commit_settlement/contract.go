package commit_settlement

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	commitSettlement "github.com/m04kA/SMC-SalonBooking/internal/usecase/commit_settlement"
)

type CommitSettlementUseCase interface {
	Execute(ctx context.Context, req *commitSettlement.Request) (*domain.Settlement, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
