package commit_settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	settlementRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settlement"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
)

// UseCase use case фиксации взаиморасчета по салону
type UseCase struct {
	bookingRepo    BookingRepository
	settlementRepo SettlementRepository
	shopRepo       ShopRepository
	txManager      TransactionManager
	publisher      EventPublisher
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settlementRepo SettlementRepository,
	shopRepo ShopRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		settlementRepo: settlementRepo,
		shopRepo:       shopRepo,
		txManager:      txManager,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute создает запись взаиморасчета и переводит вошедшие бронирования в SETTLED.
// Все происходит в одной serializable транзакции: если хотя бы одно бронирование
// уже захвачено другим расчетом, транзакция откатывается целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Settlement, error) {
	uc.logger.Info("CommitSettlement: shop=%d, requested bookings=%d", req.ShopID, len(req.BookingIDs))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitSettlement: validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.shopRepo.GetShopByID(ctx, req.ShopID); err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("CommitSettlement: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CommitSettlement: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	var result *domain.Settlement

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Подходящие бронирования, строки блокируются
		eligible, err := uc.bookingRepo.GetEligibleForSettlement(txCtx, domain.EligibleBookingsFilter{
			ShopID:     &req.ShopID,
			BookingIDs: req.BookingIDs,
		})
		if err != nil {
			uc.logger.Error("CommitSettlement: failed to get eligible bookings: %v", err)
			return uc.mapRepoError("failed to get eligible bookings", err)
		}

		if len(eligible) == 0 {
			uc.logger.Warn("CommitSettlement: shop=%d has no eligible bookings", req.ShopID)
			return ErrNoEligibleBookings
		}
		if dropped := len(req.BookingIDs) - len(eligible); len(req.BookingIDs) > 0 && dropped > 0 {
			uc.logger.Warn("CommitSettlement: %d requested bookings are not eligible and were skipped", dropped)
		}

		// 2. Сальдо
		totals := domain.CalculateSettlement(eligible)

		// 3. Запись взаиморасчета
		created, err := uc.settlementRepo.Create(txCtx, &domain.Settlement{
			ShopID:     req.ShopID,
			Type:       totals.Type,
			Amount:     totals.Amount,
			BookingIDs: totals.BookingIDs,
			DateFrom:   totals.DateFrom,
			DateTo:     totals.DateTo,
			Status:     domain.SettlementStatePending,
		})
		if err != nil {
			uc.logger.Error("CommitSettlement: failed to create settlement: %v", err)
			return uc.mapRepoError("failed to create settlement", err)
		}

		// 4. PENDING -> SETTLED для каждого бронирования, промах откатывает все
		affected, err := uc.bookingRepo.MarkSettled(txCtx, totals.BookingIDs, created.ID)
		if err != nil {
			uc.logger.Error("CommitSettlement: failed to mark bookings settled: %v", err)
			return uc.mapRepoError("failed to mark bookings settled", err)
		}
		if affected != int64(len(totals.BookingIDs)) {
			uc.logger.Warn("CommitSettlement: marked %d of %d bookings, rolling back", affected, len(totals.BookingIDs))
			return ErrConcurrentSettlement
		}

		result = created
		return nil
	})
	if err != nil {
		if pgerrors.IsRetryable(err) {
			uc.logger.Warn("CommitSettlement: commit conflicted: %v", err)
			return nil, ErrConcurrentSettlement
		}
		return nil, err
	}

	uc.metrics.IncSettlementCommitted(string(result.Type))
	uc.logger.Info("CommitSettlement: settlement id=%d %s %s for shop=%d, %d bookings",
		result.ID, result.Type, result.Amount.StringFixed(2), result.ShopID, len(result.BookingIDs))

	if err := uc.publisher.Publish(ctx, events.SettlementCommitted, CommittedEvent{
		SettlementID: result.ID,
		ShopID:       result.ShopID,
		Type:         string(result.Type),
		Amount:       result.Amount.StringFixed(2),
		BookingIDs:   result.BookingIDs,
	}); err != nil {
		uc.logger.Warn("CommitSettlement: publish %s: %v", events.SettlementCommitted, err)
	}

	return result, nil
}

func (uc *UseCase) mapRepoError(step string, err error) error {
	if errors.Is(err, bookingRepo.ErrSerialization) || errors.Is(err, settlementRepo.ErrSerialization) {
		return ErrConcurrentSettlement
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}

func validateRequest(req *Request) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}
	for _, id := range req.BookingIDs {
		if id <= 0 {
			return fmt.Errorf("%w: bookingIds must be positive", ErrInvalidInput)
		}
	}
	return nil
}
