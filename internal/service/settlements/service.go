package settlements

import (
	"context"
	"errors"
	"fmt"

	settlementRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settlement"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settlements/models"
)

// Service сервис чтения и подтверждения взаиморасчетов
type Service struct {
	settlementRepo SettlementRepository
	shopRepo       ShopRepository
	txManager      TransactionManager
	publisher      EventPublisher
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса взаиморасчетов
func NewService(
	settlementRepo SettlementRepository,
	shopRepo ShopRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		settlementRepo: settlementRepo,
		shopRepo:       shopRepo,
		txManager:      txManager,
		publisher:      publisher,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// ConfirmedEvent payload события settlement.confirmed
type ConfirmedEvent struct {
	SettlementID int64  `json:"settlementId"`
	ShopID       int64  `json:"shopId"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
}

// Get получает взаиморасчет по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.SettlementResponse, error) {
	settlement, err := s.settlementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, settlementRepo.ErrSettlementNotFound) {
			s.logger.Warn("Get: settlement id=%d not found", id)
			return nil, ErrSettlementNotFound
		}
		s.logger.Error("Get: repository error for settlement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettlement(settlement), nil
}

// ListByShop история взаиморасчетов салона
func (s *Service) ListByShop(ctx context.Context, shopID int64) (*models.SettlementListResponse, error) {
	if _, err := s.shopRepo.GetShopByID(ctx, shopID); err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("ListByShop: shop id=%d not found", shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("ListByShop: failed to get shop id=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: ListByShop - failed to get shop: %v", ErrInternal, err)
	}

	list, err := s.settlementRepo.GetByShop(ctx, shopID)
	if err != nil {
		s.logger.Error("ListByShop: repository error for shop id=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: ListByShop - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByShop: fetched %d settlements for shop=%d", len(list), shopID)
	return models.FromDomainSettlementList(list), nil
}

// Confirm фиксирует, что деньги по взаиморасчету переведены: PENDING -> COMPLETED.
// Повторное подтверждение возвращает ErrAlreadyCompleted.
func (s *Service) Confirm(ctx context.Context, id int64) (*models.SettlementResponse, error) {
	s.logger.Info("Confirm: confirming settlement id=%d", id)

	var confirmed *models.SettlementResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		settlement, err := s.settlementRepo.Complete(txCtx, id, s.timeProvider.Now())
		if err != nil {
			switch {
			case errors.Is(err, settlementRepo.ErrSettlementNotFound):
				s.logger.Warn("Confirm: settlement id=%d not found", id)
				return ErrSettlementNotFound
			case errors.Is(err, settlementRepo.ErrNotPending):
				s.logger.Warn("Confirm: settlement id=%d is already completed", id)
				return ErrAlreadyCompleted
			}
			s.logger.Error("Confirm: repository error for settlement id=%d: %v", id, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}
		confirmed = models.FromDomainSettlement(settlement)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.SettlementConfirmed, ConfirmedEvent{
		SettlementID: confirmed.ID,
		ShopID:       confirmed.ShopID,
		Type:         confirmed.Type,
		Amount:       confirmed.Amount.StringFixed(2),
	}); err != nil {
		s.logger.Warn("Confirm: publish %s: %v", events.SettlementConfirmed, err)
	}

	s.logger.Info("Confirm: settlement id=%d completed", id)
	return confirmed, nil
}
