package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/internal/service/shops/models"
)

// Service сервис политики бронирования салонов
type Service struct {
	shopRepo ShopRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(shopRepo ShopRepository, logger Logger) *Service {
	return &Service{
		shopRepo: shopRepo,
		logger:   logger,
	}
}

// GetSettings политика бронирования салона. Доступна всем: клиенту нужны окна записи.
func (s *Service) GetSettings(ctx context.Context, shopID int64) (*models.SettingsResponse, error) {
	shop, err := s.getShop(ctx, "GetSettings", shopID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainShop(shop), nil
}

// UpdateSettings меняет политику бронирования. Доступно только владельцу салона.
// Новые значения применяются к бронированиям, созданным после изменения.
func (s *Service) UpdateSettings(ctx context.Context, shopID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: shop=%d by user=%d", shopID, req.RequesterID)

	shop, err := s.getShop(ctx, "UpdateSettings", shopID)
	if err != nil {
		return nil, err
	}

	if shop.OwnerID != req.RequesterID {
		s.logger.Warn("UpdateSettings: user=%d is not the owner of shop=%d", req.RequesterID, shopID)
		return nil, ErrAccessDenied
	}

	settings := req.Apply(models.SettingsOf(shop))
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.shopRepo.UpdateSettings(ctx, shopID, settings)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			return nil, ErrShopNotFound
		}
		s.logger.Error("UpdateSettings: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: shop=%d updated", shopID)
	return models.FromDomainShop(updated), nil
}

func (s *Service) getShop(ctx context.Context, op string, shopID int64) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetShopByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("%s: shop id=%d not found", op, shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("%s: failed to get shop id=%d: %v", op, shopID, err)
		return nil, fmt.Errorf("%w: %s - failed to get shop: %v", ErrInternal, op, err)
	}
	return shop, nil
}

// validateSettings валидирует политику бронирования
func validateSettings(settings domain.ShopSettings) error {
	if settings.BufferTime < 0 || settings.BufferTime > domain.MaxBufferTimeMinutes {
		return domain.WithReason(ErrInvalidInput,
			fmt.Sprintf("bufferTime must be between 0 and %d", domain.MaxBufferTimeMinutes))
	}

	if settings.MinBookingNotice < 0 || settings.MinBookingNotice > domain.MaxBookingNoticeMinutes {
		return domain.WithReason(ErrInvalidInput,
			fmt.Sprintf("minBookingNotice must be between 0 and %d", domain.MaxBookingNoticeMinutes))
	}

	if settings.MaxBookingNotice < 0 || settings.MaxBookingNotice > domain.MaxBookingNoticeDaysLimit {
		return domain.WithReason(ErrInvalidInput,
			fmt.Sprintf("maxBookingNotice must be between 0 and %d", domain.MaxBookingNoticeDaysLimit))
	}

	return nil
}
