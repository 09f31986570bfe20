package systemconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	cacheSystemConfig "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/systemconfig"
	storageSystemConfig "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/systemconfig"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
)

// Service сервис глобальной конфигурации платформы
type Service struct {
	repo      ConfigRepository
	cache     Cache // nil, если redis выключен
	publisher EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(repo ConfigRepository, cache Cache, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Get текущая конфигурация платформы.
// Читает из кеша, при промахе из БД; до первой настройки возвращает значения по умолчанию.
// Ошибки кеша не прерывают чтение.
func (s *Service) Get(ctx context.Context) (*domain.SystemConfig, error) {
	if s.cache != nil {
		cfg, err := s.cache.Get(ctx)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, cacheSystemConfig.ErrCacheMiss) {
			s.logger.Warn("Get: cache read failed: %v", err)
		}
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, storageSystemConfig.ErrConfigNotFound) {
			s.logger.Error("Get: repository error: %v", err)
			return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Get: system config is not set, using defaults")
		def := domain.DefaultSystemConfig()
		cfg = &def
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, *cfg); err != nil {
			s.logger.Warn("Get: cache write failed: %v", err)
		}
	}

	return cfg, nil
}

// Update меняет конфигурацию платформы.
// Изменения применяются только к бронированиям, созданным после обновления.
func (s *Service) Update(ctx context.Context, req *UpdateRequest) (*domain.SystemConfig, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	next := req.Apply(*current)
	if err := next.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, domain.WithReason(ErrInvalidInput, err.Error())
	}

	saved, err := s.repo.Upsert(ctx, next)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Update: cache invalidation failed: %v", err)
		}
	}

	if err := s.publisher.Publish(ctx, events.SystemConfigUpdated, UpdatedEvent{
		AdminCommissionRate:     saved.AdminCommissionRate,
		UserDiscountRate:        saved.UserDiscountRate,
		MaxCashBookingsPerMonth: saved.MaxCashBookingsPerMonth,
		UpdatedAt:               saved.UpdatedAt,
	}); err != nil {
		s.logger.Warn("Update: publish %s: %v", events.SystemConfigUpdated, err)
	}

	s.logger.Info("Update: system config updated, commission=%s%%, discount=%s%%, cashCap=%d",
		saved.AdminCommissionRate, saved.UserDiscountRate, saved.MaxCashBookingsPerMonth)
	return saved, nil
}
