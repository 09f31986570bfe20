package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// Service сервис расписания барберов
type Service struct {
	barberRepo BarberRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(barberRepo BarberRepository, logger Logger) *Service {
	return &Service{
		barberRepo: barberRepo,
		logger:     logger,
	}
}

// Resolve рабочее окно барбера на дату с учетом особых дней, недельного расписания и часов по умолчанию
func (s *Service) Resolve(ctx context.Context, barberID int64, date time.Time) (*models.ScheduleResponse, error) {
	if barberID <= 0 {
		return nil, domain.WithReason(ErrInvalidInput, "barberId must be positive")
	}
	if date.IsZero() {
		return nil, domain.WithReason(ErrInvalidInput, "date is required")
	}

	barber, err := s.barberRepo.GetBarberByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrBarberNotFound) {
			s.logger.Warn("Resolve: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("Resolve: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Resolve - failed to get barber: %v", ErrInternal, err)
	}

	date = domain.DateOnly(date)
	return models.FromDomainSchedule(barber.ID, date, domain.ResolveSchedule(barber, date)), nil
}
