package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	shopRepo     ShopRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		shopRepo:     shopRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// StatusChangedEvent payload события booking.status_changed
type StatusChangedEvent struct {
	BookingID  int64  `json:"bookingId"`
	ShopID     int64  `json:"shopId"`
	BarberID   int64  `json:"barberId"`
	UserID     *int64 `json:"userId,omitempty"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
}

// GetByID получает бронирование по ID.
// Видеть бронирование может клиент или владелец салона.
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requesterID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkBookingAccess(ctx, booking, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requesterID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking).ForViewer(requesterID), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Пользователь видит только свои бронирования.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, domain.WithReason(ErrInvalidInput, "unknown status "+*req.Status)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, req.RequesterID), nil
}

// GetShopBookings получает бронирования салона с фильтрацией по барберу, периоду и статусу.
// Доступно только владельцу салона.
func (s *Service) GetShopBookings(ctx context.Context, req *models.GetShopBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetShopBookings: fetching bookings for shop=%d, user=%d", req.ShopID, req.RequesterID)

	if err := s.checkOwnerAccess(ctx, req.ShopID, req.RequesterID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetShopBookings: invalid filter for shop=%d: %v", req.ShopID, err)
		return nil, domain.WithReason(ErrInvalidInput, "unknown status")
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, domain.WithReason(ErrInvalidInput, "endDate is before startDate")
	}

	bookings, err := s.bookingRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopBookings: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopBookings: successfully fetched %d bookings for shop=%d", len(bookings), req.ShopID)
	return models.FromDomainBookingList(bookings, req.RequesterID), nil
}

// TransitionStatus переводит бронирование в новый статус.
//
// Владелец салона выполняет любой допустимый переход, клиент может только отменить своё бронирование.
// Для check-in требуется PIN, совпадающий с кодом бронирования.
// Строка бронирования блокируется на время проверки и записи.
func (s *Service) TransitionStatus(ctx context.Context, bookingID int64, req *models.TransitionStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("TransitionStatus: booking id=%d to status=%s by user=%d", bookingID, req.Status, req.RequesterID)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("TransitionStatus: invalid status=%s", req.Status)
		return nil, domain.WithReason(ErrInvalidInput, "unknown status "+req.Status)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, domain.WithReason(ErrInvalidInput,
			fmt.Sprintf("cancellation reason is longer than %d characters", domain.MaxCancellationReasonLength))
	}

	var (
		updated    *domain.Booking
		fromStatus domain.BookingStatus
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "TransitionStatus", bookingID)
		if err != nil {
			return err
		}
		fromStatus = booking.Status

		if err := s.checkTransitionAccess(txCtx, booking, newStatus, req.RequesterID); err != nil {
			return err
		}

		if !domain.CanTransition(booking.Status, newStatus) {
			s.logger.Warn("TransitionStatus: booking id=%d cannot go %s -> %s", bookingID, booking.Status, newStatus)
			return domain.WithReason(ErrInvalidTransition,
				fmt.Sprintf("cannot change status from %s to %s", booking.Status, newStatus))
		}

		if newStatus == domain.StatusCheckedIn {
			if req.PIN == nil || *req.PIN != booking.BookingKey {
				s.logger.Warn("TransitionStatus: wrong pin for booking id=%d", bookingID)
				return ErrInvalidPIN
			}
		}

		if newStatus == domain.StatusCancelled {
			err = s.bookingRepo.Cancel(txCtx, bookingID, req.Reason, s.timeProvider.Now())
		} else {
			err = s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus)
		}
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("TransitionStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: TransitionStatus - update status: %v", ErrInternal, err)
		}

		updated, err = s.getBooking(txCtx, "TransitionStatus", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingStatusChanged, StatusChangedEvent{
		BookingID:  updated.ID,
		ShopID:     updated.ShopID,
		BarberID:   updated.BarberID,
		UserID:     updated.UserID,
		FromStatus: string(fromStatus),
		ToStatus:   string(updated.Status),
	})

	s.logger.Info("TransitionStatus: booking id=%d moved %s -> %s", bookingID, fromStatus, updated.Status)
	return models.FromDomainBooking(updated).ForViewer(req.RequesterID), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) publish(ctx context.Context, eventType events.Type, payload interface{}) {
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Warn("publish %s: %v", eventType, err)
	}
}

// checkBookingAccess клиент бронирования или владелец салона
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, requesterID int64) error {
	if booking.UserID != nil && *booking.UserID == requesterID {
		return nil
	}
	return s.checkOwnerAccess(ctx, booking.ShopID, requesterID)
}

// checkTransitionAccess клиент может только отменить, остальное делает владелец салона
func (s *Service) checkTransitionAccess(ctx context.Context, booking *domain.Booking, to domain.BookingStatus, requesterID int64) error {
	if booking.UserID != nil && *booking.UserID == requesterID && to == domain.StatusCancelled {
		return nil
	}
	return s.checkOwnerAccess(ctx, booking.ShopID, requesterID)
}

// checkOwnerAccess проверяет, что пользователь является владельцем салона
func (s *Service) checkOwnerAccess(ctx context.Context, shopID int64, userID int64) error {
	shop, err := s.shopRepo.GetShopByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("checkOwnerAccess: shop id=%d not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get shop id=%d: %v", shopID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get shop: %v", ErrInternal, err)
	}

	if shop.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of shop=%d", userID, shopID)
		return ErrAccessDenied
	}

	return nil
}
