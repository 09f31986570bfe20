package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	shopRepo     ShopRepository
	systemConfig SystemConfigProvider
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	random       RandomSource
	timeProvider TimeProvider
	logger       Logger
	grace        int
	maxAttempts  int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	systemConfig SystemConfigProvider,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.MaxReservationAttempts < 1 {
		opts.MaxReservationAttempts = domain.DefaultMaxReservationAttempts
	}
	if opts.GracePeriodMinutes < 0 {
		opts.GracePeriodMinutes = domain.DefaultGracePeriodMinutes
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		shopRepo:     shopRepo,
		systemConfig: systemConfig,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		random:       RealRandomSource{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		grace:        opts.GracePeriodMinutes,
		maxAttempts:  opts.MaxReservationAttempts,
	}
}

// Execute выполняет use case создания бронирования.
// Резервирование идет в serializable транзакции с блокировкой строк барберов;
// при конфликте сериализации транзакция повторяется целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: requester=%d, shop=%d, barber=%v, date=%s, time=%s, duration=%d, type=%s",
		req.RequesterID, req.ShopID, barberLabel(req.BarberID), req.Date.Format(domain.DateFormat),
		req.StartTime, req.DurationMinutes, req.Type)

	// 1. Обязательные поля и цена
	parsed, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Салон
	shop, err := uc.shopRepo.GetShopByID(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}
	if !shop.IsActive {
		uc.logger.Warn("CreateBooking: shop id=%d is inactive", req.ShopID)
		return nil, ErrShopNotFound
	}

	// 3. Политика времени записи
	if err := validateTiming(parsed, shop, now, uc.grace); err != nil {
		uc.logger.Warn("CreateBooking: timing validation failed: %v", err)
		return nil, err
	}

	// 4. Клиент и права
	if err := checkRequesterAccess(parsed, shop); err != nil {
		uc.logger.Warn("CreateBooking: requester=%d rejected for %s booking in shop=%d: %v",
			req.RequesterID, parsed.bookingType, req.ShopID, err)
		return nil, err
	}

	// 5. Снимок системной конфигурации, дальше передается только по значению
	cfgPtr, err := uc.systemConfig.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get system config: %v", err)
		return nil, fmt.Errorf("%w: failed to get system config: %v", ErrInternal, err)
	}
	snapshot := *cfgPtr

	var result *domain.Booking
	for attempt := 1; ; attempt++ {
		result, err = uc.reserve(ctx, parsed, shop, snapshot)
		if err == nil {
			break
		}
		if !isRetryable(err) {
			if errors.Is(err, domain.ErrConflict) {
				uc.metrics.IncReservationConflict()
			}
			return nil, err
		}
		if attempt >= uc.maxAttempts {
			uc.logger.Warn("CreateBooking: giving up after %d attempts: %v", attempt, err)
			uc.metrics.IncReservationConflict()
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Warn("CreateBooking: attempt %d/%d conflicted, retrying: %v", attempt, uc.maxAttempts, err)
	}

	uc.metrics.IncBookingCreated(string(result.Type))
	uc.logger.Info("CreateBooking: successfully created booking id=%d, barber=%d, status=%s",
		result.ID, result.BarberID, result.Status)

	if err := uc.publisher.Publish(ctx, events.BookingCreated, CreatedEvent{
		BookingID: result.ID,
		ShopID:    result.ShopID,
		BarberID:  result.BarberID,
		UserID:    result.UserID,
		Date:      result.BookingDate.Format(domain.DateFormat),
		StartTime: result.StartTime.String(),
		Status:    string(result.Status),
		Type:      string(result.Type),
	}); err != nil {
		uc.logger.Warn("CreateBooking: publish %s: %v", events.BookingCreated, err)
	}

	return result, nil
}

// reserve одна попытка резервирования
func (uc *UseCase) reserve(
	ctx context.Context,
	req *parsedRequest,
	shop *domain.Shop,
	snapshot domain.SystemConfig,
) (*domain.Booking, error) {
	var result *domain.Booking
	date := domain.DateOnly(req.Date)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6. Месячный лимит наличных по месяцу даты бронирования
		if err := uc.checkCashCap(txCtx, req, date, snapshot); err != nil {
			return err
		}

		// 7. Кандидаты, строки блокируются в порядке id
		candidates, err := uc.loadCandidates(txCtx, req)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(candidates))
		for _, b := range candidates {
			ids = append(ids, b.ID)
		}

		bookings, err := uc.bookingRepo.GetBarberBookings(txCtx, ids, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get barber bookings: %v", err)
			return wrapRepoError("failed to get barber bookings", err)
		}

		// 8. Проверка доступности внутри транзакции
		available := make([]*domain.Barber, 0, len(candidates))
		for _, b := range candidates {
			if domain.IsBarberAvailable(b, date, req.start, req.DurationMinutes, shop.BufferTime, bookings) {
				available = append(available, b)
			}
		}

		if len(available) == 0 {
			if req.BarberID != nil {
				uc.logger.Warn("CreateBooking: barber id=%d is not available at %s %s",
					*req.BarberID, date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Warn("CreateBooking: no barber available in shop=%d at %s %s",
				req.ShopID, date.Format(domain.DateFormat), req.StartTime)
			return ErrNoBarberAvailable
		}

		barber := available[0]
		if len(available) > 1 {
			barber = available[uc.random.Intn(len(available))]
		}

		// 9. Бронирование с финансовым снимком
		booking := uc.buildBooking(req, shop, barber, date, snapshot)

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if isRetryable(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *UseCase) checkCashCap(ctx context.Context, req *parsedRequest, date time.Time, snapshot domain.SystemConfig) error {
	if req.paymentMethod != domain.PaymentCash || req.UserID == nil || !snapshot.HasCashCap() {
		return nil
	}

	from, to := domain.MonthRange(date)
	count, err := uc.bookingRepo.CountCashBookings(ctx, *req.UserID, from, to)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count cash bookings for user=%d: %v", *req.UserID, err)
		return wrapRepoError("failed to count cash bookings", err)
	}

	if count >= snapshot.MaxCashBookingsPerMonth {
		uc.logger.Warn("CreateBooking: user=%d reached cash limit %d/%d for %s",
			*req.UserID, count, snapshot.MaxCashBookingsPerMonth, from.Format("2006-01"))
		return domain.WithReason(ErrCashLimitExceeded,
			fmt.Sprintf("cash bookings are limited to %d per month", snapshot.MaxCashBookingsPerMonth))
	}

	return nil
}

func (uc *UseCase) loadCandidates(ctx context.Context, req *parsedRequest) ([]*domain.Barber, error) {
	if req.BarberID != nil {
		barber, err := uc.shopRepo.GetBarberByID(ctx, *req.BarberID)
		if err != nil {
			if errors.Is(err, shopRepo.ErrBarberNotFound) {
				uc.logger.Warn("CreateBooking: barber id=%d not found", *req.BarberID)
				return nil, ErrBarberNotFound
			}
			uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", *req.BarberID, err)
			return nil, wrapRepoError("failed to get barber", err)
		}
		if barber.ShopID != req.ShopID {
			uc.logger.Warn("CreateBooking: barber id=%d does not belong to shop=%d", barber.ID, req.ShopID)
			return nil, ErrBarberNotFound
		}
		if !barber.IsBookable() {
			uc.logger.Warn("CreateBooking: barber id=%d is off duty", barber.ID)
			return []*domain.Barber{}, nil
		}
		return []*domain.Barber{barber}, nil
	}

	barbers, err := uc.shopRepo.GetBarbersByShop(ctx, req.ShopID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get barbers of shop=%d: %v", req.ShopID, err)
		return nil, wrapRepoError("failed to get barbers", err)
	}

	bookable := make([]*domain.Barber, 0, len(barbers))
	for _, b := range barbers {
		if b.IsBookable() {
			bookable = append(bookable, b)
		}
	}
	return bookable, nil
}

func (uc *UseCase) buildBooking(
	req *parsedRequest,
	shop *domain.Shop,
	barber *domain.Barber,
	date time.Time,
	snapshot domain.SystemConfig,
) *domain.Booking {
	serviceNames := req.ServiceNames
	if serviceNames == nil {
		serviceNames = []string{}
	}

	userID := req.UserID
	if req.bookingType == domain.TypeBlocked {
		userID = nil
	}

	return &domain.Booking{
		ShopID:          shop.ID,
		BarberID:        barber.ID,
		UserID:          userID,
		BookingDate:     date,
		StartTime:       req.StartTime,
		EndTime:         types.NewTimeStringFromMinutes(req.start + req.DurationMinutes),
		DurationMinutes: req.DurationMinutes,
		BufferMinutes:   shop.BufferTime,
		ServiceNames:    serviceNames,
		Status:          domain.InitialStatus(req.bookingType, shop.AutoApproveBookings),
		Type:            req.bookingType,
		PaymentMethod:   req.paymentMethod,
		Financials: domain.CalculateFinancialSplit(
			decimal.NewFromFloat(*req.OriginalPrice),
			snapshot.AdminCommissionRate,
			snapshot.UserDiscountRate,
			req.paymentMethod,
		),
		BookingKey: uc.bookingKey(),
		Notes:      req.Notes,
	}
}

// bookingKey 4-значный PIN. Совпадения допустимы: PIN сверяется только в рамках одного бронирования.
func (uc *UseCase) bookingKey() string {
	return fmt.Sprintf("%0*d", domain.BookingKeyDigits, uc.random.Intn(10000))
}

// isRetryable конфликт, после которого попытку можно повторить с новым снимком
func isRetryable(err error) bool {
	return errors.Is(err, bookingRepo.ErrSlotNotAvailable) ||
		errors.Is(err, bookingRepo.ErrSerialization) ||
		pgerrors.IsRetryable(err)
}

func wrapRepoError(step string, err error) error {
	if isRetryable(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}

func barberLabel(id *int64) string {
	if id == nil {
		return "any"
	}
	return fmt.Sprintf("%d", *id)
}
