package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	shopRepo      ShopRepository
	timeProvider  TimeProvider
	logger        Logger
	lookaheadDays int
}

// NewUseCase создает новый экземпляр use case.
// lookaheadDays - горизонт поиска ближайшего слота (дополнительно ограничен maxBookingNotice салона).
func NewUseCase(
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	lookaheadDays int,
	logger Logger,
) *UseCase {
	if lookaheadDays <= 0 {
		lookaheadDays = domain.DefaultEarliestLookaheadDays
	}

	return &UseCase{
		bookingRepo:   bookingRepo,
		shopRepo:      shopRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		lookaheadDays: lookaheadDays,
	}
}

// Execute выполняет use case получения доступных слотов.
// Прошедшая дата и дата за пределами maxBookingNotice дают пустой список.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%d, barber=%s, date=%s, duration=%d",
		req.ShopID, barberLabel(req.BarberID), req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req.ShopID, req.BarberID, req.DurationMinutes); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailableSlots: validation failed: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	resp := &Response{
		Date:            date,
		ShopID:          req.ShopID,
		BarberID:        req.BarberID,
		DurationMinutes: req.DurationMinutes,
		Slots:           []types.TimeString{},
	}

	// 2. Салон и кандидаты загружаются параллельно
	shop, candidates, err := uc.loadShopAndCandidates(ctx, "GetAvailableSlots", req.ShopID, req.BarberID)
	if err != nil {
		return nil, err
	}

	// 3. Политика салона по датам
	notBefore, ok := noticeCutoff(shop, date, now)
	if !ok || len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: no slots for shop=%d on %s (bookable date: %t, candidates: %d)",
			req.ShopID, date.Format(domain.DateFormat), ok, len(candidates))
		return resp, nil
	}

	// 4. Занятость кандидатов за вчера, сегодня и завтра
	bookings, err := uc.bookingRepo.GetBarberBookings(ctx, barberIDs(candidates), date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Генерация слотов
	resp.Slots = generateSlots(slotParams{
		candidates: candidates,
		date:       date,
		duration:   req.DurationMinutes,
		buffer:     shop.BufferTime,
		bookings:   bookings,
		notBefore:  notBefore,
	})

	uc.logger.Info("GetAvailableSlots: generated %d slots for shop=%d, date=%s",
		len(resp.Slots), req.ShopID, date.Format(domain.DateFormat))

	return resp, nil
}

// ExecuteEarliest ищет ближайший свободный слот начиная с сегодняшнего дня
func (uc *UseCase) ExecuteEarliest(ctx context.Context, req *EarliestRequest) (*EarliestResponse, error) {
	uc.logger.Info("GetEarliestSlot: shop=%d, barber=%s, duration=%d",
		req.ShopID, barberLabel(req.BarberID), req.DurationMinutes)

	if err := validateRequest(req.ShopID, req.BarberID, req.DurationMinutes); err != nil {
		uc.logger.Warn("GetEarliestSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	today := domain.DateOnly(now)

	shop, candidates, err := uc.loadShopAndCandidates(ctx, "GetEarliestSlot", req.ShopID, req.BarberID)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return &EarliestResponse{}, nil
	}

	horizon := uc.lookaheadDays
	if shop.HasMaxBookingNotice() && shop.MaxBookingNotice < horizon {
		horizon = shop.MaxBookingNotice
	}

	bookings, err := uc.bookingRepo.GetBarberBookings(ctx, barberIDs(candidates),
		today.AddDate(0, 0, -1), today.AddDate(0, 0, horizon+1))
	if err != nil {
		uc.logger.Error("GetEarliestSlot: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	for day := 0; day <= horizon; day++ {
		date := today.AddDate(0, 0, day)

		notBefore, ok := noticeCutoff(shop, date, now)
		if !ok {
			continue
		}

		slots := generateSlots(slotParams{
			candidates: candidates,
			date:       date,
			duration:   req.DurationMinutes,
			buffer:     shop.BufferTime,
			bookings:   bookings,
			notBefore:  notBefore,
		})
		if len(slots) > 0 {
			uc.logger.Info("GetEarliestSlot: shop=%d earliest slot %s %s",
				req.ShopID, date.Format(domain.DateFormat), slots[0])
			return &EarliestResponse{Found: true, Date: date, StartTime: slots[0]}, nil
		}
	}

	uc.logger.Info("GetEarliestSlot: shop=%d has no slots within %d days", req.ShopID, horizon)
	return &EarliestResponse{}, nil
}

// loadShopAndCandidates загружает салон и барберов-кандидатов параллельно.
// Кандидаты: запрошенный барбер или все активные барберы салона на смене.
func (uc *UseCase) loadShopAndCandidates(
	ctx context.Context,
	op string,
	shopID int64,
	barberID *int64,
) (*domain.Shop, []*domain.Barber, error) {
	var (
		shop    *domain.Shop
		barbers []*domain.Barber
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := uc.shopRepo.GetShopByID(gctx, shopID)
		if err != nil {
			if errors.Is(err, shopRepo.ErrShopNotFound) {
				uc.logger.Warn("%s: shop id=%d not found", op, shopID)
				return ErrShopNotFound
			}
			uc.logger.Error("%s: failed to get shop id=%d: %v", op, shopID, err)
			return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
		}
		if !s.IsActive {
			uc.logger.Warn("%s: shop id=%d is inactive", op, shopID)
			return ErrShopNotFound
		}
		shop = s
		return nil
	})

	g.Go(func() error {
		if barberID != nil {
			b, err := uc.shopRepo.GetBarberByID(gctx, *barberID)
			if err != nil {
				if errors.Is(err, shopRepo.ErrBarberNotFound) {
					uc.logger.Warn("%s: barber id=%d not found", op, *barberID)
					return ErrBarberNotFound
				}
				uc.logger.Error("%s: failed to get barber id=%d: %v", op, *barberID, err)
				return fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
			}
			if b.ShopID != shopID {
				uc.logger.Warn("%s: barber id=%d does not belong to shop=%d", op, b.ID, shopID)
				return ErrBarberNotFound
			}
			barbers = []*domain.Barber{b}
			return nil
		}

		list, err := uc.shopRepo.GetBarbersByShop(gctx, shopID)
		if err != nil {
			uc.logger.Error("%s: failed to get barbers of shop=%d: %v", op, shopID, err)
			return fmt.Errorf("%w: failed to get barbers: %v", ErrInternal, err)
		}
		barbers = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	candidates := make([]*domain.Barber, 0, len(barbers))
	for _, b := range barbers {
		if b.IsBookable() {
			candidates = append(candidates, b)
		}
	}

	return shop, candidates, nil
}

func barberIDs(barbers []*domain.Barber) []int64 {
	ids := make([]int64, 0, len(barbers))
	for _, b := range barbers {
		ids = append(ids, b.ID)
	}
	return ids
}

func barberLabel(id *int64) string {
	if id == nil {
		return "any"
	}
	return fmt.Sprintf("%d", *id)
}

