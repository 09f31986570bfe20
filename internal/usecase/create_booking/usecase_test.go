package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// memStore общее хранилище для фейковых репозиториев
type memStore struct {
	mu        sync.Mutex
	shops     map[int64]*domain.Shop
	barbers   []*domain.Barber
	bookings  []*domain.Booking
	nextID    int64
	createErr []error // ошибки, которые Create вернет по очереди
}

type memBookings struct{ s *memStore }

func (r memBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if len(r.s.createErr) > 0 {
		err := r.s.createErr[0]
		r.s.createErr = r.s.createErr[1:]
		return nil, err
	}
	for _, existing := range r.s.bookings {
		if existing.BarberID == b.BarberID && existing.BookingDate.Equal(b.BookingDate) &&
			existing.StartTime == b.StartTime && !existing.IsCancelled() {
			return nil, bookingRepo.ErrSlotNotAvailable
		}
	}
	r.s.nextID++
	cp := *b
	cp.ID = r.s.nextID
	cp.SettlementStatus = domain.SettlementStatusPending
	r.s.bookings = append(r.s.bookings, &cp)
	out := cp
	return &out, nil
}

func (r memBookings) GetBarberBookings(_ context.Context, ids []int64, from, to time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		for _, id := range ids {
			if b.BarberID == id && !b.BookingDate.Before(from) && !b.BookingDate.After(to) && !b.IsCancelled() {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (r memBookings) CountCashBookings(_ context.Context, userID int64, from, to time.Time) (int, error) {
	count := 0
	for _, b := range r.s.bookings {
		if b.UserID != nil && *b.UserID == userID && b.PaymentMethod == domain.PaymentCash &&
			!b.IsCancelled() && !b.BookingDate.Before(from) && !b.BookingDate.After(to) {
			count++
		}
	}
	return count, nil
}

type memShops struct{ s *memStore }

func (r memShops) GetShopByID(_ context.Context, id int64) (*domain.Shop, error) {
	shop, ok := r.s.shops[id]
	if !ok {
		return nil, shopRepo.ErrShopNotFound
	}
	return shop, nil
}

func (r memShops) GetBarberByID(_ context.Context, id int64) (*domain.Barber, error) {
	for _, b := range r.s.barbers {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, shopRepo.ErrBarberNotFound
}

func (r memShops) GetBarbersByShop(_ context.Context, shopID int64) ([]*domain.Barber, error) {
	out := make([]*domain.Barber, 0)
	for _, b := range r.s.barbers {
		if b.ShopID == shopID {
			out = append(out, b)
		}
	}
	return out, nil
}

// lockingTx сериализует транзакции целиком, как это делает блокировка строк барберов
type lockingTx struct {
	s      *memStore
	before func()
}

func (t lockingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.before != nil {
		t.before()
	}
	return fn(ctx)
}

type staticConfig struct{ cfg *domain.SystemConfig }

func (c staticConfig) Get(context.Context) (*domain.SystemConfig, error) {
	return c.cfg, nil
}

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (m *countingMetrics) IncBookingCreated(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *countingMetrics) IncReservationConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

// sequenceRandom возвращает значения по очереди, затем повторяет последнее
type sequenceRandom struct {
	mu     sync.Mutex
	values []int
}

func (r *sequenceRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v % n
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newStore() *memStore {
	return &memStore{
		shops: map[int64]*domain.Shop{
			1: {
				ID:                  1,
				OwnerID:             100,
				BufferTime:          0,
				MinBookingNotice:    30,
				MaxBookingNotice:    60,
				AutoApproveBookings: true,
				IsActive:            true,
			},
		},
		barbers: []*domain.Barber{
			{ID: 10, ShopID: 1, DefaultStartHour: "09:00", DefaultEndHour: "18:00", IsActive: true, IsAvailable: true},
			{ID: 11, ShopID: 1, DefaultStartHour: "09:00", DefaultEndHour: "18:00", IsActive: true, IsAvailable: true},
		},
	}
}

type fixture struct {
	uc      *UseCase
	store   *memStore
	config  *domain.SystemConfig
	metrics *countingMetrics
	random  *sequenceRandom
}

func newFixture(store *memStore, before func()) *fixture {
	cfg := &domain.SystemConfig{
		AdminCommissionRate: decimal.NewFromInt(10),
		UserDiscountRate:    decimal.NewFromInt(5),
	}
	m := &countingMetrics{}
	rnd := &sequenceRandom{values: []int{0}}

	uc := NewUseCase(
		memBookings{s: store},
		memShops{s: store},
		staticConfig{cfg: cfg},
		lockingTx{s: store, before: before},
		events.NopPublisher{},
		m,
		Options{GracePeriodMinutes: 2, MaxReservationAttempts: 3},
		logger.NewNop(),
	)
	uc.timeProvider = fixedTime{now: now}
	uc.random = rnd

	return &fixture{uc: uc, store: store, config: cfg, metrics: m, random: rnd}
}

func onlineRequest(barberID *int64, date time.Time, start string) *Request {
	return &Request{
		RequesterID:     7,
		ShopID:          1,
		BarberID:        barberID,
		UserID:          ptr.Ptr(int64(7)),
		Date:            date,
		StartTime:       types.TimeString(start),
		DurationMinutes: 30,
		ServiceNames:    []string{"Haircut"},
		OriginalPrice:   ptr.Ptr(1000.0),
		PaymentMethod:   string(domain.PaymentOnline),
		Type:            string(domain.TypeOnline),
	}
}

func TestExecute_CreatesBookingWithSnapshot(t *testing.T) {
	f := newFixture(newStore(), nil)
	f.random.values = []int{42}

	booking, err := f.uc.Execute(context.Background(), onlineRequest(ptr.Ptr(int64(10)), now, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(10), booking.BarberID)
	assert.Equal(t, domain.StatusUpcoming, booking.Status)
	assert.Equal(t, types.TimeString("10:30"), booking.EndTime)
	assert.Equal(t, "0042", booking.BookingKey)
	assert.Equal(t, "50", booking.Financials.DiscountAmount.String())
	assert.Equal(t, "950", booking.Financials.FinalPrice.String())
	assert.Equal(t, "100", booking.Financials.AdminCommission.String())
	assert.Equal(t, "50", booking.Financials.AdminNetRevenue.String())
	assert.Equal(t, "900", booking.Financials.BarberNetRevenue.String())
	assert.Equal(t, domain.CollectedByAdmin, booking.Financials.AmountCollectedBy)
	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_SnapshotTakenBeforeTransaction(t *testing.T) {
	store := newStore()
	var cfg *domain.SystemConfig
	f := newFixture(store, func() {
		// ставки меняются администратором, пока резервирование ждет блокировку
		cfg.AdminCommissionRate = decimal.NewFromInt(50)
	})
	cfg = f.config

	booking, err := f.uc.Execute(context.Background(), onlineRequest(ptr.Ptr(int64(10)), now, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, "100", booking.Financials.AdminCommission.String())
	assert.Equal(t, "900", booking.Financials.BarberNetRevenue.String())
}

func TestExecute_PendingWithoutAutoApprove(t *testing.T) {
	store := newStore()
	store.shops[1].AutoApproveBookings = false
	f := newFixture(store, nil)

	booking, err := f.uc.Execute(context.Background(), onlineRequest(nil, now, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, booking.Status)
}

func TestExecute_AnyBarberPicksAmongAvailable(t *testing.T) {
	f := newFixture(newStore(), nil)
	f.random.values = []int{1, 1234}

	booking, err := f.uc.Execute(context.Background(), onlineRequest(nil, now, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), booking.BarberID)
	assert.Equal(t, "1234", booking.BookingKey)

	// барбер 11 занят, остается только 10
	f.random.values = []int{0}
	again := onlineRequest(nil, now, "10:00")
	again.RequesterID, again.UserID = 8, ptr.Ptr(int64(8))

	booking, err = f.uc.Execute(context.Background(), again)
	require.NoError(t, err)
	assert.Equal(t, int64(10), booking.BarberID)

	third := onlineRequest(nil, now, "10:15")
	third.RequesterID, third.UserID = 9, ptr.Ptr(int64(9))

	_, err = f.uc.Execute(context.Background(), third)
	assert.ErrorIs(t, err, ErrNoBarberAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_ConcurrentReservationsOnlyOneWins(t *testing.T) {
	f := newFixture(newStore(), nil)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := onlineRequest(ptr.Ptr(int64(10)), now, "11:00")
			req.RequesterID = int64(200 + i)
			req.UserID = ptr.Ptr(req.RequesterID)
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.bookings, 1)
}

func TestExecute_OverlapWithBufferIsConflict(t *testing.T) {
	store := newStore()
	store.shops[1].BufferTime = 10
	f := newFixture(store, nil)

	_, err := f.uc.Execute(context.Background(), onlineRequest(ptr.Ptr(int64(10)), now, "10:00"))
	require.NoError(t, err)

	// 10:00-10:30 + 10 минут буфера занимают барбера до 10:40
	_, err = f.uc.Execute(context.Background(), onlineRequest(ptr.Ptr(int64(10)), now, "10:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(context.Background(), onlineRequest(ptr.Ptr(int64(10)), now, "10:40"))
	assert.NoError(t, err)
}

func TestExecute_RetriesSerializationFailure(t *testing.T) {
	store := newStore()
	store.createErr = []error{bookingRepo.ErrSerialization}
	f := newFixture(store, nil)

	booking, err := f.uc.Execute(context.Background(), onlineRequest(nil, now, "12:00"))
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, 0, f.metrics.conflicts)
}

func TestExecute_GivesUpAfterMaxAttempts(t *testing.T) {
	store := newStore()
	store.createErr = []error{bookingRepo.ErrSerialization, bookingRepo.ErrSerialization, bookingRepo.ErrSlotNotAvailable}
	f := newFixture(store, nil)

	_, err := f.uc.Execute(context.Background(), onlineRequest(nil, now, "12:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_CashCapCountsBookingMonth(t *testing.T) {
	store := newStore()
	f := newFixture(store, nil)
	f.config.MaxCashBookingsPerMonth = 1

	march20 := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	april2 := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	cash := func(date time.Time, start string) *Request {
		req := onlineRequest(ptr.Ptr(int64(10)), date, start)
		req.PaymentMethod = string(domain.PaymentCash)
		return req
	}

	_, err := f.uc.Execute(context.Background(), cash(march20, "10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), cash(march20, "12:00"))
	assert.ErrorIs(t, err, ErrCashLimitExceeded)
	assert.ErrorIs(t, err, domain.ErrValidation)
	reason, ok := domain.ReasonOf(err)
	assert.True(t, ok)
	assert.Contains(t, reason, "1 per month")

	// апрель считается отдельно, хотя бронирование делается в марте
	_, err = f.uc.Execute(context.Background(), cash(april2, "10:00"))
	assert.NoError(t, err)

	// онлайн-оплата лимитом не ограничена
	_, err = f.uc.Execute(context.Background(), onlineRequest(ptr.Ptr(int64(10)), march20, "14:00"))
	assert.NoError(t, err)
}

func TestExecute_TimingPolicy(t *testing.T) {
	f := newFixture(newStore(), nil)
	ctx := context.Background()

	// now = 09:00, minBookingNotice = 30, grace = 2
	_, err := f.uc.Execute(ctx, onlineRequest(nil, now, "08:30"))
	assert.ErrorIs(t, err, ErrPastDateTime)

	_, err = f.uc.Execute(ctx, onlineRequest(nil, now, "09:15"))
	assert.ErrorIs(t, err, ErrTooLateToBook)
	reason, ok := domain.ReasonOf(err)
	assert.True(t, ok)
	assert.Equal(t, "Must book at least 30 minutes in advance", reason)

	_, err = f.uc.Execute(ctx, onlineRequest(nil, now, "09:28"))
	assert.NoError(t, err, "grace period tolerates two minutes")

	_, err = f.uc.Execute(ctx, onlineRequest(nil, now.AddDate(0, 0, 61), "10:00"))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	reason, ok = domain.ReasonOf(err)
	assert.True(t, ok)
	assert.Contains(t, reason, "days in advance")

	_, err = f.uc.Execute(ctx, onlineRequest(nil, now.AddDate(0, 0, -1), "10:00"))
	assert.ErrorIs(t, err, ErrPastDateTime)
}

func TestExecute_WalkInSkipsTimingButNeedsOwner(t *testing.T) {
	f := newFixture(newStore(), nil)
	ctx := context.Background()

	walkIn := &Request{
		RequesterID:     100,
		ShopID:          1,
		BarberID:        ptr.Ptr(int64(10)),
		Date:            now,
		StartTime:       "09:00",
		DurationMinutes: 30,
		OriginalPrice:   ptr.Ptr(500.0),
		PaymentMethod:   string(domain.PaymentCash),
		Type:            string(domain.TypeWalkIn),
	}

	booking, err := f.uc.Execute(ctx, walkIn)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUpcoming, booking.Status)
	assert.Nil(t, booking.UserID)
	assert.Equal(t, domain.CollectedByBarber, booking.Financials.AmountCollectedBy)
	assert.NotNil(t, booking.ServiceNames)

	blocked := *walkIn
	blocked.Type = string(domain.TypeBlocked)
	blocked.StartTime = "13:00"
	booking, err = f.uc.Execute(ctx, &blocked)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, booking.Status)

	stranger := *walkIn
	stranger.RequesterID = 7
	stranger.StartTime = "15:00"
	_, err = f.uc.Execute(ctx, &stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_PreChecks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "missing start time",
			mutate:  func(r *Request) { r.StartTime = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown payment method",
			mutate:  func(r *Request) { r.PaymentMethod = "barter" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative price",
			mutate:  func(r *Request) { r.OriginalPrice = ptr.Ptr(-1.0) },
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "missing price",
			mutate:  func(r *Request) { r.OriginalPrice = nil },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown shop",
			mutate:  func(r *Request) { r.ShopID = 99 },
			wantErr: ErrShopNotFound,
		},
		{
			name:    "online without user",
			mutate:  func(r *Request) { r.UserID = nil },
			wantErr: ErrUserRequired,
		},
		{
			name:    "booking for someone else",
			mutate:  func(r *Request) { r.UserID = ptr.Ptr(int64(8)) },
			wantErr: ErrAccessDenied,
		},
		{
			name:    "barber of another shop",
			mutate:  func(r *Request) { r.BarberID = ptr.Ptr(int64(77)) },
			wantErr: ErrBarberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(newStore(), nil)
			req := onlineRequest(ptr.Ptr(int64(10)), now, "10:00")
			tt.mutate(req)

			_, err := f.uc.Execute(ctx, req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExecute_InactiveShopIsNotFound(t *testing.T) {
	store := newStore()
	store.shops[1].IsActive = false
	f := newFixture(store, nil)

	_, err := f.uc.Execute(context.Background(), onlineRequest(nil, now, "10:00"))
	assert.ErrorIs(t, err, ErrShopNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
