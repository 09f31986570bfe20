package preview_settlements

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubBookings struct {
	bookings []*domain.Booking
	filter   domain.EligibleBookingsFilter
}

func (s *stubBookings) GetEligibleForSettlement(_ context.Context, filter domain.EligibleBookingsFilter) ([]*domain.Booking, error) {
	s.filter = filter
	return s.bookings, nil
}

func completed(id, shopID int64, day int, collectedBy domain.CollectedBy, adminNet, barberNet int64) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ShopID:      shopID,
		BookingDate: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusCompleted,
		Financials: domain.FinancialSplit{
			AdminNetRevenue:   decimal.NewFromInt(adminNet),
			BarberNetRevenue:  decimal.NewFromInt(barberNet),
			AmountCollectedBy: collectedBy,
		},
	}
}

func TestExecute_SummarisesPerShop(t *testing.T) {
	repo := &stubBookings{bookings: []*domain.Booking{
		completed(1, 1, 3, domain.CollectedByAdmin, 30, 300),
		completed(2, 1, 5, domain.CollectedByBarber, 80, 720),
		completed(3, 2, 4, domain.CollectedByBarber, 50, 450),
	}}
	uc := NewUseCase(repo, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{CutoffDate: time.Date(2026, 3, 31, 15, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	require.NotNil(t, repo.filter.CutoffDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *repo.filter.CutoffDate)
	assert.Nil(t, repo.filter.ShopID)

	assert.Equal(t, 2, resp.ShopCount)
	assert.Equal(t, "220.00", resp.TotalPayout.StringFixed(2))
	assert.Equal(t, "50.00", resp.TotalCollection.StringFixed(2))

	require.Len(t, resp.Shops, 2)
	assert.Equal(t, int64(1), resp.Shops[0].ShopID)
	assert.Equal(t, domain.SettlementPayout, resp.Shops[0].Type)
	assert.Equal(t, 2, resp.Shops[0].BookingCount)
	assert.Equal(t, 3, resp.Shops[0].DateFrom.Day())
	assert.Equal(t, 5, resp.Shops[0].DateTo.Day())
	assert.Equal(t, domain.SettlementCollection, resp.Shops[1].Type)
}

func TestExecute_Empty(t *testing.T) {
	uc := NewUseCase(&stubBookings{}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{CutoffDate: time.Now()})
	require.NoError(t, err)
	assert.Zero(t, resp.ShopCount)
	assert.True(t, resp.TotalPayout.IsZero())
	assert.NotNil(t, resp.Shops)
}

func TestExecute_RequiresCutoff(t *testing.T) {
	uc := NewUseCase(&stubBookings{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
