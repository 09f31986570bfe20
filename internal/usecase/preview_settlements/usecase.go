package preview_settlements

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UseCase предпросмотр взаиморасчетов без записи
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute считает, сколько платформа выплатит и сколько соберет по всем салонам.
// Выборка одним запросом, поэтому сводка построена по согласованному снимку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CutoffDate.IsZero() {
		uc.logger.Warn("PreviewSettlements: validation failed: cutoffDate is required")
		return nil, fmt.Errorf("%w: cutoffDate is required", ErrInvalidInput)
	}

	cutoff := domain.DateOnly(req.CutoffDate)
	uc.logger.Info("PreviewSettlements: cutoff=%s", cutoff.Format(domain.DateFormat))

	bookings, err := uc.bookingRepo.GetEligibleForSettlement(ctx, domain.EligibleBookingsFilter{CutoffDate: &cutoff})
	if err != nil {
		uc.logger.Error("PreviewSettlements: failed to get eligible bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get eligible bookings: %v", ErrInternal, err)
	}

	resp := &Response{
		CutoffDate:      cutoff,
		TotalPayout:     decimal.Zero,
		TotalCollection: decimal.Zero,
		Shops:           make([]ShopLine, 0),
	}

	for _, group := range groupByShop(bookings) {
		totals := domain.CalculateSettlement(group)

		resp.Shops = append(resp.Shops, ShopLine{
			ShopID:       group[0].ShopID,
			Type:         totals.Type,
			Amount:       totals.Amount,
			BookingCount: len(group),
			DateFrom:     totals.DateFrom,
			DateTo:       totals.DateTo,
		})

		switch totals.Type {
		case domain.SettlementPayout:
			resp.TotalPayout = resp.TotalPayout.Add(totals.Amount)
		case domain.SettlementCollection:
			resp.TotalCollection = resp.TotalCollection.Add(totals.Amount)
		}
	}
	resp.ShopCount = len(resp.Shops)

	uc.logger.Info("PreviewSettlements: %d shops, payout=%s, collection=%s",
		resp.ShopCount, resp.TotalPayout.StringFixed(2), resp.TotalCollection.StringFixed(2))

	return resp, nil
}

// groupByShop группы бронирований в порядке первого появления салона
func groupByShop(bookings []*domain.Booking) [][]*domain.Booking {
	index := make(map[int64]int)
	groups := make([][]*domain.Booking, 0)

	for _, b := range bookings {
		i, ok := index[b.ShopID]
		if !ok {
			i = len(groups)
			index[b.ShopID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], b)
	}

	return groups
}
