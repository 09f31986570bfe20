package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementType направление денег
type SettlementType string

const (
	SettlementPayout     SettlementType = "PAYOUT"     // платформа -> салон
	SettlementCollection SettlementType = "COLLECTION" // салон -> платформа
)

// SettlementState статус взаиморасчета
type SettlementState string

const (
	SettlementStatePending   SettlementState = "PENDING"
	SettlementStateCompleted SettlementState = "COMPLETED"
)

// Settlement запись взаиморасчета между платформой и салоном
type Settlement struct {
	ID          int64
	ShopID      int64
	Type        SettlementType
	Amount      decimal.Decimal // всегда неотрицательная
	BookingIDs  []int64
	DateFrom    time.Time
	DateTo      time.Time
	Status      SettlementState
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// SettlementTotals результат расчета по набору бронирований
type SettlementTotals struct {
	Net        decimal.Decimal
	Type       SettlementType
	Amount     decimal.Decimal
	BookingIDs []int64
	DateFrom   time.Time
	DateTo     time.Time
}

// CalculateSettlement сальдо по бронированиям:
// net = сумма barberNet по оплаченным платформе - сумма adminNet по оплаченным в салоне.
func CalculateSettlement(bookings []*Booking) SettlementTotals {
	net := decimal.Zero
	totals := SettlementTotals{BookingIDs: make([]int64, 0, len(bookings))}

	for i, b := range bookings {
		switch b.Financials.AmountCollectedBy {
		case CollectedByAdmin:
			net = net.Add(b.Financials.BarberNetRevenue)
		case CollectedByBarber:
			net = net.Sub(b.Financials.AdminNetRevenue)
		}

		totals.BookingIDs = append(totals.BookingIDs, b.ID)

		date := DateOnly(b.BookingDate)
		if i == 0 || date.Before(totals.DateFrom) {
			totals.DateFrom = date
		}
		if i == 0 || date.After(totals.DateTo) {
			totals.DateTo = date
		}
	}

	totals.Net = round2(net)
	if totals.Net.IsNegative() {
		totals.Type = SettlementCollection
		totals.Amount = totals.Net.Abs()
	} else {
		totals.Type = SettlementPayout
		totals.Amount = totals.Net
	}

	return totals
}
