package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SettlementResponse запись взаиморасчета
type SettlementResponse struct {
	ID          int64           `json:"id"`
	ShopID      int64           `json:"shopId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	BookingIDs  []int64         `json:"bookingIds"`
	DateFrom    string          `json:"dateFrom"`
	DateTo      string          `json:"dateTo"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// SettlementListResponse список взаиморасчетов
type SettlementListResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// FromDomainSettlement конвертирует domain модель в DTO
func FromDomainSettlement(s *domain.Settlement) *SettlementResponse {
	resp := &SettlementResponse{
		ID:          s.ID,
		ShopID:      s.ShopID,
		Type:        string(s.Type),
		Amount:      s.Amount,
		BookingIDs:  s.BookingIDs,
		DateFrom:    s.DateFrom.Format(domain.DateFormat),
		DateTo:      s.DateTo.Format(domain.DateFormat),
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
	}
	if resp.BookingIDs == nil {
		resp.BookingIDs = []int64{}
	}
	return resp
}

// FromDomainSettlementList конвертирует список domain моделей в DTO
func FromDomainSettlementList(list []*domain.Settlement) *SettlementListResponse {
	resp := &SettlementListResponse{
		Settlements: make([]SettlementResponse, 0, len(list)),
	}
	for _, s := range list {
		resp.Settlements = append(resp.Settlements, *FromDomainSettlement(s))
	}
	return resp
}
