package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// TransitionStatusRequest запрос на смену статуса бронирования
type TransitionStatusRequest struct {
	RequesterID int64
	Status      string
	PIN         *string // обязателен для checked-in
	Reason      *string // причина отмены
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	RequesterID int64
	UserID      int64
	Status      *string
}

// GetShopBookingsRequest запрос на получение бронирований салона
type GetShopBookingsRequest struct {
	RequesterID      int64
	ShopID           int64
	BarberID         *int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopBookingsRequest) ToDomainFilter() (domain.ShopBookingsFilter, error) {
	filter := domain.ShopBookingsFilter{
		ShopID:           r.ShopID,
		BarberID:         r.BarberID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// FinancialsResponse финансовый снимок бронирования
type FinancialsResponse struct {
	OriginalPrice     decimal.Decimal `json:"originalPrice"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
	FinalPrice        decimal.Decimal `json:"finalPrice"`
	AdminCommission   decimal.Decimal `json:"adminCommission"`
	AdminNetRevenue   decimal.Decimal `json:"adminNetRevenue"`
	BarberNetRevenue  decimal.Decimal `json:"barberNetRevenue"`
	AmountCollectedBy string          `json:"amountCollectedBy"`
}

// BookingResponse ответ с данными бронирования.
// BookingKey (PIN для check-in) видит только клиент, салон получает его от клиента.
type BookingResponse struct {
	ID                 int64              `json:"id"`
	ShopID             int64              `json:"shopId"`
	BarberID           int64              `json:"barberId"`
	UserID             *int64             `json:"userId,omitempty"`
	BookingDate        string             `json:"bookingDate"` // "2026-03-02"
	StartTime          string             `json:"startTime"`   // "10:00"
	EndTime            string             `json:"endTime"`
	DurationMinutes    int                `json:"durationMinutes"`
	BufferMinutes      int                `json:"bufferMinutes"`
	ServiceNames       []string           `json:"serviceNames"`
	Status             string             `json:"status"`
	Type               string             `json:"type"`
	PaymentMethod      string             `json:"paymentMethod"`
	Financials         FinancialsResponse `json:"financials"`
	SettlementStatus   string             `json:"settlementStatus"`
	SettlementID       *int64             `json:"settlementId,omitempty"`
	BookingKey         string             `json:"bookingKey,omitempty"`
	IsRated            bool               `json:"isRated"`
	Notes              *string            `json:"notes,omitempty"`
	CancellationReason *string            `json:"cancellationReason,omitempty"`
	CancelledAt        *string            `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	f := b.Financials
	resp := &BookingResponse{
		ID:              b.ID,
		ShopID:          b.ShopID,
		BarberID:        b.BarberID,
		UserID:          b.UserID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DurationMinutes: b.DurationMinutes,
		BufferMinutes:   b.BufferMinutes,
		ServiceNames:    b.ServiceNames,
		Status:          string(b.Status),
		Type:            string(b.Type),
		PaymentMethod:   string(b.PaymentMethod),
		Financials: FinancialsResponse{
			OriginalPrice:     f.OriginalPrice,
			DiscountAmount:    f.DiscountAmount,
			FinalPrice:        f.FinalPrice,
			AdminCommission:   f.AdminCommission,
			AdminNetRevenue:   f.AdminNetRevenue,
			BarberNetRevenue:  f.BarberNetRevenue,
			AmountCollectedBy: string(f.AmountCollectedBy),
		},
		SettlementStatus:   string(b.SettlementStatus),
		SettlementID:       b.SettlementID,
		BookingKey:         b.BookingKey,
		IsRated:            b.IsRated,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if resp.ServiceNames == nil {
		resp.ServiceNames = []string{}
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// ForViewer скрывает PIN, если бронирование смотрит не клиент
func (r *BookingResponse) ForViewer(viewerID int64) *BookingResponse {
	if r.UserID == nil || *r.UserID != viewerID {
		r.BookingKey = ""
	}
	return r
}

// FromDomainBookingList конвертирует список domain моделей в DTO для viewerID
func FromDomainBookingList(bookings []*domain.Booking, viewerID int64) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b).ForViewer(viewerID))
	}

	return resp
}
