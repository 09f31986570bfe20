package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UpdateSettingsRequest запрос на изменение политики бронирования салона.
// Все поля опциональны - обновляются только переданные значения.
type UpdateSettingsRequest struct {
	RequesterID         int64
	BufferTime          *int  `json:"bufferTime,omitempty"`
	MinBookingNotice    *int  `json:"minBookingNotice,omitempty"`
	MaxBookingNotice    *int  `json:"maxBookingNotice,omitempty"`
	AutoApproveBookings *bool `json:"autoApproveBookings,omitempty"`
	BlockCustomBookings *bool `json:"blockCustomBookings,omitempty"`
}

// Apply накладывает переданные поля на текущие настройки
func (r *UpdateSettingsRequest) Apply(current domain.ShopSettings) domain.ShopSettings {
	if r.BufferTime != nil {
		current.BufferTime = *r.BufferTime
	}
	if r.MinBookingNotice != nil {
		current.MinBookingNotice = *r.MinBookingNotice
	}
	if r.MaxBookingNotice != nil {
		current.MaxBookingNotice = *r.MaxBookingNotice
	}
	if r.AutoApproveBookings != nil {
		current.AutoApproveBookings = *r.AutoApproveBookings
	}
	if r.BlockCustomBookings != nil {
		current.BlockCustomBookings = *r.BlockCustomBookings
	}
	return current
}

// SettingsResponse политика бронирования салона
type SettingsResponse struct {
	ShopID              int64     `json:"shopId"`
	BufferTime          int       `json:"bufferTime"`       // минуты
	MinBookingNotice    int       `json:"minBookingNotice"` // минуты
	MaxBookingNotice    int       `json:"maxBookingNotice"` // дни, 0 = без ограничения
	AutoApproveBookings bool      `json:"autoApproveBookings"`
	BlockCustomBookings bool      `json:"blockCustomBookings"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainShop конвертирует domain модель в DTO
func FromDomainShop(s *domain.Shop) *SettingsResponse {
	return &SettingsResponse{
		ShopID:              s.ID,
		BufferTime:          s.BufferTime,
		MinBookingNotice:    s.MinBookingNotice,
		MaxBookingNotice:    s.MaxBookingNotice,
		AutoApproveBookings: s.AutoApproveBookings,
		BlockCustomBookings: s.BlockCustomBookings,
		UpdatedAt:           s.UpdatedAt,
	}
}

// SettingsOf текущая политика салона
func SettingsOf(s *domain.Shop) domain.ShopSettings {
	return domain.ShopSettings{
		BufferTime:          s.BufferTime,
		MinBookingNotice:    s.MinBookingNotice,
		MaxBookingNotice:    s.MaxBookingNotice,
		AutoApproveBookings: s.AutoApproveBookings,
		BlockCustomBookings: s.BlockCustomBookings,
	}
}
