package update_shop_settings

import "github.com/m04kA/SMC-SalonBooking/internal/service/shops/models"

// UpdateSettingsRequest HTTP request model, все поля опциональны
type UpdateSettingsRequest struct {
	BufferTime          *int  `json:"bufferTime,omitempty"`
	MinBookingNotice    *int  `json:"minBookingNotice,omitempty"`
	MaxBookingNotice    *int  `json:"maxBookingNotice,omitempty"`
	AutoApproveBookings *bool `json:"autoApproveBookings,omitempty"`
	BlockCustomBookings *bool `json:"blockCustomBookings,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(requesterID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		RequesterID:         requesterID,
		BufferTime:          r.BufferTime,
		MinBookingNotice:    r.MinBookingNotice,
		MaxBookingNotice:    r.MaxBookingNotice,
		AutoApproveBookings: r.AutoApproveBookings,
		BlockCustomBookings: r.BlockCustomBookings,
	}
}
