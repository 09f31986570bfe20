package systemconfig

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UpdateRequest запрос на изменение конфигурации платформы.
// Все поля опциональны - обновляются только переданные значения.
type UpdateRequest struct {
	AdminCommissionRate     *decimal.Decimal `json:"adminCommissionRate,omitempty"`
	UserDiscountRate        *decimal.Decimal `json:"userDiscountRate,omitempty"`
	MaxCashBookingsPerMonth *int             `json:"maxCashBookingsPerMonth,omitempty"`
	IsPaymentTestMode       *bool            `json:"isPaymentTestMode,omitempty"`
}

// Apply накладывает переданные поля на текущую конфигурацию
func (r *UpdateRequest) Apply(current domain.SystemConfig) domain.SystemConfig {
	if r.AdminCommissionRate != nil {
		current.AdminCommissionRate = *r.AdminCommissionRate
	}
	if r.UserDiscountRate != nil {
		current.UserDiscountRate = *r.UserDiscountRate
	}
	if r.MaxCashBookingsPerMonth != nil {
		current.MaxCashBookingsPerMonth = *r.MaxCashBookingsPerMonth
	}
	if r.IsPaymentTestMode != nil {
		current.IsPaymentTestMode = *r.IsPaymentTestMode
	}
	return current
}

// UpdatedEvent payload события system_config.updated
type UpdatedEvent struct {
	AdminCommissionRate     decimal.Decimal `json:"adminCommissionRate"`
	UserDiscountRate        decimal.Decimal `json:"userDiscountRate"`
	MaxCashBookingsPerMonth int             `json:"maxCashBookingsPerMonth"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}
