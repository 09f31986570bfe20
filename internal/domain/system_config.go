package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SystemConfig глобальные параметры платформы.
// Читается один раз при создании бронирования и передается дальше по значению.
type SystemConfig struct {
	AdminCommissionRate     decimal.Decimal `json:"adminCommissionRate"` // %
	UserDiscountRate        decimal.Decimal `json:"userDiscountRate"`    // %
	MaxCashBookingsPerMonth int             `json:"maxCashBookingsPerMonth"`
	IsPaymentTestMode       bool            `json:"isPaymentTestMode"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

// DefaultSystemConfig значения до первой настройки платформы
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		AdminCommissionRate: decimal.NewFromInt(10),
		UserDiscountRate:    decimal.Zero,
	}
}

// HasCashCap ограничено ли число бронирований за наличные в месяц
func (c SystemConfig) HasCashCap() bool {
	return c.MaxCashBookingsPerMonth > 0
}

// Validate ставки в процентах от 0 до 100, лимит неотрицательный
func (c SystemConfig) Validate() error {
	if c.AdminCommissionRate.IsNegative() || c.AdminCommissionRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: adminCommissionRate must be between 0 and 100", ErrValidation)
	}
	if c.UserDiscountRate.IsNegative() || c.UserDiscountRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: userDiscountRate must be between 0 and 100", ErrValidation)
	}
	if c.MaxCashBookingsPerMonth < 0 {
		return fmt.Errorf("%w: maxCashBookingsPerMonth must be non-negative", ErrValidation)
	}
	return nil
}
