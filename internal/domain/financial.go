package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FinancialSplit финансовый снимок бронирования
type FinancialSplit struct {
	OriginalPrice     decimal.Decimal
	DiscountAmount    decimal.Decimal
	FinalPrice        decimal.Decimal
	AdminCommission   decimal.Decimal
	AdminNetRevenue   decimal.Decimal
	BarberNetRevenue  decimal.Decimal
	AmountCollectedBy CollectedBy
}

// CalculateFinancialSplit раскладывает цену между платформой и салоном.
// Комиссия считается от исходной цены, скидку платформа покрывает из своей комиссии.
// Округление до копеек, половина от нуля.
func CalculateFinancialSplit(
	originalPrice decimal.Decimal,
	commissionRate decimal.Decimal,
	discountRate decimal.Decimal,
	method PaymentMethod,
) FinancialSplit {
	discount := round2(originalPrice.Mul(discountRate).Div(hundred))
	commission := round2(originalPrice.Mul(commissionRate).Div(hundred))

	return FinancialSplit{
		OriginalPrice:     round2(originalPrice),
		DiscountAmount:    discount,
		FinalPrice:        round2(originalPrice.Sub(discount)),
		AdminCommission:   commission,
		AdminNetRevenue:   round2(commission.Sub(discount)),
		BarberNetRevenue:  round2(originalPrice.Sub(commission)),
		AmountCollectedBy: CollectorFor(method),
	}
}

// CollectorFor онлайн-оплату получает платформа, наличные остаются в салоне
func CollectorFor(method PaymentMethod) CollectedBy {
	switch method {
	case PaymentOnline, PaymentUPI:
		return CollectedByAdmin
	default:
		return CollectedByBarber
	}
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
