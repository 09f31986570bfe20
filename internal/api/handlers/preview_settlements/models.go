package preview_settlements

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	previewSettlements "github.com/m04kA/SMC-SalonBooking/internal/usecase/preview_settlements"
)

// PreviewResponse HTTP response model
type PreviewResponse struct {
	CutoffDate      string          `json:"cutoffDate"`
	ShopCount       int             `json:"shopCount"`
	TotalPayout     decimal.Decimal `json:"totalPayout"`
	TotalCollection decimal.Decimal `json:"totalCollection"`
	Shops           []ShopLine      `json:"shops"`
}

// ShopLine расчет по одному салону
type ShopLine struct {
	ShopID       int64           `json:"shopId"`
	Type         string          `json:"type"` // PAYOUT или COLLECTION
	Amount       decimal.Decimal `json:"amount"`
	BookingCount int             `json:"bookingCount"`
	DateFrom     string          `json:"dateFrom"`
	DateTo       string          `json:"dateTo"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *previewSettlements.Response) *PreviewResponse {
	shops := make([]ShopLine, 0, len(resp.Shops))
	for _, line := range resp.Shops {
		shops = append(shops, ShopLine{
			ShopID:       line.ShopID,
			Type:         string(line.Type),
			Amount:       line.Amount,
			BookingCount: line.BookingCount,
			DateFrom:     line.DateFrom.Format(domain.DateFormat),
			DateTo:       line.DateTo.Format(domain.DateFormat),
		})
	}

	return &PreviewResponse{
		CutoffDate:      resp.CutoffDate.Format(domain.DateFormat),
		ShopCount:       resp.ShopCount,
		TotalPayout:     resp.TotalPayout,
		TotalCollection: resp.TotalCollection,
		Shops:           shops,
	}
}
