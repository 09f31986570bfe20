package preview_settlements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса предпросмотра
type Request struct {
	CutoffDate time.Time // Бронирования с датой <= cutoff
}

// Response сводка по всем салонам
type Response struct {
	CutoffDate      time.Time
	ShopCount       int
	TotalPayout     decimal.Decimal // платформа должна салонам
	TotalCollection decimal.Decimal // салоны должны платформе
	Shops           []ShopLine
}

// ShopLine расчет по одному салону
type ShopLine struct {
	ShopID       int64
	Type         domain.SettlementType
	Amount       decimal.Decimal
	BookingCount int
	DateFrom     time.Time
	DateTo       time.Time
}
