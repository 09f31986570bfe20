package commit_settlement

// Request модель запроса на фиксацию взаиморасчета
type Request struct {
	ShopID     int64   // ID салона
	BookingIDs []int64 // Пустой список - все подходящие бронирования салона
}

// CommittedEvent payload события settlement.committed
type CommittedEvent struct {
	SettlementID int64   `json:"settlementId"`
	ShopID       int64   `json:"shopId"`
	Type         string  `json:"type"`
	Amount       string  `json:"amount"`
	BookingIDs   []int64 `json:"bookingIds"`
}
