package commit_settlement

// CommitSettlementRequest HTTP request model.
// Пустой bookingIds - все подходящие бронирования салона.
type CommitSettlementRequest struct {
	BookingIDs []int64 `json:"bookingIds,omitempty"`
}
