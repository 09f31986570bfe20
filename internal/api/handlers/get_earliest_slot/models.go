package get_earliest_slot

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// EarliestSlotResponse HTTP response model
type EarliestSlotResponse struct {
	Found     bool   `json:"found"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"startTime,omitempty"`
}

func FromUseCaseResponse(resp *getAvailableSlots.EarliestResponse) *EarliestSlotResponse {
	if !resp.Found {
		return &EarliestSlotResponse{}
	}
	return &EarliestSlotResponse{
		Found:     true,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
	}
}
