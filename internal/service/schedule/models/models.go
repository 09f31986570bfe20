package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BreakResponse перерыв внутри смены
type BreakResponse struct {
	Start        string `json:"start"` // "HH:MM"
	End          string `json:"end"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
}

// ScheduleResponse рабочее окно барбера на дату.
// Минуты считаются от полуночи даты и могут быть больше 1440 для ночной смены.
type ScheduleResponse struct {
	BarberID     int64           `json:"barberId"`
	Date         string          `json:"date"`
	IsOpen       bool            `json:"isOpen"`
	Start        string          `json:"start,omitempty"`
	End          string          `json:"end,omitempty"`
	StartMinutes int             `json:"startMinutes"`
	EndMinutes   int             `json:"endMinutes"`
	IsOvernight  bool            `json:"isOvernight"`
	Breaks       []BreakResponse `json:"breaks"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(barberID int64, date time.Time, s domain.DaySchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		BarberID: barberID,
		Date:     date.Format(domain.DateFormat),
		IsOpen:   s.IsOpen,
		Breaks:   make([]BreakResponse, 0, len(s.Breaks)),
	}

	if !s.IsOpen {
		return resp
	}

	resp.Start = types.NewTimeStringFromMinutes(s.StartMinutes).String()
	resp.End = types.NewTimeStringFromMinutes(s.EndMinutes).String()
	resp.StartMinutes = s.StartMinutes
	resp.EndMinutes = s.EndMinutes
	resp.IsOvernight = s.IsOvernight()

	for _, br := range s.Breaks {
		resp.Breaks = append(resp.Breaks, BreakResponse{
			Start:        types.NewTimeStringFromMinutes(br.Start).String(),
			End:          types.NewTimeStringFromMinutes(br.End).String(),
			StartMinutes: br.Start,
			EndMinutes:   br.End,
		})
	}

	return resp
}
