package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Shop салон и его политика бронирования
type Shop struct {
	ID                  int64
	OwnerID             int64
	Name                string
	BufferTime          int // минуты после каждой услуги
	MinBookingNotice    int // минуты
	MaxBookingNotice    int // дни, 0 = без ограничения
	AutoApproveBookings bool
	BlockCustomBookings bool
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (s *Shop) HasMaxBookingNotice() bool {
	return s.MaxBookingNotice > 0
}

// Barber мастер салона
type Barber struct {
	ID               int64
	ShopID           int64
	Name             string
	DefaultStartHour types.TimeString
	DefaultEndHour   types.TimeString
	WeeklySchedule   []WeeklyScheduleEntry
	SpecialHours     []SpecialHours
	IsAvailable      bool // ручной переключатель "на смене"
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsBookable активный барбер на смене
func (b *Barber) IsBookable() bool {
	return b.IsActive && b.IsAvailable
}

// WeeklyScheduleEntry расписание на день недели (0 = воскресенье)
type WeeklyScheduleEntry struct {
	Day       time.Weekday     `json:"day"`
	IsOpen    bool             `json:"isOpen"`
	StartHour types.TimeString `json:"startHour,omitempty"`
	EndHour   types.TimeString `json:"endHour,omitempty"`
	Breaks    []Break          `json:"breaks,omitempty"`
}

type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// SpecialHours переопределение часов на конкретную дату
type SpecialHours struct {
	Date      string           `json:"date"` // YYYY-MM-DD
	IsOpen    bool             `json:"isOpen"`
	StartHour types.TimeString `json:"startHour,omitempty"`
	EndHour   types.TimeString `json:"endHour,omitempty"`
}

// ShopSettings изменяемая владельцем политика бронирования
type ShopSettings struct {
	BufferTime          int
	MinBookingNotice    int
	MaxBookingNotice    int
	AutoApproveBookings bool
	BlockCustomBookings bool
}
