package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Interval полуоткрытый интервал [Start, End) в минутах от полуночи
type Interval struct {
	Start int
	End   int
}

// Overlaps строгое пересечение: интервалы, касающиеся границами, не пересекаются
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// Shift сдвигает интервал на delta минут
func (i Interval) Shift(delta int) Interval {
	return Interval{Start: i.Start + delta, End: i.End + delta}
}

// DaySchedule рабочее окно барбера на дату.
// EndMinutes может быть больше 1440, если смена уходит за полночь (22:00-02:00 -> 1320..1560).
type DaySchedule struct {
	IsOpen       bool
	StartMinutes int
	EndMinutes   int
	Breaks       []Interval
}

// IsOvernight смена заканчивается на следующие сутки
func (s DaySchedule) IsOvernight() bool {
	return s.IsOpen && s.EndMinutes > MinutesPerDay
}

// Fits интервал целиком внутри окна и не задевает перерывы
func (s DaySchedule) Fits(candidate Interval) bool {
	if !s.IsOpen {
		return false
	}
	if candidate.Start < s.StartMinutes || candidate.End > s.EndMinutes {
		return false
	}
	for _, br := range s.Breaks {
		if candidate.Overlaps(br) {
			return false
		}
	}
	return true
}

var closedDay = DaySchedule{IsOpen: false}

// ResolveSchedule рабочее окно барбера на дату.
// Приоритет: часы на конкретную дату, затем недельное расписание (если задано),
// затем часы по умолчанию без перерывов. Пустые часы выбранной записи берутся из часов по умолчанию.
func ResolveSchedule(barber *Barber, date time.Time) DaySchedule {
	dateKey := date.Format(DateFormat)
	for _, sh := range barber.SpecialHours {
		if sh.Date == dateKey {
			return buildSchedule(barber, sh.IsOpen, sh.StartHour, sh.EndHour, nil)
		}
	}

	if len(barber.WeeklySchedule) > 0 {
		weekday := date.Weekday()
		for _, entry := range barber.WeeklySchedule {
			if entry.Day == weekday {
				return buildSchedule(barber, entry.IsOpen, entry.StartHour, entry.EndHour, entry.Breaks)
			}
		}
		// день недели не описан - выходной
		return closedDay
	}

	return buildSchedule(barber, true, "", "", nil)
}

func buildSchedule(barber *Barber, isOpen bool, startHour, endHour types.TimeString, breaks []Break) DaySchedule {
	if !isOpen {
		return closedDay
	}

	if startHour.IsZero() {
		startHour = barber.DefaultStartHour
	}
	if endHour.IsZero() {
		endHour = barber.DefaultEndHour
	}

	start, err := startHour.Minutes()
	if err != nil {
		return closedDay
	}
	end, err := endHour.Minutes()
	if err != nil {
		return closedDay
	}
	if end <= start {
		end += MinutesPerDay
	}

	schedule := DaySchedule{
		IsOpen:       true,
		StartMinutes: start,
		EndMinutes:   end,
	}

	for _, br := range breaks {
		bs, err := br.Start.Minutes()
		if err != nil {
			continue
		}
		be, err := br.End.Minutes()
		if err != nil {
			continue
		}
		if be <= bs {
			be += MinutesPerDay
		}
		// перерыв ночной смены после полуночи
		if schedule.IsOvernight() && bs < start {
			bs += MinutesPerDay
			be += MinutesPerDay
		}
		schedule.Breaks = append(schedule.Breaks, Interval{Start: bs, End: be})
	}

	return schedule
}
