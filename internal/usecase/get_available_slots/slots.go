package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// slotParams входные данные генератора слотов на одну дату
type slotParams struct {
	candidates []*domain.Barber
	date       time.Time
	duration   int
	buffer     int
	bookings   []*domain.Booking
	// notBefore первая допустимая минута (now + minBookingNotice для сегодняшней даты, иначе 0)
	notBefore int
}

// generateSlots обходит окно смен кандидатов с шагом 15 минут.
// Время подходит, если свободен хотя бы один кандидат. Если точка сетки занята,
// проверяются следующие 14 минут и первая свободная выдается один раз,
// после чего обход продолжается со следующей точки сетки.
func generateSlots(p slotParams) []types.TimeString {
	minStart, maxEnd, ok := scanWindow(p.candidates, p.date)
	if !ok {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0)

	for t := minStart; t < domain.MinutesPerDay && t < maxEnd; t += domain.SlotStepMinutes {
		if t < p.notBefore {
			continue
		}

		if anyAvailable(p, t) {
			slots = append(slots, types.NewTimeStringFromMinutes(t))
			continue
		}

		for offset := 1; offset <= domain.RecoveryProbeMinutes; offset++ {
			probe := t + offset
			if probe >= domain.MinutesPerDay {
				break
			}
			if anyAvailable(p, probe) {
				slots = append(slots, types.NewTimeStringFromMinutes(probe))
				break
			}
		}
	}

	return slots
}

// scanWindow объединение окон смен всех кандидатов.
// Ночная смена вчерашнего дня продолжается сегодня с полуночи.
func scanWindow(candidates []*domain.Barber, date time.Time) (int, int, bool) {
	minStart, maxEnd := domain.MinutesPerDay, 0
	found := false

	for _, b := range candidates {
		today := domain.ResolveSchedule(b, date)
		if today.IsOpen {
			found = true
			if today.StartMinutes < minStart {
				minStart = today.StartMinutes
			}
			if today.EndMinutes > maxEnd {
				maxEnd = today.EndMinutes
			}
		}

		yesterday := domain.ResolveSchedule(b, date.AddDate(0, 0, -1))
		if yesterday.IsOvernight() {
			found = true
			minStart = 0
			if spill := yesterday.EndMinutes - domain.MinutesPerDay; spill > maxEnd {
				maxEnd = spill
			}
		}
	}

	return minStart, maxEnd, found
}

func anyAvailable(p slotParams, start int) bool {
	for _, b := range p.candidates {
		if domain.IsBarberAvailable(b, p.date, start, p.duration, p.buffer, p.bookings) {
			return true
		}
	}
	return false
}

// noticeCutoff первая минута даты, которую еще можно предложить клиенту.
// ok = false, если дата в прошлом или дальше maxBookingNotice.
func noticeCutoff(shop *domain.Shop, date, now time.Time) (int, bool) {
	days := domain.DaysBetween(now, date)
	if days < 0 {
		return 0, false
	}
	if shop.HasMaxBookingNotice() && days > shop.MaxBookingNotice {
		return 0, false
	}
	if days > 0 {
		return 0, true
	}
	return domain.MinuteOfDay(now) + shop.MinBookingNotice, true
}
