package domain

import "time"

// IsBarberAvailable можно ли записать барбера на [start, start+duration+buffer) в дату date.
//
// bookings - неотмененные бронирования этого барбера за date-1, date и date+1;
// бронирования других барберов и отмененные игнорируются.
// Кандидат сначала проверяется против смены текущего дня, затем против ночной смены
// предыдущего дня (со сдвигом на +1440).
func IsBarberAvailable(barber *Barber, date time.Time, start, duration, buffer int, bookings []*Booking) bool {
	candidate := Interval{Start: start, End: start + duration + buffer}

	if !fitsSchedule(barber, date, candidate) {
		return false
	}

	return !hasConflict(barber.ID, date, candidate, bookings)
}

func fitsSchedule(barber *Barber, date time.Time, candidate Interval) bool {
	if ResolveSchedule(barber, date).Fits(candidate) {
		return true
	}

	yesterday := ResolveSchedule(barber, date.AddDate(0, 0, -1))
	if yesterday.IsOvernight() {
		return yesterday.Fits(candidate.Shift(MinutesPerDay))
	}

	return false
}

// hasConflict проверяет пересечение с занятостью барбера.
// Бронирования соседних дат приводятся к минутам даты date (-1440 / +1440).
func hasConflict(barberID int64, date time.Time, candidate Interval, bookings []*Booking) bool {
	for _, b := range bookings {
		if b.BarberID != barberID || b.IsCancelled() {
			continue
		}

		offset := DaysBetween(date, b.BookingDate)
		if offset < -1 || offset > 1 {
			continue
		}

		start, err := b.StartMinutes()
		if err != nil {
			continue
		}

		occupied := Interval{
			Start: start,
			End:   start + b.DurationMinutes + b.BufferMinutes,
		}.Shift(offset * MinutesPerDay)

		if candidate.Overlaps(occupied) {
			return true
		}
	}
	return false
}
