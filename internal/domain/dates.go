package domain

import "time"

// DateOnly календарная дата t как полночь UTC.
// Все даты бронирований хранятся и сравниваются в этом виде.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween количество календарных дней от from до to (может быть отрицательным)
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// MonthRange первый и последний день месяца, в котором находится date
func MonthRange(date time.Time) (time.Time, time.Time) {
	y, m, _ := date.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// MinuteOfDay минута от начала суток для t в его собственной зоне
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
