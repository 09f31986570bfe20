package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveSchedule_DefaultHours(t *testing.T) {
	barber := &Barber{DefaultStartHour: "09:00", DefaultEndHour: "18:00"}

	got := ResolveSchedule(barber, date("2026-03-02"))

	assert.Equal(t, DaySchedule{IsOpen: true, StartMinutes: 540, EndMinutes: 1080}, got)
}

func TestResolveSchedule_WeeklyWithBreaks(t *testing.T) {
	barber := &Barber{
		DefaultStartHour: "09:00",
		DefaultEndHour:   "18:00",
		WeeklySchedule: []WeeklyScheduleEntry{
			{Day: time.Monday, IsOpen: true, StartHour: "10:00", Breaks: []Break{{Start: "13:00", End: "14:00"}}},
			{Day: time.Sunday, IsOpen: false},
		},
	}

	monday := ResolveSchedule(barber, date("2026-03-02"))
	assert.True(t, monday.IsOpen)
	assert.Equal(t, 600, monday.StartMinutes)
	assert.Equal(t, 1080, monday.EndMinutes, "blank end hour falls back to default")
	assert.Equal(t, []Interval{{Start: 780, End: 840}}, monday.Breaks)

	sunday := ResolveSchedule(barber, date("2026-03-01"))
	assert.False(t, sunday.IsOpen)

	tuesday := ResolveSchedule(barber, date("2026-03-03"))
	assert.False(t, tuesday.IsOpen, "weekday missing from a non-empty weekly schedule is a day off")
}

func TestResolveSchedule_SpecialHoursWin(t *testing.T) {
	barber := &Barber{
		DefaultStartHour: "09:00",
		DefaultEndHour:   "18:00",
		WeeklySchedule: []WeeklyScheduleEntry{
			{Day: time.Monday, IsOpen: true, StartHour: "10:00", EndHour: "19:00"},
		},
		SpecialHours: []SpecialHours{
			{Date: "2026-03-02", IsOpen: true, StartHour: "12:00"},
			{Date: "2026-03-09", IsOpen: false},
		},
	}

	special := ResolveSchedule(barber, date("2026-03-02"))
	assert.Equal(t, DaySchedule{IsOpen: true, StartMinutes: 720, EndMinutes: 1080}, special)

	closed := ResolveSchedule(barber, date("2026-03-09"))
	assert.False(t, closed.IsOpen)
}

func TestResolveSchedule_Overnight(t *testing.T) {
	barber := &Barber{
		DefaultStartHour: "09:00",
		DefaultEndHour:   "18:00",
		WeeklySchedule: []WeeklyScheduleEntry{
			{Day: time.Monday, IsOpen: true, StartHour: "22:00", EndHour: "02:00",
				Breaks: []Break{{Start: "00:30", End: "00:45"}}},
		},
	}

	got := ResolveSchedule(barber, date("2026-03-02"))

	assert.True(t, got.IsOvernight())
	assert.Equal(t, 1320, got.StartMinutes)
	assert.Equal(t, 1560, got.EndMinutes)
	assert.Equal(t, []Interval{{Start: 1470, End: 1485}}, got.Breaks)
}

func TestResolveSchedule_UnparsableHoursClosed(t *testing.T) {
	barber := &Barber{DefaultStartHour: "nine", DefaultEndHour: "18:00"}

	assert.False(t, ResolveSchedule(barber, date("2026-03-02")).IsOpen)
}

func TestInterval_Overlaps(t *testing.T) {
	a := Interval{Start: 600, End: 630}

	assert.True(t, a.Overlaps(Interval{Start: 620, End: 640}))
	assert.False(t, a.Overlaps(Interval{Start: 630, End: 660}), "touching edges do not overlap")
	assert.False(t, a.Overlaps(Interval{Start: 570, End: 600}))
}
