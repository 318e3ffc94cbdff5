package domain

import "time"

// CalendarDate drops the time of day, keeping the date as seen in t's own location.
// The result is expressed at UTC midnight so that dates from different zones compare directly.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDate(b).Sub(CalendarDate(a)).Hours() / 24)
}

// DaysApart is the absolute calendar day distance between a and b.
func DaysApart(a, b time.Time) int {
	d := DaysBetween(a, b)
	if d < 0 {
		return -d
	}
	return d
}

// WeekdayIndex maps Monday to 0 and Sunday to 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday that opens the Mon-Sun week containing t.
func WeekStart(t time.Time) time.Time {
	return CalendarDate(t).AddDate(0, 0, -WeekdayIndex(t))
}

// SameWeek reports whether a and b fall into the same Mon-Sun week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}
