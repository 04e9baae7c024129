package domain

import "time"

// DaysInWeek columns of a month grid
const DaysInWeek = 7

// CalendarDay one cell of a month grid
type CalendarDay struct {
	Date           time.Time
	Day            int
	IsToday        bool
	IsPast         bool
	IsCurrentMonth bool
}

// MonthGrid Monday-first weeks covering one month plus adjacent padding days
type MonthGrid struct {
	Month         time.Time // first day of the month
	Title         string    // localized "MMMM yyyy"
	WeekdayLabels [DaysInWeek]string
	Weeks         [][DaysInWeek]CalendarDay
}
