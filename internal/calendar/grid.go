// Package calendar builds the month grid shown to customers picking a date.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// DefaultLocale used for empty or unsupported locales
const DefaultLocale = "en"

var translators = map[string]locales.Translator{
	"en": en.New(),
	"fr": fr.New(),
}

// mondayFirst column order of the grid
var mondayFirst = [domain.DaysInWeek]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// BuildMonthGrid lays out the month containing reference as Monday-first weeks.
// Days before the 1st and after the last day are taken from the adjacent months.
// today drives IsToday and IsPast; locale affects only labels and title.
func BuildMonthGrid(reference, today time.Time, locale string) (*domain.MonthGrid, error) {
	if reference.IsZero() {
		return nil, fmt.Errorf("%w: reference date is required", domain.ErrValidation)
	}

	tr := translator(locale)
	first := FirstOfMonth(reference)
	last := first.AddDate(0, 1, -1)

	leading := mondayIndex(first.Weekday())
	trailing := domain.DaysInWeek - 1 - mondayIndex(last.Weekday())
	total := leading + last.Day() + trailing

	grid := &domain.MonthGrid{
		Month: first,
		Title: fmt.Sprintf("%s %d", tr.MonthWide(first.Month()), first.Year()),
		Weeks: make([][domain.DaysInWeek]domain.CalendarDay, 0, total/domain.DaysInWeek),
	}
	for i, wd := range mondayFirst {
		grid.WeekdayLabels[i] = tr.WeekdayAbbreviated(wd)
	}

	var week [domain.DaysInWeek]domain.CalendarDay
	for i := 0; i < total; i++ {
		date := time.Date(first.Year(), first.Month(), 1-leading+i, 0, 0, 0, 0, first.Location())
		week[i%domain.DaysInWeek] = domain.CalendarDay{
			Date:           date,
			Day:            date.Day(),
			IsToday:        domain.SameDay(date, today),
			IsPast:         domain.IsPastDay(date, today),
			IsCurrentMonth: date.Month() == first.Month(),
		}
		if i%domain.DaysInWeek == domain.DaysInWeek-1 {
			grid.Weeks = append(grid.Weeks, week)
		}
	}

	return grid, nil
}

// FirstOfMonth midnight of the 1st of t's month
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// NextMonth first day of the month after t's
func NextMonth(t time.Time) time.Time {
	return FirstOfMonth(t).AddDate(0, 1, 0)
}

// PrevMonth first day of the month before t's
func PrevMonth(t time.Time) time.Time {
	return FirstOfMonth(t).AddDate(0, -1, 0)
}

// ParseMonth parses "YYYY-MM"
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.MonthFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q, expected YYYY-MM", domain.ErrValidation, s)
	}
	return t, nil
}

// NormalizeLocale maps "fr-FR", "FR" and friends onto a supported code
func NormalizeLocale(locale string) string {
	code := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if _, ok := translators[code]; ok {
		return code
	}
	return DefaultLocale
}

func translator(locale string) locales.Translator {
	return translators[NormalizeLocale(locale)]
}

func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % domain.DaysInWeek
}
