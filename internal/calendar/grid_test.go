package calendar

import (
	"testing"
	"time"

	"github.com/go-playground/locales/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func flatten(grid *domain.MonthGrid) []domain.CalendarDay {
	days := make([]domain.CalendarDay, 0, len(grid.Weeks)*domain.DaysInWeek)
	for _, week := range grid.Weeks {
		days = append(days, week[:]...)
	}
	return days
}

func TestBuildMonthGrid_MonthStartingOnMonday(t *testing.T) {
	grid, err := BuildMonthGrid(date(2024, time.July, 20), date(2024, time.July, 15), "en")
	require.NoError(t, err)

	require.Len(t, grid.Weeks, 5)
	for i, day := range grid.Weeks[0] {
		assert.Equal(t, i+1, day.Day)
		assert.True(t, day.IsCurrentMonth)
	}

	lastWeek := grid.Weeks[4]
	assert.Equal(t, 29, lastWeek[0].Day)
	assert.Equal(t, 31, lastWeek[2].Day)
	assert.Equal(t, 1, lastWeek[3].Day)
	assert.False(t, lastWeek[3].IsCurrentMonth)
	assert.Equal(t, 4, lastWeek[6].Day)
	assert.Equal(t, time.Sunday, lastWeek[6].Date.Weekday())

	assert.Equal(t, "July 2024", grid.Title)
	assert.Equal(t, date(2024, time.July, 1), grid.Month)
	assert.Equal(t, [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, grid.WeekdayLabels)
}

func TestBuildMonthGrid_LeadingDaysFromPreviousMonth(t *testing.T) {
	// February 2026 starts on a Sunday: six leading January days
	grid, err := BuildMonthGrid(date(2026, time.February, 1), date(2026, time.February, 10), "en")
	require.NoError(t, err)

	first := grid.Weeks[0]
	for i := 0; i < 6; i++ {
		assert.False(t, first[i].IsCurrentMonth)
		assert.Equal(t, time.January, first[i].Date.Month())
	}
	assert.Equal(t, 26, first[0].Day)
	assert.Equal(t, 1, first[6].Day)
	assert.True(t, first[6].IsCurrentMonth)

	days := flatten(grid)
	assert.Len(t, days, len(grid.Weeks)*7)
	assert.Equal(t, date(2026, time.March, 1), days[len(days)-1].Date)
}

func TestBuildMonthGrid_EveryWeekStartsOnMonday(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		grid, err := BuildMonthGrid(date(2025, m, 10), date(2025, time.June, 1), "en")
		require.NoError(t, err)

		inMonth := 0
		for _, week := range grid.Weeks {
			assert.Equal(t, time.Monday, week[0].Date.Weekday())
			for i := 1; i < 7; i++ {
				assert.Equal(t, week[i-1].Date.AddDate(0, 0, 1), week[i].Date)
			}
			for _, d := range week {
				if d.IsCurrentMonth {
					inMonth++
				}
			}
		}
		assert.Equal(t, date(2025, m+1, 0).Day(), inMonth, m.String())
	}
}

func TestBuildMonthGrid_TodayAndPast(t *testing.T) {
	today := time.Date(2024, time.July, 15, 16, 45, 0, 0, time.UTC)
	grid, err := BuildMonthGrid(today, today, "en")
	require.NoError(t, err)

	for _, d := range flatten(grid) {
		switch {
		case d.Date.Equal(date(2024, time.July, 15)):
			assert.True(t, d.IsToday)
			assert.False(t, d.IsPast)
		case d.Date.Before(date(2024, time.July, 15)):
			assert.False(t, d.IsToday)
			assert.True(t, d.IsPast, d.Date.String())
		default:
			assert.False(t, d.IsToday)
			assert.False(t, d.IsPast, d.Date.String())
		}
	}
}

func TestBuildMonthGrid_LocaleChangesOnlyLabels(t *testing.T) {
	ref := date(2024, time.July, 1)
	today := date(2024, time.July, 15)

	english, err := BuildMonthGrid(ref, today, "en")
	require.NoError(t, err)
	french, err := BuildMonthGrid(ref, today, "fr-FR")
	require.NoError(t, err)

	frTranslator := fr.New()
	assert.Equal(t, frTranslator.WeekdayAbbreviated(time.Monday), french.WeekdayLabels[0])
	assert.NotEqual(t, english.WeekdayLabels, french.WeekdayLabels)
	assert.Equal(t, frTranslator.MonthWide(time.July)+" 2024", french.Title)
	assert.Equal(t, english.Weeks, french.Weeks)
}

func TestBuildMonthGrid_UnknownLocaleFallsBack(t *testing.T) {
	ref := date(2024, time.July, 1)

	english, err := BuildMonthGrid(ref, ref, "en")
	require.NoError(t, err)
	unknown, err := BuildMonthGrid(ref, ref, "xx")
	require.NoError(t, err)
	empty, err := BuildMonthGrid(ref, ref, "")
	require.NoError(t, err)

	assert.Equal(t, english.WeekdayLabels, unknown.WeekdayLabels)
	assert.Equal(t, english.Title, empty.Title)
}

func TestBuildMonthGrid_ZeroReference(t *testing.T) {
	_, err := BuildMonthGrid(time.Time{}, date(2024, time.July, 1), "en")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMonthNavigation(t *testing.T) {
	assert.Equal(t, date(2025, time.January, 1), NextMonth(date(2024, time.December, 31)))
	assert.Equal(t, date(2024, time.February, 1), PrevMonth(date(2024, time.March, 31)))

	month, err := ParseMonth("2024-07", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.July, 1), month)

	_, err = ParseMonth("07/2024", time.UTC)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
