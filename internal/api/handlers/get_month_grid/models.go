package get_month_grid

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// MonthGridResponse HTTP response model
type MonthGridResponse struct {
	Month         string          `json:"month"` // "2024-07"
	Title         string          `json:"title"` // "July 2024"
	WeekdayLabels []string        `json:"weekdayLabels"`
	Weeks         [][]CalendarDay `json:"weeks"`
}

// CalendarDay ячейка сетки
type CalendarDay struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	IsToday        bool   `json:"isToday"`
	IsPast         bool   `json:"isPast"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
}

// FromDomainGrid конвертирует доменную сетку в HTTP response
func FromDomainGrid(grid *domain.MonthGrid) *MonthGridResponse {
	weeks := make([][]CalendarDay, len(grid.Weeks))
	for i, week := range grid.Weeks {
		days := make([]CalendarDay, len(week))
		for j, d := range week {
			days[j] = CalendarDay{
				Date:           d.Date.Format(domain.DateFormat),
				Day:            d.Day,
				IsToday:        d.IsToday,
				IsPast:         d.IsPast,
				IsCurrentMonth: d.IsCurrentMonth,
			}
		}
		weeks[i] = days
	}

	return &MonthGridResponse{
		Month:         grid.Month.Format(domain.MonthFormat),
		Title:         grid.Title,
		WeekdayLabels: grid.WeekdayLabels[:],
		Weeks:         weeks,
	}
}
