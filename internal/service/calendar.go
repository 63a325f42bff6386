package service

import (
	"fmt"
	"time"

	"seyone-academy-go/internal/model"
)

// Default calendar month shown on the dashboard.
const (
	DefaultCalendarYear  = 2023
	DefaultCalendarMonth = time.October
)

// BuildCalendar lays out a Sunday-first month grid: one blank cell per
// weekday before the 1st, then one cell per day carrying the deadlines
// whose date falls on it.
func BuildCalendar(year int, month time.Month, items []model.Deadline) model.CalendarMonth {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()
	offset := int(first.Weekday())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]model.CalendarCell, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, model.CalendarCell{})
	}
	for d := 1; d <= daysInMonth; d++ {
		day := d
		dateStr := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(model.DeadlineDateLayout)
		var matched []model.Deadline
		for _, item := range items {
			if item.Date == dateStr {
				matched = append(matched, item)
			}
		}
		cells = append(cells, model.CalendarCell{Day: &day, Deadlines: matched})
	}

	return model.CalendarMonth{
		Year:  year,
		Month: month,
		Label: fmt.Sprintf("%s %d", month, year),
		Cells: cells,
	}
}

// ShiftMonth moves (year, month) by offset months, crossing years as needed.
func ShiftMonth(year int, month time.Month, offset int) (int, time.Month) {
	t := time.Date(year, month+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}
