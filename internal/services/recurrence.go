package services

import (
	"time"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
)

// NextDueDate computes the due date of the next occurrence of a recurring
// todo. The time of day is preserved. Callers must only invoke it for a
// recurrence other than none; for none the input is returned unchanged.
func NextDueDate(due time.Time, recurrence models.Recurrence) time.Time {
	switch recurrence {
	case models.RecurrenceDaily:
		return due.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		return due.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		return nextMonthlyDueDate(due)
	}
	return due
}

// nextMonthlyDueDate moves the date to the same day-of-month in the
// following month, wrapping December into January of the next year. When the
// target month is shorter than the source day-of-month, the day clamps to
// the last valid day of the target month.
func nextMonthlyDueDate(due time.Time) time.Time {
	year, month, day := due.Date()

	month++
	if month > time.December {
		month = time.January
		year++
	}

	if last := daysInMonth(month, year); day > last {
		day = last
	}

	hour, min, sec := due.Clock()
	return time.Date(year, month, day, hour, min, sec, due.Nanosecond(), due.Location())
}

func daysInMonth(month time.Month, year int) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
