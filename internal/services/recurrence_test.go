package services

import (
	"testing"
	"time"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestNextDueDate_Daily(t *testing.T) {
	next := NextDueDate(date(2024, time.March, 10, 8, 0), models.RecurrenceDaily)
	assert.Equal(t, date(2024, time.March, 11, 8, 0), next)
}

func TestNextDueDate_Weekly(t *testing.T) {
	next := NextDueDate(date(2024, time.March, 10, 8, 0), models.RecurrenceWeekly)
	assert.Equal(t, date(2024, time.March, 17, 8, 0), next)
}

func TestNextDueDate_Monthly(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want time.Time
	}{
		{
			name: "plain month advance",
			due:  date(2024, time.March, 15, 9, 30),
			want: date(2024, time.April, 15, 9, 30),
		},
		{
			name: "clamps Jan 31 to Feb 29 in a leap year",
			due:  date(2024, time.January, 31, 23, 59),
			want: date(2024, time.February, 29, 23, 59),
		},
		{
			name: "clamps Jan 31 to Feb 28 in a non-leap year",
			due:  date(2023, time.January, 31, 23, 59),
			want: date(2023, time.February, 28, 23, 59),
		},
		{
			name: "clamps Mar 31 to Apr 30",
			due:  date(2024, time.March, 31, 12, 0),
			want: date(2024, time.April, 30, 12, 0),
		},
		{
			name: "December wraps to January of the next year",
			due:  date(2024, time.December, 31, 6, 15),
			want: date(2025, time.January, 31, 6, 15),
		},
		{
			name: "century year 1900 is not a leap year",
			due:  date(1900, time.January, 31, 0, 0),
			want: date(1900, time.February, 28, 0, 0),
		},
		{
			name: "year 2000 is a leap year",
			due:  date(2000, time.January, 31, 0, 0),
			want: date(2000, time.February, 29, 0, 0),
		},
		{
			name: "short-to-long month keeps the day",
			due:  date(2024, time.April, 30, 10, 0),
			want: date(2024, time.May, 30, 10, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDueDate(tt.due, models.RecurrenceMonthly))
		})
	}
}

func TestNextDueDate_PreservesTimeOfDay(t *testing.T) {
	due := time.Date(2024, time.May, 31, 13, 45, 12, 500, time.UTC)
	next := NextDueDate(due, models.RecurrenceMonthly)

	assert.Equal(t, time.Date(2024, time.June, 30, 13, 45, 12, 500, time.UTC), next)
}

func TestNextDueDate_NoneReturnsInputUnchanged(t *testing.T) {
	due := date(2024, time.March, 10, 8, 0)
	assert.Equal(t, due, NextDueDate(due, models.RecurrenceNone))
}
