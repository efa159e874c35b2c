package recur

import (
	"time"

	"github.com/nhaldane/taskticker/internal/domain"
)

// nextDueDate computes the due date that follows due for the given
// frequency and interval.
//
// Daily and weekly rules are exact day arithmetic. Monthly rules shift the
// month by interval and clamp the day-of-month to at most
// params.MonthlyClampDay, so a task due on the 31st keeps recurring through
// short months instead of sliding into the next one. Yearly rules add
// whole years, clamping Feb 29 to Feb 28 when the target year is not a
// leap year.
//
// The result keeps the input's location; callers pass date-truncated
// values, so the time of day stays at midnight.
func nextDueDate(due time.Time, frequency domain.Frequency, interval int, params *Params) time.Time {
	switch frequency {
	case domain.FrequencyDaily:
		return due.AddDate(0, 0, interval)

	case domain.FrequencyWeekly:
		return due.AddDate(0, 0, 7*interval)

	case domain.FrequencyMonthly:
		monthIndex := int(due.Month()) - 1 + interval
		year := due.Year() + monthIndex/12
		month := time.Month(monthIndex%12 + 1)
		day := due.Day()
		if day > params.MonthlyClampDay {
			day = params.MonthlyClampDay
		}
		return time.Date(year, month, day, 0, 0, 0, 0, due.Location())

	case domain.FrequencyYearly:
		year := due.Year() + interval
		day := due.Day()
		if due.Month() == time.February && day == 29 && !isLeapYear(year) {
			day = 28
		}
		return time.Date(year, due.Month(), day, 0, 0, 0, 0, due.Location())

	default:
		return due
	}
}

// isLeapYear reports whether the Gregorian year has a Feb 29.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
