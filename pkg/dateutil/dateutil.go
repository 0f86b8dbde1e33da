package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// inputLayouts are the calendar date layouts accepted by ParseDate, most specific first.
var inputLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	time.RFC3339,
}

// Date returns the civil date y-m-d at UTC midnight.
func Date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Civil truncates t to its calendar date at UTC midnight.
func Civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date in ISO (2006-01-02) or US (01/02/2006) form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Civil(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// DaysInclusive counts the calendar days in [from, to]. It returns 0 when to is before from.
func DaysInclusive(from, to time.Time) int {
	from, to = Civil(from), Civil(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from)/day) + 1
}

// DaysSince returns the whole days from origin to t (negative when t precedes origin).
func DaysSince(origin, t time.Time) int {
	return int(Civil(t).Sub(Civil(origin)) / day)
}

// OverlapDays counts the days shared by the closed ranges [aFrom, aTo] and [bFrom, bTo].
func OverlapDays(aFrom, aTo, bFrom, bTo time.Time) int {
	return DaysInclusive(Max(aFrom, bFrom), Min(aTo, bTo))
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddDays adds n calendar days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1)
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month()+1, 0)
}

// BeginningOfYear returns January 1 of the given year.
func BeginningOfYear(year int) time.Time {
	return Date(year, time.January, 1)
}

// EndOfYear returns December 31 of the given year.
func EndOfYear(year int) time.Time {
	return Date(year, time.December, 31)
}

// Min returns the earlier of two dates.
func Min(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of two dates.
func Max(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// MonthsBetween lists the first day of every month touched by [from, to].
func MonthsBetween(from, to time.Time) []time.Time {
	if Civil(to).Before(Civil(from)) {
		return nil
	}
	var months []time.Time
	for m := StartOfMonth(from); !m.After(to); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
