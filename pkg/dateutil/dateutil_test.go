package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"January", 2025, time.January, 31},
		{"April", 2025, time.April, 30},
		{"February non-leap", 2025, time.February, 28},
		{"February leap", 2024, time.February, 29},
		{"February century", 1900, time.February, 28},
		{"December", 2025, time.December, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same day", Date(2025, 4, 15), Date(2025, 4, 15), 1},
		{"half april", Date(2025, 4, 15), Date(2025, 4, 30), 16},
		{"full leap year", Date(2024, 1, 1), Date(2024, 12, 31), 366},
		{"second half", Date(2025, 7, 1), Date(2025, 12, 31), 184},
		{"reversed", Date(2025, 5, 1), Date(2025, 4, 30), 0},
		{"ignores clock", time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC), Date(2025, 1, 2), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInclusive(tt.from, tt.to))
		})
	}
}

func TestOverlapDays(t *testing.T) {
	assert.Equal(t, 31, OverlapDays(Date(2025, 1, 1), Date(2025, 12, 31), Date(2024, 6, 1), Date(2025, 1, 31)))
	assert.Equal(t, 0, OverlapDays(Date(2025, 1, 1), Date(2025, 1, 31), Date(2025, 2, 1), Date(2025, 3, 1)))
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, 0, DaysSince(Date(2025, 1, 1), Date(2025, 1, 1)))
	assert.Equal(t, 181, DaysSince(Date(2025, 1, 1), Date(2025, 7, 1)))
	assert.Equal(t, -1, DaysSince(Date(2025, 1, 2), Date(2025, 1, 1)))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"iso", "2025-04-15", Date(2025, 4, 15), false},
		{"us padded", "04/15/2025", Date(2025, 4, 15), false},
		{"us short", "4/5/2025", Date(2025, 4, 5), false},
		{"whitespace", "  2025-01-01 ", Date(2025, 1, 1), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "next tuesday", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	months := MonthsBetween(Date(2025, 4, 15), Date(2025, 7, 1))
	require.Len(t, months, 4)
	assert.Equal(t, Date(2025, 4, 1), months[0])
	assert.Equal(t, Date(2025, 7, 1), months[3])
	assert.Empty(t, MonthsBetween(Date(2025, 2, 1), Date(2025, 1, 1)))
}

func TestMonthBoundaries(t *testing.T) {
	assert.Equal(t, Date(2024, 2, 29), EndOfMonth(Date(2024, 2, 10)))
	assert.Equal(t, Date(2024, 2, 1), StartOfMonth(Date(2024, 2, 10)))
	assert.Equal(t, Date(2025, 12, 31), EndOfYear(2025))
	assert.Equal(t, 366, DaysInYear(2028))
	assert.False(t, IsLeapYear(2100))
}
