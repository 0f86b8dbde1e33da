package calculation

import (
	"testing"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, day int) *time.Time {
	t := date(y, m, day)
	return &t
}

// assertDecimalNear checks |want-got| <= tol.
func assertDecimalNear(t *testing.T, want, got decimal.Decimal, tol string) {
	t.Helper()
	assert.True(t, want.Sub(got).Abs().LessThanOrEqual(d(tol)), "want %s, got %s", want, got)
}

// recordingLogger captures warnings for assertions.
type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}

func employee(title, typ string, salary, effort, fringe string, start time.Time, end *time.Time) domain.PersonnelRecord {
	return domain.PersonnelRecord{
		Title:       title,
		Type:        typ,
		Institution: "Main",
		Salary:      d(salary),
		Effort:      d(effort),
		Fringe:      d(fringe),
		StartDate:   start,
		EndDate:     end,
		HoursPerDay: d("8"),
	}
}

func parseISO(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
