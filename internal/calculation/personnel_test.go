package calculation

import (
	"testing"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioEmployees() []domain.PersonnelRecord {
	return []domain.PersonnelRecord{
		employee("A", "Technologist", "120000", "1.0", "0.25", date(2025, 1, 1), datePtr(2025, 6, 30)),
		employee("B", "Technologist", "60000", "0.5", "0.25", date(2025, 4, 15), nil),
	}
}

func TestMonthlyExpense_Scenario(t *testing.T) {
	e := NewEngine()
	rows, warnings := e.MonthlyExpense(scenarioEmployees(), date(2025, 1, 1), date(2025, 12, 31))
	require.Empty(t, warnings)

	var a, b []domain.MonthlyExpenseRow
	for _, r := range rows {
		switch r.Title {
		case "A":
			a = append(a, r)
		case "B":
			b = append(b, r)
		}
	}

	require.Len(t, a, 6)
	for _, r := range a {
		assert.True(t, d("12500").Equal(r.TotalExpense), "month %d: %s", r.Month, r.TotalExpense)
		assert.True(t, d("1").Equal(r.MonthFraction))
	}
	assert.True(t, d("75000").Equal(PersonnelGrandTotal(a).TotalExpense))

	require.Len(t, b, 9)
	assert.Equal(t, time.April, b[0].Month)
	assert.Equal(t, 16, b[0].DaysWorked)
	// (60000/12) * 0.5 * 16/30 * 1.25
	assertDecimalNear(t, d("1666.6667"), b[0].TotalExpense, "0.001")
	assert.True(t, d("3125").Equal(b[1].TotalExpense))
}

func TestMonthlyExpense_FullMonthProration(t *testing.T) {
	tests := []struct {
		name   string
		salary string
		effort string
		fringe string
		month  time.Month
		want   string
	}{
		{"full time january", "96000", "1", "0.3", time.January, "10400"},
		{"half time february", "48000", "0.5", "0.2", time.February, "2400"},
		{"no fringe", "36000", "0.75", "0", time.March, "2250"},
	}
	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := date(2025, tt.month, 1)
			last := first.AddDate(0, 1, -1)
			p := employee("X", "Tech", tt.salary, tt.effort, tt.fringe, first, &last)
			rows, _ := e.MonthlyExpense([]domain.PersonnelRecord{p}, date(2025, 1, 1), date(2025, 12, 31))
			require.Len(t, rows, 1)
			assert.True(t, d(tt.want).Equal(rows[0].TotalExpense), "got %s", rows[0].TotalExpense)
		})
	}
}

func TestMonthlyExpense_WindowExclusion(t *testing.T) {
	e := NewEngine()
	start, end := date(2025, 3, 10), date(2025, 8, 20)
	rows, _ := e.MonthlyExpense(scenarioEmployees(), start, end)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		monthStart := date(r.Year, r.Month, 1)
		assert.False(t, monthStart.After(end))
		assert.False(t, monthStart.AddDate(0, 1, -1).Before(start))
	}
	// March for A is clipped to the 10th onwards
	assert.Equal(t, time.March, rows[0].Month)
	assert.Equal(t, 22, rows[0].DaysWorked)
}

func TestMonthlyExpense_EdgeCases(t *testing.T) {
	e := NewEngine()
	log := &recordingLogger{}
	e.SetLogger(log)

	t.Run("zero-day window", func(t *testing.T) {
		rows, warnings := e.MonthlyExpense(scenarioEmployees(), date(2025, 5, 1), date(2025, 4, 30))
		assert.Empty(t, rows)
		assert.Empty(t, warnings)
	})

	t.Run("bad rows are skipped with warnings", func(t *testing.T) {
		records := []domain.PersonnelRecord{
			employee("NoStart", "Tech", "50000", "1", "0.2", time.Time{}, nil),
			employee("Backwards", "Tech", "50000", "1", "0.2", date(2025, 6, 1), datePtr(2025, 5, 1)),
			employee("Good", "Tech", "50000", "1", "0.2", date(2025, 1, 1), nil),
		}
		rows, warnings := e.MonthlyExpense(records, date(2025, 1, 1), date(2025, 1, 31))
		require.Len(t, rows, 1)
		assert.Equal(t, "Good", rows[0].Title)
		require.Len(t, warnings, 2)
		assert.Equal(t, domain.TablePersonnel, warnings[0].Table)
		assert.Equal(t, "NoStart", warnings[0].Record)
		assert.NotEmpty(t, log.warnings)
	})

	t.Run("no overlap", func(t *testing.T) {
		p := employee("Gone", "Tech", "50000", "1", "0.2", date(2020, 1, 1), datePtr(2021, 1, 1))
		rows, warnings := e.MonthlyExpense([]domain.PersonnelRecord{p}, date(2025, 1, 1), date(2025, 12, 31))
		assert.Empty(t, rows)
		assert.Empty(t, warnings)
	})
}

func TestPersonnelAggregations(t *testing.T) {
	records := append(scenarioEmployees(),
		employee("C", "Radiologist", "300000", "0.2", "0.3", date(2025, 1, 1), nil))
	records[2].Institution = "Partner"

	res, err := NewEngine().CalculatePersonnelExpenses(records, date(2025, 1, 1), date(2025, 12, 31))
	require.NoError(t, err)

	require.Len(t, res.Annual, 3)
	assert.Equal(t, "A", res.Annual[0].Title)
	assert.True(t, d("75000").Equal(res.Annual[0].TotalExpense))

	require.Len(t, res.ByCategory, 2)
	assert.Equal(t, "Radiologist", res.ByCategory[0].Type)
	assert.Equal(t, "Partner", res.ByCategory[0].Institution)
	// 300000 * 0.2 * 1.3
	assertDecimalNear(t, d("78000"), res.ByCategory[0].TotalExpense, "0.0001")

	var may []domain.HeadcountRow
	for _, h := range res.Headcount {
		if h.Month == time.May {
			may = append(may, h)
		}
	}
	require.Len(t, may, 2)
	assert.Equal(t, "Radiologist", may[0].Type)
	assert.Equal(t, 1, may[0].Headcount)
	assert.Equal(t, "Technologist", may[1].Type)
	assert.Equal(t, 2, may[1].Headcount)
	assert.True(t, d("1.5").Equal(may[1].FTECount))

	sum := d("0")
	for _, a := range res.Annual {
		sum = sum.Add(a.TotalExpense)
	}
	assert.True(t, sum.Equal(res.Totals.TotalExpense))
	assert.True(t, res.Totals.BaseExpense.Add(res.Totals.FringeAmount).Equal(res.Totals.TotalExpense))
}

func TestCalculatePersonnelExpenses_MissingTable(t *testing.T) {
	_, err := NewEngine().CalculatePersonnelExpenses(nil, date(2025, 1, 1), date(2025, 12, 31))
	require.Error(t, err)
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, domain.TablePersonnel, cfgErr.Table)
	assert.ErrorIs(t, err, domain.ErrMissingTable)

	res, err := NewEngine().CalculatePersonnelExpenses([]domain.PersonnelRecord{}, date(2025, 1, 1), date(2025, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, res.Monthly)
	assert.True(t, res.Totals.TotalExpense.IsZero())
}
