package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carescan/proforma/internal/calculation"
	"github.com/carescan/proforma/internal/config"
	"github.com/carescan/proforma/internal/domain"
)

const workbookPath = "../testdata/example_workbook.yaml"

func runWorkbook(t *testing.T) (*config.Scenario, *domain.ProformaResult) {
	t.Helper()
	scenario, err := config.NewInputParser().LoadFromFile(workbookPath)
	require.NoError(t, err)
	result, err := calculation.NewEngineWithOptions(scenario.Options).
		CalculateComprehensiveProforma(context.Background(), scenario.Tables, scenario.Params)
	require.NoError(t, err)
	return scenario, result
}

func TestEndToEndCalculation(t *testing.T) {
	scenario, result := runWorkbook(t)
	assert.Empty(t, scenario.Warnings)
	assert.Empty(t, result.Warnings)

	require.Len(t, result.AnnualSummary, 5)
	require.Len(t, result.MonthlyCashFlow, 60)
	for i, a := range result.AnnualSummary {
		assert.Equal(t, 2025+i, a.Year)
		assert.True(t, a.PersonnelExpenses.IsPositive())
		assert.True(t, a.EquipmentExpenses.IsPositive())
		assert.False(t, a.ExamRevenue.IsNegative())
	}

	// the leased CT arrives July 2026, so it earns nothing in 2025
	for _, x := range result.Exams {
		if x.Exam != "Low-Dose Chest CT" {
			continue
		}
		switch x.Year {
		case 2025:
			assert.True(t, x.LimitedByEquipment, x.RevenueSource)
			assert.True(t, x.AnnualVolume.IsZero(), x.RevenueSource)
		case 2026:
			assert.False(t, x.LimitedByEquipment, x.RevenueSource)
			assert.True(t, x.AnnualVolume.IsPositive(), x.RevenueSource)
		}
	}
	assert.True(t, decimal.NewFromInt(250000).Equal(result.AnnualSummary[0].OtherRevenue))
	assert.True(t, result.AnnualSummary[1].EquipmentLease.IsPositive(), "CT lease starts July 2026")
}

func TestAnnualSummaryMatchesMonthlyCashFlow(t *testing.T) {
	_, result := runWorkbook(t)
	tol := decimal.RequireFromString("0.01")
	for _, a := range result.AnnualSummary {
		revenue, expenses := decimal.Zero, decimal.Zero
		for _, m := range result.MonthlyCashFlow {
			if m.Year == a.Year {
				revenue = revenue.Add(m.TotalRevenue)
				expenses = expenses.Add(m.TotalExpenses)
			}
		}
		assert.True(t, a.TotalRevenue.Sub(revenue).Abs().LessThanOrEqual(tol), "%d revenue %s vs %s", a.Year, a.TotalRevenue, revenue)
		assert.True(t, a.TotalExpenses.Sub(expenses).Abs().LessThanOrEqual(tol), "%d expenses %s vs %s", a.Year, a.TotalExpenses, expenses)
	}
}

func TestCashPositionAndMetrics(t *testing.T) {
	_, result := runWorkbook(t)

	purchases := decimal.Zero
	for _, m := range result.MonthlyCashFlow {
		purchases = purchases.Add(m.EquipmentPurchases)
	}
	// only the purchased MRI is paid for; the CT is leased
	assert.True(t, decimal.NewFromInt(2400000).Equal(purchases), "got %s", purchases)
	assert.True(t, decimal.NewFromInt(1920000).Equal(result.MonthlyCashFlow[0].EquipmentPurchases))
	assert.True(t, decimal.NewFromInt(480000).Equal(result.MonthlyCashFlow[3].EquipmentPurchases))

	last := result.MonthlyCashFlow[len(result.MonthlyCashFlow)-1]
	assert.True(t, last.CashOnHand.Equal(result.Metrics.EndingCashOnHand))
	assert.True(t, result.Metrics.MinimumCashOnHand.LessThanOrEqual(last.CashOnHand))

	if result.Metrics.BreakevenYear != nil {
		for _, a := range result.AnnualSummary {
			if a.Year < *result.Metrics.BreakevenYear {
				assert.True(t, a.CumulativeNetIncome.IsNegative())
			}
			if a.Year == *result.Metrics.BreakevenYear {
				assert.False(t, a.CumulativeNetIncome.IsNegative())
			}
		}
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	_, first := runWorkbook(t)
	_, second := runWorkbook(t)
	assert.NotEqual(t, first.Metadata.RunID, second.Metadata.RunID)
	assert.Equal(t, first.AnnualSummary, second.AnnualSummary)
	assert.Equal(t, first.MonthlyCashFlow, second.MonthlyCashFlow)
	assert.Equal(t, first.Exams, second.Exams)
}

func TestSelectedSourcesNarrowTheRun(t *testing.T) {
	scenario, all := runWorkbook(t)
	scenario.Params.SelectedSources = []string{"County Employer Program"}
	narrow, err := calculation.NewEngine().CalculateComprehensiveProforma(context.Background(), scenario.Tables, scenario.Params)
	require.NoError(t, err)
	for _, x := range narrow.Exams {
		assert.Equal(t, "County Employer Program", x.RevenueSource)
	}
	assert.True(t, narrow.Metrics.TotalRevenue.LessThan(all.Metrics.TotalRevenue))
}
