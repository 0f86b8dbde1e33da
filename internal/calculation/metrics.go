package calculation

import (
	"github.com/carescan/proforma/internal/domain"
	dec "github.com/carescan/proforma/pkg/decimal"
	"github.com/shopspring/decimal"
)

// BreakevenYear returns the first year whose cumulative net income is
// non-negative, or nil if none is. Rows must be in ascending year order.
func BreakevenYear(summary []domain.AnnualSummaryRow) *int {
	cumulative := decimal.Zero
	for _, r := range summary {
		cumulative = cumulative.Add(r.NetIncome)
		if !cumulative.IsNegative() {
			y := r.Year
			return &y
		}
	}
	return nil
}

// CalculateFinancialMetrics derives headline figures from the annual summary
// and, when present, the cash position of the monthly cash flow.
func CalculateFinancialMetrics(summary []domain.AnnualSummaryRow, monthly []domain.MonthlyCashFlowRow) domain.FinancialMetrics {
	var m domain.FinancialMetrics
	for _, r := range summary {
		m.TotalRevenue = m.TotalRevenue.Add(r.TotalRevenue)
		m.TotalExpenses = m.TotalExpenses.Add(r.TotalExpenses)
		m.TotalNetIncome = m.TotalNetIncome.Add(r.NetIncome)
	}
	if n := int64(len(summary)); n > 0 {
		years := decimal.NewFromInt(n)
		m.AverageRevenue = m.TotalRevenue.Div(years)
		m.AverageExpenses = m.TotalExpenses.Div(years)
		m.AverageNetIncome = m.TotalNetIncome.Div(years)
	}
	if m.TotalExpenses.IsPositive() {
		m.RevenueExpenseRatio = m.TotalRevenue.Div(m.TotalExpenses)
		m.ROI = m.TotalNetIncome.Div(m.TotalExpenses)
	}
	m.BreakevenYear = BreakevenYear(summary)

	for i, r := range monthly {
		if i == 0 {
			m.MinimumCashOnHand = r.CashOnHand
		}
		m.MinimumCashOnHand = dec.Min(m.MinimumCashOnHand, r.CashOnHand)
		m.EndingCashOnHand = r.CashOnHand
	}
	return m
}
