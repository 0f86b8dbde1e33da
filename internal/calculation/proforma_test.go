package calculation

import (
	"context"
	"testing"

	"github.com/carescan/proforma/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proformaTables() domain.Tables {
	tbl := examTables()
	tbl.OtherItems = []domain.OtherItemRecord{
		{Title: "State grant", AppliedDate: date(2025, 3, 1), Amount: d("50000")},
		{Title: "Launch campaign", AppliedDate: date(2026, 5, 10), Amount: d("10000"), Expense: true},
	}
	return tbl
}

func TestCalculateComprehensiveProforma(t *testing.T) {
	e := NewEngine()
	res, err := e.CalculateComprehensiveProforma(context.Background(), proformaTables(), ProformaParams{
		StartDate: date(2025, 1, 1),
		EndDate:   date(2026, 12, 31),
		Cash:      CashParams{InitialCash: d("250000")},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(res.Metadata.RunID)
	assert.NoError(t, err)
	require.Len(t, res.AnnualSummary, 2)
	require.Len(t, res.MonthlyCashFlow, 24)

	t.Run("annual totals equal monthly sums", func(t *testing.T) {
		for _, a := range res.AnnualSummary {
			revenue, expenses, net := decimal.Zero, decimal.Zero, decimal.Zero
			for _, m := range res.MonthlyCashFlow {
				if m.Year != a.Year {
					continue
				}
				revenue = revenue.Add(m.TotalRevenue)
				expenses = expenses.Add(m.TotalExpenses)
				net = net.Add(m.NetIncome)
			}
			assertDecimalNear(t, a.TotalRevenue, revenue, "0.01")
			assertDecimalNear(t, a.TotalExpenses, expenses, "0.01")
			assertDecimalNear(t, a.NetIncome, net, "0.01")
		}
	})

	t.Run("summary joins the engines", func(t *testing.T) {
		y1 := res.AnnualSummary[0]
		assert.Equal(t, 2025, y1.Year)
		assert.True(t, d("50000").Equal(y1.OtherRevenue))
		assert.True(t, y1.OtherExpenses.IsZero())
		assert.True(t, y1.TotalRevenue.Equal(y1.ExamRevenue.Add(y1.OtherRevenue)))
		assert.True(t, y1.NetIncome.Equal(y1.TotalRevenue.Sub(y1.TotalExpenses)))
		assert.True(t, d("10000").Equal(res.AnnualSummary[1].OtherExpenses))
		assert.True(t, res.AnnualSummary[1].CumulativeNetIncome.Equal(y1.NetIncome.Add(res.AnnualSummary[1].NetIncome)))
	})

	t.Run("breakeven matches cumulative net", func(t *testing.T) {
		var want *int
		for _, a := range res.AnnualSummary {
			if !a.CumulativeNetIncome.IsNegative() {
				y := a.Year
				want = &y
				break
			}
		}
		assert.Equal(t, want, res.Metrics.BreakevenYear)
	})

	t.Run("cash position", func(t *testing.T) {
		purchases := decimal.Zero
		cash := d("250000")
		for _, m := range res.MonthlyCashFlow {
			purchases = purchases.Add(m.EquipmentPurchases)
			assert.True(t, m.CashFlow.Equal(m.NetIncome.Add(m.EquipmentDepreciation).Sub(m.EquipmentPurchases)))
			cash = cash.Add(m.CashFlow)
			assert.True(t, cash.Equal(m.CashOnHand))
		}
		// only the CT is bought inside the window, paid in full in its delivery month
		assert.True(t, d("500000").Equal(purchases), "got %s", purchases)
		assert.True(t, d("500000").Equal(res.MonthlyCashFlow[12].EquipmentPurchases))
		assert.True(t, cash.Equal(res.Metrics.EndingCashOnHand))
	})

	t.Run("metrics", func(t *testing.T) {
		total := decimal.Zero
		for _, a := range res.AnnualSummary {
			total = total.Add(a.NetIncome)
		}
		assert.True(t, total.Equal(res.Metrics.TotalNetIncome))
		if res.Metrics.TotalExpenses.IsPositive() {
			assert.True(t, res.Metrics.ROI.Equal(total.Div(res.Metrics.TotalExpenses)))
		}
	})

	t.Run("warnings carried through", func(t *testing.T) {
		var tables []string
		for _, w := range res.Warnings {
			tables = append(tables, w.Table)
		}
		assert.Contains(t, tables, domain.TableRevenueSources)
	})
}

func TestCalculateComprehensiveProforma_PartialYear(t *testing.T) {
	e := NewEngine()
	tbl := proformaTables()
	start, end := date(2025, 7, 1), date(2025, 12, 31)
	res, err := e.CalculateComprehensiveProforma(context.Background(), tbl, ProformaParams{StartDate: start, EndDate: end})
	require.NoError(t, err)
	require.Len(t, res.MonthlyCashFlow, 6)

	full, _, err := e.CalculateMultiYearExamRevenue(context.Background(), tbl, ExamVolumeParams{
		StartYear: 2025, EndYear: 2025, ProjectionStart: start,
	})
	require.NoError(t, err)
	require.Len(t, res.Exams, len(full))

	share := d("184").Div(d("365"))
	for i := range full {
		assert.True(t, full[i].AnnualVolume.Mul(share).Equal(res.Exams[i].AnnualVolume))
		assert.True(t, full[i].TotalRevenue.Mul(share).Equal(res.Exams[i].TotalRevenue))
	}

	examRevenue := decimal.Zero
	for _, m := range res.MonthlyCashFlow {
		examRevenue = examRevenue.Add(m.ExamRevenue)
	}
	assert.True(t, examRevenue.Equal(res.AnnualSummary[0].ExamRevenue))
	// the March grant falls before the window
	assert.True(t, res.AnnualSummary[0].OtherRevenue.IsZero())
}

func TestCalculateComprehensiveProforma_MissingTables(t *testing.T) {
	window := ProformaParams{StartDate: date(2025, 1, 1), EndDate: date(2025, 12, 31)}

	tests := []struct {
		name  string
		strip func(*domain.Tables)
		table string
	}{
		{"personnel", func(t *domain.Tables) { t.Personnel = nil }, domain.TablePersonnel},
		{"equipment", func(t *domain.Tables) { t.Equipment = nil }, domain.TableEquipment},
		{"exams", func(t *domain.Tables) { t.Exams = nil }, domain.TableExams},
		{"revenue sources", func(t *domain.Tables) { t.RevenueSources = nil }, domain.TableRevenueSources},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := proformaTables()
			tt.strip(&tbl)
			_, err := NewEngine().CalculateComprehensiveProforma(context.Background(), tbl, window)
			require.ErrorIs(t, err, domain.ErrMissingTable)
			var cfgErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.table, cfgErr.Table)
		})
	}

	t.Run("other items optional", func(t *testing.T) {
		tbl := proformaTables()
		tbl.OtherItems = nil
		log := &recordingLogger{}
		e := NewEngine()
		e.SetLogger(log)
		res, err := e.CalculateComprehensiveProforma(context.Background(), tbl, window)
		require.NoError(t, err)
		require.NotEmpty(t, res.Warnings)
		assert.Equal(t, domain.TableOtherItems, res.Warnings[0].Table)
		assert.NotEmpty(t, log.warnings)
		assert.True(t, res.AnnualSummary[0].OtherRevenue.IsZero())
	})
}

func TestWindowShare(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		start, end string
		want       decimal.Decimal
	}{
		{"full year", 2025, "2025-01-01", "2025-12-31", d("1")},
		{"second half", 2025, "2025-07-01", "2026-03-31", d("184").Div(d("365"))},
		{"leap first half", 2024, "2023-06-01", "2024-06-30", d("182").Div(d("366"))},
		{"outside", 2027, "2025-01-01", "2026-12-31", d("0")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := parseISO(tt.start)
			end, _ := parseISO(tt.end)
			assert.True(t, tt.want.Equal(windowShare(tt.year, start, end)))
		})
	}
}

func TestBreakevenYear(t *testing.T) {
	rows := func(nets ...string) []domain.AnnualSummaryRow {
		out := make([]domain.AnnualSummaryRow, len(nets))
		for i, n := range nets {
			out[i] = domain.AnnualSummaryRow{Year: 2025 + i, NetIncome: d(n)}
		}
		return out
	}
	year := func(y int) *int { return &y }

	tests := []struct {
		name    string
		summary []domain.AnnualSummaryRow
		want    *int
	}{
		{"profitable from the start", rows("100", "-50"), year(2025)},
		{"recovers in year three", rows("-100", "50", "60"), year(2027)},
		{"exactly even counts", rows("-100", "100"), year(2026)},
		{"never", rows("-100", "-1"), nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BreakevenYear(tt.summary))
		})
	}
}

func TestEquipmentPurchasePayments(t *testing.T) {
	equipment := []domain.EquipmentRecord{
		{Title: "Van", PurchaseDate: date(2025, 1, 15), ConstructionTime: 45, Lifespan: 5, Quantity: 2, PurchaseCost: d("100000")},
		{Title: "Leased", PurchaseDate: date(2025, 1, 15), Lifespan: 5, IsLeased: true, AnnualLeaseAmount: d("12000")},
		{Title: "Old", PurchaseDate: date(2020, 1, 1), Lifespan: 10, PurchaseCost: d("50000")},
	}
	start, end := date(2025, 1, 1), date(2025, 12, 31)

	payments := EquipmentPurchasePayments(equipment, CashParams{}, start, end)
	require.Len(t, payments, 2)
	assert.Equal(t, date(2025, 1, 15), payments[0].Date)
	assert.True(t, d("160000").Equal(payments[0].Amount))
	assert.Equal(t, date(2025, 3, 1), payments[1].Date)
	assert.True(t, d("40000").Equal(payments[1].Amount))

	half := d("0.5")
	payments = EquipmentPurchasePayments(equipment, CashParams{OrderPaymentShare: &half}, start, end)
	require.Len(t, payments, 2)
	assert.True(t, d("100000").Equal(payments[0].Amount))
	assert.True(t, d("100000").Equal(payments[1].Amount))

	payments = EquipmentPurchasePayments(equipment, CashParams{}, start, date(2025, 2, 28))
	require.Len(t, payments, 1)
}

func TestApplyCashPosition(t *testing.T) {
	rows := []domain.MonthlyCashFlowRow{
		{Year: 2025, Month: 1, NetIncome: d("-1000"), EquipmentDepreciation: d("100")},
		{Year: 2025, Month: 2, NetIncome: d("500"), EquipmentDepreciation: d("100")},
	}
	equipment := []domain.EquipmentRecord{
		{Title: "Cart", PurchaseDate: date(2025, 1, 25), ConstructionTime: 10, Lifespan: 3, PurchaseCost: d("1000")},
	}
	ApplyCashPosition(rows, equipment, CashParams{InitialCash: d("5000")}, date(2025, 1, 1), date(2025, 2, 28))

	assert.True(t, d("800").Equal(rows[0].EquipmentPurchases))
	assert.True(t, d("200").Equal(rows[1].EquipmentPurchases))
	assert.True(t, d("-1700").Equal(rows[0].CashFlow))
	assert.True(t, d("3300").Equal(rows[0].CashOnHand))
	assert.True(t, d("3700").Equal(rows[1].CashOnHand))

	m := CalculateFinancialMetrics(nil, rows)
	assert.True(t, d("3300").Equal(m.MinimumCashOnHand))
	assert.True(t, d("3700").Equal(m.EndingCashOnHand))
	assert.Nil(t, m.BreakevenYear)
}

func TestSpreadEvenly(t *testing.T) {
	parts := spreadEvenly(d("100"), 3)
	require.Len(t, parts, 3)
	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(p)
	}
	assert.True(t, d("100").Equal(sum))
	assert.Empty(t, spreadEvenly(d("100"), 0))
}

func TestCalculateComprehensiveProforma_ReplacedUnitKeepsCashFlowWhole(t *testing.T) {
	tbl := proformaTables()
	retired := tbl.Equipment[0]
	retired.Lifespan = 2
	replacement := retired
	replacement.PurchaseDate = date(2027, 1, 1)
	replacement.Lifespan = 5
	replacement.PurchaseCost = d("500000")
	replacement.AnnualServiceCost = d("12000")
	tbl.Equipment = []domain.EquipmentRecord{retired, replacement, tbl.Equipment[1]}

	res, err := NewEngine().CalculateComprehensiveProforma(context.Background(), tbl, ProformaParams{
		StartDate: date(2025, 1, 1),
		EndDate:   date(2028, 12, 31),
	})
	require.NoError(t, err)
	require.Len(t, res.AnnualSummary, 4)

	for _, a := range res.AnnualSummary {
		equipment := decimal.Zero
		for _, m := range res.MonthlyCashFlow {
			if m.Year == a.Year {
				equipment = equipment.Add(m.EquipmentExpenses)
			}
		}
		assertDecimalNear(t, a.EquipmentExpenses, equipment, "0.01")
	}
}
