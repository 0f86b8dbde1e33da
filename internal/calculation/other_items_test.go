package calculation

import (
	"testing"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledger() []domain.OtherItemRecord {
	return []domain.OtherItemRecord{
		{Title: "Grant", Vendor: "Foundation", AppliedDate: date(2025, 3, 1), Amount: d("25000"), Expense: false},
		{Title: "Marketing", Vendor: "Agency", AppliedDate: date(2025, 2, 15), Amount: d("4000"), Expense: true},
		{Title: "Marketing", Vendor: "Agency", AppliedDate: date(2025, 9, 15), Amount: d("1000"), Expense: true},
		{Title: "Legal", Vendor: "Firm", AppliedDate: date(2026, 1, 1), Amount: d("9000"), Expense: true},
		{Title: "Refund", Vendor: "Supplier", AppliedDate: date(2024, 12, 31), Amount: d("500"), Expense: false},
	}
}

func TestAnnualItems(t *testing.T) {
	rows, warnings := NewEngine().AnnualItems(ledger(), date(2025, 1, 1), date(2025, 12, 31))
	require.Empty(t, warnings)
	require.Len(t, rows, 3)

	assert.Equal(t, "Marketing", rows[0].Title)
	assert.Equal(t, domain.CategoryExpense, rows[0].Category)
	assert.Equal(t, time.February, rows[0].Month)
	assert.Equal(t, "Grant", rows[1].Title)
	assert.Equal(t, domain.CategoryRevenue, rows[1].Category)
	for _, r := range rows {
		assert.Equal(t, 2025, r.Year)
	}
}

func TestAnnualItems_InclusiveBounds(t *testing.T) {
	rows, _ := NewEngine().AnnualItems(ledger(), date(2024, 12, 31), date(2026, 1, 1))
	assert.Len(t, rows, 5)
}

func TestAnnualItems_BadRows(t *testing.T) {
	records := []domain.OtherItemRecord{
		{Title: "Undated", Amount: d("10"), Expense: true},
		{Title: "Negative", AppliedDate: date(2025, 5, 5), Amount: d("-10"), Expense: true},
	}
	rows, warnings := NewEngine().AnnualItems(records, date(2025, 1, 1), date(2025, 12, 31))
	assert.Empty(t, rows)
	require.Len(t, warnings, 2)
	assert.Equal(t, domain.TableOtherItems, warnings[1].Table)
	assert.Equal(t, 2025, warnings[1].Year)
}

func TestCalculateOtherItems(t *testing.T) {
	res, err := NewEngine().CalculateOtherItems(ledger(), date(2025, 1, 1), date(2025, 12, 31))
	require.NoError(t, err)

	require.Len(t, res.ByCategory, 2)
	assert.Equal(t, "Marketing", res.ByCategory[0].Title)
	assert.True(t, d("5000").Equal(res.ByCategory[0].Amount))

	assert.True(t, d("5000").Equal(res.Totals.ExpenseTotal))
	assert.True(t, d("25000").Equal(res.Totals.RevenueTotal))
	assert.True(t, d("20000").Equal(res.Totals.NetTotal))

	_, err = NewEngine().CalculateOtherItems(nil, date(2025, 1, 1), date(2025, 12, 31))
	assert.ErrorIs(t, err, domain.ErrMissingTable)
}
