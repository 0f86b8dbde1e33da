package calculation

import (
	"sort"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/pkg/dateutil"
)

// AnnualItems places every ledger entry applied within [start, end] into its month and year.
func (e *Engine) AnnualItems(records []domain.OtherItemRecord, start, end time.Time) ([]domain.OtherItemRow, domain.Warnings) {
	start, end = dateutil.Civil(start), dateutil.Civil(end)
	var rows []domain.OtherItemRow
	var warnings domain.Warnings
	for _, r := range records {
		if r.AppliedDate.IsZero() {
			e.warn(&warnings, domain.TableOtherItems, r.Title, 0, "missing applied date, skipped")
			continue
		}
		if r.Amount.IsNegative() {
			e.warn(&warnings, domain.TableOtherItems, r.Title, r.AppliedDate.Year(), "negative amount %s, skipped", r.Amount)
			continue
		}
		applied := dateutil.Civil(r.AppliedDate)
		if applied.Before(start) || applied.After(end) {
			continue
		}
		category := domain.CategoryRevenue
		if r.Expense {
			category = domain.CategoryExpense
		}
		rows = append(rows, domain.OtherItemRow{
			Title:       r.Title,
			Vendor:      r.Vendor,
			AppliedDate: applied,
			Year:        applied.Year(),
			Month:       applied.Month(),
			Amount:      r.Amount,
			Category:    category,
			Description: r.Description,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AppliedDate.Before(rows[j].AppliedDate) })
	return rows, warnings
}

// ItemsByCategory sums items per title and category.
func ItemsByCategory(items []domain.OtherItemRow) []domain.OtherCategoryRow {
	type key struct{ title, category string }
	index := map[key]int{}
	var rows []domain.OtherCategoryRow
	for _, it := range items {
		k := key{it.Title, it.Category}
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, domain.OtherCategoryRow{Title: it.Title, Category: it.Category})
		}
		rows[i].Amount = rows[i].Amount.Add(it.Amount)
	}
	return rows
}

// OtherItemTotals sums expense and revenue items; NetTotal is revenue minus expense.
func OtherItemTotals(items []domain.OtherItemRow) domain.OtherTotals {
	var t domain.OtherTotals
	for _, it := range items {
		if it.Category == domain.CategoryExpense {
			t.ExpenseTotal = t.ExpenseTotal.Add(it.Amount)
		} else {
			t.RevenueTotal = t.RevenueTotal.Add(it.Amount)
		}
	}
	t.NetTotal = t.RevenueTotal.Sub(t.ExpenseTotal)
	return t
}

// CalculateOtherItems produces every other-items view for [start, end].
func (e *Engine) CalculateOtherItems(records []domain.OtherItemRecord, start, end time.Time) (domain.OtherItemsResult, error) {
	if err := requireTable(records, domain.TableOtherItems, "other items"); err != nil {
		return domain.OtherItemsResult{}, err
	}
	items, warnings := e.AnnualItems(records, start, end)
	return domain.OtherItemsResult{
		Items:      items,
		ByCategory: ItemsByCategory(items),
		Totals:     OtherItemTotals(items),
		Warnings:   warnings,
	}, nil
}
