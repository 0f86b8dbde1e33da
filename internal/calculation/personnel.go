package calculation

import (
	"sort"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// MonthlyExpense prorates salary and fringe for every employee and calendar month in [start, end].
func (e *Engine) MonthlyExpense(records []domain.PersonnelRecord, start, end time.Time) ([]domain.MonthlyExpenseRow, domain.Warnings) {
	start, end = dateutil.Civil(start), dateutil.Civil(end)
	var rows []domain.MonthlyExpenseRow
	var warnings domain.Warnings

	for _, p := range records {
		if p.StartDate.IsZero() {
			e.warn(&warnings, domain.TablePersonnel, p.Title, 0, "missing start date, skipped")
			continue
		}
		if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
			e.warn(&warnings, domain.TablePersonnel, p.Title, 0, "end date %s before start date %s, skipped",
				p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
			continue
		}

		from := dateutil.Max(dateutil.Civil(p.StartDate), start)
		to := end
		if p.EndDate != nil {
			to = dateutil.Min(dateutil.Civil(*p.EndDate), end)
		}
		if to.Before(from) {
			continue
		}

		annualBase := p.Salary.Mul(p.Effort)
		for _, month := range dateutil.MonthsBetween(from, to) {
			first := dateutil.Max(month, from)
			last := dateutil.Min(dateutil.EndOfMonth(month), to)
			days := dateutil.DaysInclusive(first, last)
			dim := dateutil.DaysInMonth(month.Year(), month.Month())

			// (Salary/12) * Effort * days/dim, with a single division
			base := annualBase.Mul(decimal.NewFromInt(int64(days))).Div(twelve.Mul(decimal.NewFromInt(int64(dim))))
			fringe := base.Mul(p.Fringe)

			rows = append(rows, domain.MonthlyExpenseRow{
				Title:         p.Title,
				Type:          p.Type,
				Institution:   p.Institution,
				Year:          month.Year(),
				Month:         month.Month(),
				DaysWorked:    days,
				MonthFraction: decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(int64(dim))),
				Effort:        p.Effort,
				BaseExpense:   base,
				FringeAmount:  fringe,
				TotalExpense:  base.Add(fringe),
			})
		}
	}
	return rows, warnings
}

// AnnualExpense sums monthly rows per employee and year.
func AnnualExpense(monthly []domain.MonthlyExpenseRow) []domain.AnnualExpenseRow {
	type key struct {
		title, typ, inst string
		year             int
	}
	index := map[key]int{}
	var rows []domain.AnnualExpenseRow
	for _, m := range monthly {
		k := key{m.Title, m.Type, m.Institution, m.Year}
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, domain.AnnualExpenseRow{
				Title: m.Title, Type: m.Type, Institution: m.Institution, Year: m.Year,
			})
		}
		rows[i].BaseExpense = rows[i].BaseExpense.Add(m.BaseExpense)
		rows[i].FringeAmount = rows[i].FringeAmount.Add(m.FringeAmount)
		rows[i].TotalExpense = rows[i].TotalExpense.Add(m.TotalExpense)
	}
	return rows
}

// ExpenseByCategory sums monthly rows per staff type and institution.
func ExpenseByCategory(monthly []domain.MonthlyExpenseRow) []domain.CategoryExpenseRow {
	type key struct{ typ, inst string }
	sums := map[key]*domain.CategoryExpenseRow{}
	for _, m := range monthly {
		k := key{m.Type, m.Institution}
		row, ok := sums[k]
		if !ok {
			row = &domain.CategoryExpenseRow{Type: m.Type, Institution: m.Institution}
			sums[k] = row
		}
		row.BaseExpense = row.BaseExpense.Add(m.BaseExpense)
		row.FringeAmount = row.FringeAmount.Add(m.FringeAmount)
		row.TotalExpense = row.TotalExpense.Add(m.TotalExpense)
	}

	rows := make([]domain.CategoryExpenseRow, 0, len(sums))
	for _, r := range sums {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].Institution < rows[j].Institution
	})
	return rows
}

// HeadcountByMonth counts active staff and FTEs per month and staff type.
func HeadcountByMonth(monthly []domain.MonthlyExpenseRow) []domain.HeadcountRow {
	type key struct {
		year  int
		month time.Month
		typ   string
	}
	sums := map[key]*domain.HeadcountRow{}
	for _, m := range monthly {
		k := key{m.Year, m.Month, m.Type}
		row, ok := sums[k]
		if !ok {
			row = &domain.HeadcountRow{Year: m.Year, Month: m.Month, Type: m.Type}
			sums[k] = row
		}
		row.FTECount = row.FTECount.Add(m.Effort)
		row.Headcount++
	}

	rows := make([]domain.HeadcountRow, 0, len(sums))
	for _, r := range sums {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Type < b.Type
	})
	return rows
}

// PersonnelGrandTotal sums every monthly row.
func PersonnelGrandTotal(monthly []domain.MonthlyExpenseRow) domain.PersonnelTotals {
	var t domain.PersonnelTotals
	for _, m := range monthly {
		t.BaseExpense = t.BaseExpense.Add(m.BaseExpense)
		t.FringeAmount = t.FringeAmount.Add(m.FringeAmount)
		t.TotalExpense = t.TotalExpense.Add(m.TotalExpense)
	}
	return t
}

// CalculatePersonnelExpenses produces every personnel view for [start, end].
func (e *Engine) CalculatePersonnelExpenses(records []domain.PersonnelRecord, start, end time.Time) (domain.PersonnelResult, error) {
	if err := requireTable(records, domain.TablePersonnel, "personnel expenses"); err != nil {
		return domain.PersonnelResult{}, err
	}
	monthly, warnings := e.MonthlyExpense(records, start, end)
	e.logger().Debugf("personnel: %d employees, %d monthly rows", len(records), len(monthly))
	return domain.PersonnelResult{
		Monthly:    monthly,
		Annual:     AnnualExpense(monthly),
		ByCategory: ExpenseByCategory(monthly),
		Headcount:  HeadcountByMonth(monthly),
		Totals:     PersonnelGrandTotal(monthly),
		Warnings:   warnings,
	}, nil
}
