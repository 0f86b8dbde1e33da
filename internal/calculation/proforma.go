package calculation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/pkg/dateutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProformaParams are the per-run assumptions of a comprehensive proforma.
type ProformaParams struct {
	StartDate       time.Time
	EndDate         time.Time
	SelectedSources []string
	WorkDaysPerYear int
	// Travel defaults to DefaultTravelParams when DaysBetweenTravel is zero.
	Travel         TravelParams
	GrowthSchedule []decimal.Decimal
	Cash           CashParams
}

type monthKey struct {
	year  int
	month time.Month
}

// CalculateComprehensiveProforma runs every engine over the window and joins
// their results into an annual summary, a monthly cash flow and headline metrics.
// The exam, revenue source, personnel and equipment tables are required; an
// absent other-items table is treated as empty.
func (e *Engine) CalculateComprehensiveProforma(ctx context.Context, tables domain.Tables, params ProformaParams) (*domain.ProformaResult, error) {
	began := time.Now()
	start, end := dateutil.Civil(params.StartDate), dateutil.Civil(params.EndDate)
	if params.Travel.DaysBetweenTravel == 0 {
		params.Travel = DefaultTravelParams()
	}

	result := &domain.ProformaResult{
		Metadata: domain.RunMetadata{
			RunID:     uuid.New().String(),
			StartDate: start,
			EndDate:   end,
			StartedAt: began.UTC(),
		},
	}

	exams, examWarnings, err := e.CalculateMultiYearExamRevenue(ctx, tables, ExamVolumeParams{
		StartYear:       start.Year(),
		EndYear:         end.Year(),
		SelectedSources: params.SelectedSources,
		WorkDaysPerYear: params.WorkDaysPerYear,
		GrowthSchedule:  params.GrowthSchedule,
		ProjectionStart: start,
	})
	if err != nil {
		return nil, fmt.Errorf("comprehensive proforma: %w", err)
	}
	if end.Before(start) {
		exams = nil
	}
	result.Exams = prorateExamRows(exams, start, end)

	result.Personnel, err = e.CalculatePersonnelExpenses(tables.Personnel, start, end)
	if err != nil {
		return nil, fmt.Errorf("comprehensive proforma: %w", err)
	}
	result.Equipment, err = e.CalculateEquipmentExpenses(tables.Equipment, start, end, params.Travel)
	if err != nil {
		return nil, fmt.Errorf("comprehensive proforma: %w", err)
	}

	var warnings domain.Warnings
	otherItems := tables.OtherItems
	if otherItems == nil {
		e.warn(&warnings, domain.TableOtherItems, "*", 0, "table absent, treated as empty")
		otherItems = []domain.OtherItemRecord{}
	}
	result.Other, err = e.CalculateOtherItems(otherItems, start, end)
	if err != nil {
		return nil, fmt.Errorf("comprehensive proforma: %w", err)
	}

	warnings = append(warnings, result.Personnel.Warnings...)
	warnings = append(warnings, result.Equipment.Warnings...)
	warnings = append(warnings, examWarnings...)
	warnings = append(warnings, result.Other.Warnings...)
	result.Warnings = warnings

	result.AnnualSummary = AnnualSummary(result.Personnel, result.Equipment, result.Exams, result.Other)
	result.MonthlyCashFlow = MonthlyCashFlow(result.Personnel, result.Equipment, result.Exams, result.Other, start, end)
	ApplyCashPosition(result.MonthlyCashFlow, tables.Equipment, params.Cash, start, end)
	result.Metrics = CalculateFinancialMetrics(result.AnnualSummary, result.MonthlyCashFlow)

	done := time.Now()
	result.Metadata.CompletedAt = done.UTC()
	result.Metadata.DurationMs = done.Sub(began).Milliseconds()
	e.logger().Infof("proforma %s: %d years, %d months, %d warnings",
		result.Metadata.RunID, len(result.AnnualSummary), len(result.MonthlyCashFlow), len(result.Warnings))
	return result, nil
}

// windowShare is the fraction of year y covered by [start, end].
func windowShare(y int, start, end time.Time) decimal.Decimal {
	covered := dateutil.OverlapDays(dateutil.BeginningOfYear(y), dateutil.EndOfYear(y), start, end)
	diy := dateutil.DaysInYear(y)
	if covered == diy {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(covered)).Div(decimal.NewFromInt(int64(diy)))
}

// prorateExamRows scales exam rows of partially covered years to the share of
// the year inside the window. Fully covered years are returned unchanged.
func prorateExamRows(rows []domain.ExamVolumeRow, start, end time.Time) []domain.ExamVolumeRow {
	out := make([]domain.ExamVolumeRow, 0, len(rows))
	for _, r := range rows {
		share := windowShare(r.Year, start, end)
		if share.Equal(decimal.NewFromInt(1)) {
			out = append(out, r)
			continue
		}
		r.AnnualVolume = r.AnnualVolume.Mul(share)
		r.CMSTechRevenue = r.CMSTechRevenue.Mul(share)
		r.CMSProRevenue = r.CMSProRevenue.Mul(share)
		r.NonCMSTechRevenue = r.NonCMSTechRevenue.Mul(share)
		r.NonCMSProRevenue = r.NonCMSProRevenue.Mul(share)
		r.PatientFeeRevenue = r.PatientFeeRevenue.Mul(share)
		r.TotalRevenue = r.TotalRevenue.Mul(share)
		r.SupplyExpense = r.SupplyExpense.Mul(share)
		r.OrderExpense = r.OrderExpense.Mul(share)
		r.InterpExpense = r.InterpExpense.Mul(share)
		r.PartnerShare = r.PartnerShare.Mul(share)
		r.TotalDirectExpenses = r.TotalDirectExpenses.Mul(share)
		r.NetRevenue = r.TotalRevenue.Sub(r.TotalDirectExpenses)
		out = append(out, r)
	}
	return out
}

// AnnualSummary joins every engine's output by year.
func AnnualSummary(personnel domain.PersonnelResult, equipment domain.EquipmentResult, exams []domain.ExamVolumeRow, other domain.OtherItemsResult) []domain.AnnualSummaryRow {
	byYear := map[int]*domain.AnnualSummaryRow{}
	row := func(y int) *domain.AnnualSummaryRow {
		r, ok := byYear[y]
		if !ok {
			r = &domain.AnnualSummaryRow{Year: y}
			byYear[y] = r
		}
		return r
	}

	for _, x := range exams {
		r := row(x.Year)
		r.ExamRevenue = r.ExamRevenue.Add(x.TotalRevenue)
		r.ExamDirectExpenses = r.ExamDirectExpenses.Add(x.TotalDirectExpenses)
	}
	for _, p := range personnel.Annual {
		r := row(p.Year)
		r.PersonnelExpenses = r.PersonnelExpenses.Add(p.TotalExpense)
	}
	for _, a := range equipment.Annual {
		r := row(a.Year)
		r.EquipmentExpenses = r.EquipmentExpenses.Add(a.TotalAnnualExpense)
		r.EquipmentLease = r.EquipmentLease.Add(a.LeaseExpense)
		r.EquipmentDepreciation = r.EquipmentDepreciation.Add(a.AnnualDepreciation)
	}
	for _, it := range other.Items {
		r := row(it.Year)
		if it.Category == domain.CategoryExpense {
			r.OtherExpenses = r.OtherExpenses.Add(it.Amount)
		} else {
			r.OtherRevenue = r.OtherRevenue.Add(it.Amount)
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	rows := make([]domain.AnnualSummaryRow, 0, len(years))
	cumulative := decimal.Zero
	for _, y := range years {
		r := byYear[y]
		r.TotalRevenue = r.ExamRevenue.Add(r.OtherRevenue)
		r.TotalExpenses = r.PersonnelExpenses.Add(r.EquipmentExpenses).Add(r.ExamDirectExpenses).Add(r.OtherExpenses)
		r.NetIncome = r.TotalRevenue.Sub(r.TotalExpenses)
		cumulative = cumulative.Add(r.NetIncome)
		r.CumulativeNetIncome = cumulative
		rows = append(rows, *r)
	}
	return rows
}

// MonthlyCashFlow lays every engine's output onto the calendar months of the
// window. Personnel, equipment and other items keep their own months; exam
// figures exist only per year and are divided evenly over that year's months
// in the window.
func MonthlyCashFlow(personnel domain.PersonnelResult, equipment domain.EquipmentResult, exams []domain.ExamVolumeRow, other domain.OtherItemsResult, start, end time.Time) []domain.MonthlyCashFlowRow {
	months := dateutil.MonthsBetween(start, end)
	if len(months) == 0 {
		return nil
	}
	index := make(map[monthKey]int, len(months))
	monthsPerYear := map[int]int{}
	rows := make([]domain.MonthlyCashFlowRow, len(months))
	for i, m := range months {
		index[monthKey{m.Year(), m.Month()}] = i
		monthsPerYear[m.Year()]++
		rows[i] = domain.MonthlyCashFlowRow{Year: m.Year(), Month: m.Month(), Date: m}
	}
	at := func(y int, m time.Month) *domain.MonthlyCashFlowRow {
		if i, ok := index[monthKey{y, m}]; ok {
			return &rows[i]
		}
		return nil
	}

	for _, p := range personnel.Monthly {
		if r := at(p.Year, p.Month); r != nil {
			r.PersonnelExpenses = r.PersonnelExpenses.Add(p.TotalExpense)
		}
	}
	for _, q := range equipment.Monthly {
		if r := at(q.Year, q.Month); r != nil {
			r.EquipmentExpenses = r.EquipmentExpenses.Add(q.TotalExpense)
			r.EquipmentDepreciation = r.EquipmentDepreciation.Add(q.AnnualDepreciation)
		}
	}
	for _, it := range other.Items {
		if r := at(it.Year, it.Month); r != nil {
			if it.Category == domain.CategoryExpense {
				r.OtherExpenses = r.OtherExpenses.Add(it.Amount)
			} else {
				r.OtherRevenue = r.OtherRevenue.Add(it.Amount)
			}
		}
	}

	examRevenue := map[int]decimal.Decimal{}
	examExpense := map[int]decimal.Decimal{}
	for _, x := range exams {
		examRevenue[x.Year] = examRevenue[x.Year].Add(x.TotalRevenue)
		examExpense[x.Year] = examExpense[x.Year].Add(x.TotalDirectExpenses)
	}
	for y, n := range monthsPerYear {
		revenue := spreadEvenly(examRevenue[y], n)
		expense := spreadEvenly(examExpense[y], n)
		k := 0
		for i := range rows {
			if rows[i].Year != y {
				continue
			}
			rows[i].ExamRevenue = revenue[k]
			rows[i].ExamDirectExpenses = expense[k]
			k++
		}
	}

	cumulative := decimal.Zero
	for i := range rows {
		r := &rows[i]
		r.TotalRevenue = r.ExamRevenue.Add(r.OtherRevenue)
		r.TotalExpenses = r.PersonnelExpenses.Add(r.EquipmentExpenses).Add(r.ExamDirectExpenses).Add(r.OtherExpenses)
		r.NetIncome = r.TotalRevenue.Sub(r.TotalExpenses)
		cumulative = cumulative.Add(r.NetIncome)
		r.CumulativeNetIncome = cumulative
	}
	return rows
}
