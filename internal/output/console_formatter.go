package output

import (
	"bytes"
	"fmt"

	"github.com/carescan/proforma/internal/domain"
)

// ConsoleFormatter prints the annual summary and headline metrics as a text table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.ProformaResult) ([]byte, error) {
	var buf bytes.Buffer
	meta := results.Metadata
	fmt.Fprintln(&buf, "MOBILE IMAGING PROFORMA")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Run:    %s\n", meta.RunID)
	fmt.Fprintf(&buf, "Window: %s to %s\n", meta.StartDate.Format("2006-01-02"), meta.EndDate.Format("2006-01-02"))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-6s %16s %16s %16s %16s %16s %16s\n",
		"Year", "Revenue", "Personnel", "Equipment", "Exam Direct", "Net Income", "Cumulative")
	for _, r := range results.AnnualSummary {
		fmt.Fprintf(&buf, "%-6d %16s %16s %16s %16s %16s %16s\n",
			r.Year,
			FormatCurrency(r.TotalRevenue),
			FormatCurrency(r.PersonnelExpenses),
			FormatCurrency(r.EquipmentExpenses),
			FormatCurrency(r.ExamDirectExpenses),
			FormatCurrency(r.NetIncome),
			FormatCurrency(r.CumulativeNetIncome),
		)
	}
	fmt.Fprintln(&buf)

	m := results.Metrics
	fmt.Fprintln(&buf, "FINANCIAL METRICS")
	fmt.Fprintln(&buf, "--------------------------------")
	fmt.Fprintf(&buf, "Total revenue:        %s\n", FormatCurrency(m.TotalRevenue))
	fmt.Fprintf(&buf, "Total expenses:       %s\n", FormatCurrency(m.TotalExpenses))
	fmt.Fprintf(&buf, "Total net income:     %s\n", FormatCurrency(m.TotalNetIncome))
	fmt.Fprintf(&buf, "Average net income:   %s\n", FormatCurrency(m.AverageNetIncome))
	fmt.Fprintf(&buf, "ROI:                  %s\n", FormatPercentage(m.ROI))
	if m.BreakevenYear != nil {
		fmt.Fprintf(&buf, "Breakeven year:       %d\n", *m.BreakevenYear)
	} else {
		fmt.Fprintln(&buf, "Breakeven year:       not reached")
	}
	if len(results.MonthlyCashFlow) > 0 {
		fmt.Fprintf(&buf, "Minimum cash on hand: %s\n", FormatCurrency(m.MinimumCashOnHand))
		fmt.Fprintf(&buf, "Ending cash on hand:  %s\n", FormatCurrency(m.EndingCashOnHand))
	}

	if len(results.Warnings) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "WARNINGS (%d)\n", len(results.Warnings))
		for _, w := range results.Warnings {
			fmt.Fprintf(&buf, "  - %s\n", w)
		}
	}
	return buf.Bytes(), nil
}
