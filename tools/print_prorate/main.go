package main

import (
	"fmt"
	"os"

	"github.com/carescan/proforma/internal/calculation"
	"github.com/carescan/proforma/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: print_prorate <workbook-file> [title]")
		return
	}
	s, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	only := ""
	if len(os.Args) > 2 {
		only = os.Args[2]
	}

	e := calculation.NewEngineWithOptions(s.Options)
	rows, warnings := e.MonthlyExpense(s.Tables.Personnel, s.Params.StartDate, s.Params.EndDate)
	fmt.Println("Title,Year,Month,DaysWorked,MonthFraction,Effort,Base,Fringe,Total")
	for _, r := range rows {
		if only != "" && r.Title != only {
			continue
		}
		fmt.Printf("%s,%d,%d,%d,%s,%s,%s,%s,%s\n", r.Title, r.Year, int(r.Month), r.DaysWorked,
			r.MonthFraction.StringFixed(4), r.Effort.StringFixed(2),
			r.BaseExpense.StringFixed(2), r.FringeAmount.StringFixed(2), r.TotalExpense.StringFixed(2))
	}

	// Full-year figure for comparison with the prorated months
	for _, a := range calculation.AnnualExpense(rows) {
		if only != "" && a.Title != only {
			continue
		}
		fmt.Printf("Annual %s %d: %s\n", a.Title, a.Year, a.TotalExpense.StringFixed(2))
	}
	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w.String())
	}
}
