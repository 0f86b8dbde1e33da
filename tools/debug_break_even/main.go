package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/carescan/proforma/internal/calculation"
	"github.com/carescan/proforma/internal/config"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <workbook-file>")
		return
	}
	p := config.NewInputParser()
	s, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	res, err := calc.NewEngineWithOptions(s.Options).CalculateComprehensiveProforma(context.Background(), s.Tables, s.Params)
	if err != nil {
		panic(err)
	}
	if len(res.AnnualSummary) == 0 {
		fmt.Println("no annual data")
		return
	}

	fmt.Println("Year,ExamRevenue,OtherRevenue,Personnel,Equipment,ExamDirect,Other,Net,Cumulative")
	for _, a := range res.AnnualSummary {
		fmt.Printf("%d,%s,%s,%s,%s,%s,%s,%s,%s\n", a.Year,
			a.ExamRevenue.StringFixed(0), a.OtherRevenue.StringFixed(0), a.PersonnelExpenses.StringFixed(0),
			a.EquipmentExpenses.StringFixed(0), a.ExamDirectExpenses.StringFixed(0), a.OtherExpenses.StringFixed(0),
			a.NetIncome.StringFixed(0), a.CumulativeNetIncome.StringFixed(0))
	}

	// Recompute the running total independently of the integrator
	cum := decimal.Zero
	for _, a := range res.AnnualSummary {
		cum = cum.Add(a.NetIncome)
		if !cum.Equal(a.CumulativeNetIncome) {
			fmt.Printf("Cumulative mismatch %d: recomputed=%s reported=%s\n", a.Year, cum.StringFixed(2), a.CumulativeNetIncome.StringFixed(2))
		}
	}

	be := calc.BreakevenYear(res.AnnualSummary)
	if be == nil {
		fmt.Println("\nBreakEven: none within window")
	} else {
		fmt.Printf("\nBreakEven: %d\n", *be)
	}
	fmt.Printf("Minimum cash on hand: %s\n", res.Metrics.MinimumCashOnHand.StringFixed(0))
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w.String())
	}
}
