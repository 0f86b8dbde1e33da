package output

import (
	"bytes"
	"encoding/csv"

	"github.com/carescan/proforma/internal/domain"
)

// CSVDetailedExporter writes the monthly cash flow including the cash position columns.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(results *domain.ProformaResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Month", "ExamRevenue", "OtherRevenue", "TotalRevenue", "PersonnelExpenses", "EquipmentExpenses",
		"EquipmentDepreciation", "ExamDirectExpenses", "OtherExpenses", "TotalExpenses", "NetIncome", "CumulativeNetIncome",
		"EquipmentPurchases", "CashFlow", "CashOnHand"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, m := range results.MonthlyCashFlow {
		row := []string{
			intToString(m.Year),
			intToString(int(m.Month)),
			money(m.ExamRevenue),
			money(m.OtherRevenue),
			money(m.TotalRevenue),
			money(m.PersonnelExpenses),
			money(m.EquipmentExpenses),
			money(m.EquipmentDepreciation),
			money(m.ExamDirectExpenses),
			money(m.OtherExpenses),
			money(m.TotalExpenses),
			money(m.NetIncome),
			money(m.CumulativeNetIncome),
			money(m.EquipmentPurchases),
			money(m.CashFlow),
			money(m.CashOnHand),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
