package output

import (
	"bytes"
	"encoding/csv"

	"github.com/carescan/proforma/internal/domain"
)

// CSVSummarizer writes the annual summary, one row per year.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ProformaResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "ExamRevenue", "OtherRevenue", "TotalRevenue", "PersonnelExpenses", "EquipmentExpenses",
		"EquipmentLease", "EquipmentDepreciation", "ExamDirectExpenses", "OtherExpenses", "TotalExpenses", "NetIncome", "CumulativeNetIncome"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range results.AnnualSummary {
		row := []string{
			intToString(r.Year),
			money(r.ExamRevenue),
			money(r.OtherRevenue),
			money(r.TotalRevenue),
			money(r.PersonnelExpenses),
			money(r.EquipmentExpenses),
			money(r.EquipmentLease),
			money(r.EquipmentDepreciation),
			money(r.ExamDirectExpenses),
			money(r.OtherExpenses),
			money(r.TotalExpenses),
			money(r.NetIncome),
			money(r.CumulativeNetIncome),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
