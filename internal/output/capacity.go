package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/carescan/proforma/internal/domain"
)

// FormatCapacity renders one day's exam capacity, as a text table or, when
// asCSV is set, as CSV.
func FormatCapacity(rows []domain.ExamCapacityRow, asCSV bool) ([]byte, error) {
	if asCSV {
		return capacityCSV(rows)
	}
	var buf bytes.Buffer
	if len(rows) == 0 {
		fmt.Fprintln(&buf, "No exams offered.")
		return buf.Bytes(), nil
	}
	fmt.Fprintf(&buf, "Capacity on %s for %s", rows[0].Date.Format("2006-01-02"), rows[0].RevenueSource)
	if rows[0].MovingDay {
		fmt.Fprint(&buf, " (moving day)")
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%-28s %12s %10s %12s %12s  %s\n", "Exam", "Max Volume", "Share", "Staff Cap", "Target/Day", "Limit")
	for _, r := range rows {
		limit := r.LimitingStaff
		if r.LimitedByEquipment {
			limit = "equipment unavailable"
		}
		fmt.Fprintf(&buf, "%-28s %12s %10s %12s %12s  %s\n",
			r.Exam,
			r.MaxVolume.StringFixed(1),
			FormatPercentage(r.Proportion),
			r.StaffCapacity.StringFixed(2),
			r.TargetExamsPerDay.StringFixed(2),
			limit,
		)
	}
	return buf.Bytes(), nil
}

func capacityCSV(rows []domain.ExamCapacityRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Date", "RevenueSource", "Exam", "MaxVolume", "Proportion", "StaffCapacity",
		"TargetExamsPerDay", "StaffHoursRequired", "LimitingStaff", "LimitedByEquipment", "MovingDay"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			r.Date.Format("2006-01-02"),
			r.RevenueSource,
			r.Exam,
			r.MaxVolume.String(),
			r.Proportion.String(),
			r.StaffCapacity.String(),
			r.TargetExamsPerDay.String(),
			r.StaffHoursRequired.String(),
			r.LimitingStaff,
			boolToString(r.LimitedByEquipment),
			boolToString(r.MovingDay),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
