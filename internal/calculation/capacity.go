package calculation

import (
	"sort"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/pkg/dateutil"
	dec "github.com/carescan/proforma/pkg/decimal"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// AvailableEquipment returns the units whose construction has finished by date.
func AvailableEquipment(equipment []domain.EquipmentRecord, date time.Time) []domain.EquipmentRecord {
	var out []domain.EquipmentRecord
	for _, e := range equipment {
		if !e.PurchaseDate.IsZero() && e.AvailableOn(date) {
			out = append(out, e)
		}
	}
	return out
}

// AvailableStaff returns the personnel employed on date.
func AvailableStaff(personnel []domain.PersonnelRecord, date time.Time) []domain.PersonnelRecord {
	var out []domain.PersonnelRecord
	for _, p := range personnel {
		if !p.StartDate.IsZero() && p.ActiveOn(date) {
			out = append(out, p)
		}
	}
	return out
}

// StaffHoursAvailable sums Effort*HoursPerDay of the staff employed on date, per staff type.
func StaffHoursAvailable(personnel []domain.PersonnelRecord, date time.Time) map[string]decimal.Decimal {
	hours := map[string]decimal.Decimal{}
	for _, p := range AvailableStaff(personnel, date) {
		hours[p.Type] = hours[p.Type].Add(p.DailyHours())
	}
	return hours
}

// IsMovingDay reports whether date falls on the relocation cadence counted from projectionStart.
func IsMovingDay(date, projectionStart time.Time, cadence int) bool {
	if cadence <= 0 {
		return false
	}
	days := dateutil.DaysSince(projectionStart, date)
	return days >= 0 && days%cadence == 0
}

// MovingDayPenaltyHours is the staff time lost to setting up and taking down
// every unit available on date.
func MovingDayPenaltyHours(equipment []domain.EquipmentRecord, date time.Time) decimal.Decimal {
	minutes := decimal.Zero
	for _, e := range AvailableEquipment(equipment, date) {
		minutes = minutes.Add(e.ChangeoverMinutes())
	}
	return minutes.Div(sixty)
}

// CapacityInput is everything needed to size one contract's exam day.
type CapacityInput struct {
	Date            time.Time
	ProjectionStart time.Time
	Contract        domain.RevenueSourceRecord
	// PctPopulationReached overrides the contract's baseline reach, e.g. after growth.
	PctPopulationReached *decimal.Decimal
	Exams                []domain.ExamRecord
	Personnel            []domain.PersonnelRecord
	Equipment            []domain.EquipmentRecord
}

// examCatalog indexes exam and equipment titles for lookups.
type examCatalog struct {
	exams     map[string]domain.ExamRecord
	equipment map[string]bool
}

func newExamCatalog(exams []domain.ExamRecord, equipment []domain.EquipmentRecord) examCatalog {
	c := examCatalog{
		exams:     make(map[string]domain.ExamRecord, len(exams)),
		equipment: make(map[string]bool, len(equipment)),
	}
	for _, x := range exams {
		if _, dup := c.exams[x.Title]; !dup {
			c.exams[x.Title] = x
		}
	}
	for _, e := range equipment {
		c.equipment[e.Title] = true
	}
	return c
}

// offered returns the contract's exams that exist in the catalog, in contract order.
func (c examCatalog) offered(contract domain.RevenueSourceRecord) []domain.ExamRecord {
	var out []domain.ExamRecord
	seen := map[string]bool{}
	for _, title := range contract.OfferedExams {
		if x, ok := c.exams[title]; ok && !seen[title] {
			seen[title] = true
			out = append(out, x)
		}
	}
	return out
}

// checkReferences warns about broken links between a contract, its exams and the equipment table.
func (e *Engine) checkReferences(c examCatalog, contract domain.RevenueSourceRecord, ws *domain.Warnings) {
	for _, title := range contract.OfferedExams {
		x, ok := c.exams[title]
		if !ok {
			e.warn(ws, domain.TableRevenueSources, contract.Title, 0, "offered exam %q not found in exams table", title)
			continue
		}
		for _, eq := range x.Equipment {
			if !c.equipment[eq] {
				e.warn(ws, domain.TableExams, x.Title, 0, "requires unknown equipment %q", eq)
			}
		}
		if len(x.Staff) == 0 {
			e.warn(ws, domain.TableExams, x.Title, 0, "no staff types listed, capacity is zero")
		}
		if !x.Duration.IsPositive() {
			e.warn(ws, domain.TableExams, x.Title, 0, "duration %s must be positive, capacity is zero", x.Duration)
		}
	}
}

// staffCapacity returns how many exams per day the scarcest required staff
// type supports, and which type that is.
func staffCapacity(staff []string, hours map[string]decimal.Decimal, durationHours decimal.Decimal) (decimal.Decimal, string) {
	if len(staff) == 0 || !durationHours.IsPositive() {
		return decimal.Zero, ""
	}
	var (
		lowest   decimal.Decimal
		limiting string
	)
	for i, t := range staff {
		h := hours[t]
		if !h.IsPositive() {
			return decimal.Zero, t
		}
		c := h.Div(durationHours)
		if i == 0 || c.LessThan(lowest) {
			lowest, limiting = c, t
		}
	}
	return lowest, limiting
}

// ExamsPerDay sizes one contract's daily exam throughput on in.Date.
func (e *Engine) ExamsPerDay(in CapacityInput) ([]domain.ExamCapacityRow, domain.Warnings) {
	var warnings domain.Warnings
	catalog := newExamCatalog(in.Exams, in.Equipment)
	e.checkReferences(catalog, in.Contract, &warnings)
	return e.examsPerDay(catalog, in), warnings
}

func (e *Engine) examsPerDay(catalog examCatalog, in CapacityInput) []domain.ExamCapacityRow {
	date := dateutil.Civil(in.Date)
	pct := in.Contract.PctPopulationReached
	if in.PctPopulationReached != nil {
		pct = *in.PctPopulationReached
	}

	available := map[string]bool{}
	for _, eq := range AvailableEquipment(in.Equipment, date) {
		available[eq.Title] = true
	}

	hours := StaffHoursAvailable(in.Personnel, date)
	moving := IsMovingDay(date, in.ProjectionStart, e.Options.MovingDayCadence)
	if moving {
		penalty := MovingDayPenaltyHours(in.Equipment, date)
		for t, h := range hours {
			hours[t] = dec.NonNegative(h.Sub(penalty))
		}
	}

	volumes := maxReachableVolume(in.Contract, catalog.offered(in.Contract), pct)
	schedulable := make([]bool, len(volumes))
	total := decimal.Zero
	for i, v := range volumes {
		x := catalog.exams[v.Exam]
		ok := true
		for _, eq := range x.Equipment {
			if !available[eq] {
				ok = false
				break
			}
		}
		schedulable[i] = ok
		if ok {
			total = total.Add(v.MaxVolume)
		}
	}

	rows := make([]domain.ExamCapacityRow, 0, len(volumes))
	for i, v := range volumes {
		x := catalog.exams[v.Exam]
		durationHours := x.Duration.Div(sixty)
		row := domain.ExamCapacityRow{
			Date:          date,
			RevenueSource: in.Contract.Title,
			Exam:          v.Exam,
			MaxVolume:     v.MaxVolume,
			DurationHours: durationHours,
			MovingDay:     moving,
		}
		if !schedulable[i] {
			row.LimitedByEquipment = true
			rows = append(rows, row)
			continue
		}
		row.Proportion = dec.SafeDiv(v.MaxVolume, total)
		row.StaffCapacity, row.LimitingStaff = staffCapacity(x.Staff, hours, durationHours)
		row.TargetExamsPerDay = row.Proportion.Mul(row.StaffCapacity)
		row.StaffHoursRequired = row.TargetExamsPerDay.Mul(durationHours)
		rows = append(rows, row)
	}
	return rows
}

// StaffTypes lists the staff types with hours on date, sorted.
func StaffTypes(hours map[string]decimal.Decimal) []string {
	types := make([]string, 0, len(hours))
	for t := range hours {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
