package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/carescan/proforma/internal/calculation"
	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/pkg/dateutil"
	dec "github.com/carescan/proforma/pkg/decimal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Scenario is a normalized workbook, ready for the calculation engine.
type Scenario struct {
	Tables   domain.Tables
	Params   calculation.ProformaParams
	Options  calculation.Options
	Warnings domain.Warnings
}

// InputParser handles parsing of workbook files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and normalizes a YAML workbook
func (ip *InputParser) LoadFromFile(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, validates and normalizes workbook YAML.
func (ip *InputParser) Parse(data []byte) (*Scenario, error) {
	var wb Workbook
	if err := yaml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateConfiguration(&wb); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return ip.Normalize(&wb)
}

// ValidateConfiguration checks the assumptions a run cannot start without.
// Row-level problems are not errors; Normalize reports them as warnings.
func (ip *InputParser) ValidateConfiguration(wb *Workbook) error {
	a := wb.Assumptions
	start, err := dateutil.ParseDate(a.StartDate)
	if err != nil {
		return fmt.Errorf("assumptions.start_date: %w", err)
	}
	end, err := dateutil.ParseDate(a.EndDate)
	if err != nil {
		return fmt.Errorf("assumptions.end_date: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("assumptions: end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if a.WorkDaysPerYear < 0 || a.WorkDaysPerYear > 366 {
		return fmt.Errorf("assumptions.work_days_per_year must be between 0 and 366")
	}
	if a.DaysBetweenTravel < 0 {
		return fmt.Errorf("assumptions.days_between_travel cannot be negative")
	}
	if a.MovingDayCadence != nil && *a.MovingDayCadence < 0 {
		return fmt.Errorf("assumptions.moving_day_cadence cannot be negative")
	}
	if a.YearParallelism < 0 {
		return fmt.Errorf("assumptions.year_parallelism cannot be negative")
	}
	for i, g := range a.GrowthSchedule {
		v, err := dec.ParseAmount(g)
		if err != nil {
			return fmt.Errorf("assumptions.growth_schedule[%d]: %w", i, err)
		}
		if v.LessThan(decimal.NewFromInt(-1)) {
			return fmt.Errorf("assumptions.growth_schedule[%d] cannot be below -100%%", i)
		}
	}
	if a.OrderPaymentShare != "" {
		v, err := dec.ParseAmount(a.OrderPaymentShare)
		if err != nil {
			return fmt.Errorf("assumptions.order_payment_share: %w", err)
		}
		if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("assumptions.order_payment_share must be between 0 and 1")
		}
	}
	return nil
}

// Normalize converts raw rows to canonical records. A table missing from the
// workbook stays nil; unparsable cells fall back to their defaults with a warning.
func (ip *InputParser) Normalize(wb *Workbook) (*Scenario, error) {
	s := &Scenario{Options: calculation.DefaultOptions()}
	if err := ip.normalizeAssumptions(wb.Assumptions, s); err != nil {
		return nil, err
	}

	if wb.Personnel != nil {
		s.Tables.Personnel = make([]domain.PersonnelRecord, 0, len(wb.Personnel))
		for i, r := range wb.Personnel {
			if rec, ok := normalizePersonnel(i, r, &s.Warnings); ok {
				s.Tables.Personnel = append(s.Tables.Personnel, rec)
			}
		}
	}
	if wb.Equipment != nil {
		s.Tables.Equipment = make([]domain.EquipmentRecord, 0, len(wb.Equipment))
		for i, r := range wb.Equipment {
			if rec, ok := normalizeEquipment(i, r, &s.Warnings); ok {
				s.Tables.Equipment = append(s.Tables.Equipment, rec)
			}
		}
	}
	if wb.Exams != nil {
		s.Tables.Exams = make([]domain.ExamRecord, 0, len(wb.Exams))
		for i, r := range wb.Exams {
			if rec, ok := normalizeExam(i, r, &s.Warnings); ok {
				s.Tables.Exams = append(s.Tables.Exams, rec)
			}
		}
	}
	if wb.RevenueSources != nil {
		s.Tables.RevenueSources = make([]domain.RevenueSourceRecord, 0, len(wb.RevenueSources))
		for i, r := range wb.RevenueSources {
			if rec, ok := normalizeRevenueSource(i, r, &s.Warnings); ok {
				s.Tables.RevenueSources = append(s.Tables.RevenueSources, rec)
			}
		}
	}
	if wb.OtherItems != nil {
		s.Tables.OtherItems = make([]domain.OtherItemRecord, 0, len(wb.OtherItems))
		for i, r := range wb.OtherItems {
			if rec, ok := normalizeOtherItem(i, r, &s.Warnings); ok {
				s.Tables.OtherItems = append(s.Tables.OtherItems, rec)
			}
		}
	}
	return s, nil
}

func (ip *InputParser) normalizeAssumptions(a Assumptions, s *Scenario) error {
	start, err := dateutil.ParseDate(a.StartDate)
	if err != nil {
		return fmt.Errorf("assumptions.start_date: %w", err)
	}
	end, err := dateutil.ParseDate(a.EndDate)
	if err != nil {
		return fmt.Errorf("assumptions.end_date: %w", err)
	}
	s.Params = calculation.ProformaParams{
		StartDate:       start,
		EndDate:         end,
		SelectedSources: a.SelectedSources,
		WorkDaysPerYear: a.WorkDaysPerYear,
		Travel:          calculation.DefaultTravelParams(),
	}
	if a.DaysBetweenTravel > 0 {
		s.Params.Travel.DaysBetweenTravel = a.DaysBetweenTravel
	}
	if a.MilesPerTravel != "" {
		miles, err := dec.ParseAmount(a.MilesPerTravel)
		if err != nil {
			return fmt.Errorf("assumptions.miles_per_travel: %w", err)
		}
		s.Params.Travel.MilesPerTravel = miles
	}
	if a.GrowthSchedule != nil {
		s.Params.GrowthSchedule = make([]decimal.Decimal, 0, len(a.GrowthSchedule))
		for _, g := range a.GrowthSchedule {
			v, _ := dec.ParseAmount(g)
			s.Params.GrowthSchedule = append(s.Params.GrowthSchedule, v)
		}
	}
	if a.InitialCash != "" {
		cash, err := dec.ParseAmount(a.InitialCash)
		if err != nil {
			return fmt.Errorf("assumptions.initial_cash: %w", err)
		}
		s.Params.Cash.InitialCash = cash
	}
	if a.OrderPaymentShare != "" {
		share, _ := dec.ParseAmount(a.OrderPaymentShare)
		s.Params.Cash.OrderPaymentShare = &share
	}
	if a.MovingDayCadence != nil {
		s.Options.MovingDayCadence = *a.MovingDayCadence
	}
	if a.YearParallelism > 0 {
		s.Options.YearParallelism = a.YearParallelism
	}
	return nil
}

// cells reads the string cells of one row, recording a warning for each
// value it cannot parse.
type cells struct {
	table  string
	record string
	ws     *domain.Warnings
}

func newCells(table string, index int, title string, ws *domain.Warnings) (*cells, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		ws.Add(table, fmt.Sprintf("row %d", index+1), 0, "missing title, skipped")
		return nil, false
	}
	return &cells{table: table, record: title, ws: ws}, true
}

func (c *cells) warn(field, raw string, err error) {
	c.ws.Add(c.table, c.record, 0, "%s: cannot parse %q (%v)", field, raw, err)
}

func (c *cells) amount(field, raw string, def decimal.Decimal) decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return def
	}
	v, err := dec.ParseAmount(raw)
	if err != nil {
		c.warn(field, raw, err)
		return def
	}
	return v
}

func (c *cells) optionalAmount(field, raw string) *decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	v, err := dec.ParseAmount(raw)
	if err != nil {
		c.warn(field, raw, err)
		return nil
	}
	return &v
}

func (c *cells) integer(field, raw string, def int) int {
	if strings.TrimSpace(raw) == "" {
		return def
	}
	v, err := dec.ParseAmount(raw)
	if err != nil {
		c.warn(field, raw, err)
		return def
	}
	if !v.Equal(v.Truncate(0)) {
		c.warn(field, raw, fmt.Errorf("not a whole number"))
		return def
	}
	return int(v.IntPart())
}

func (c *cells) date(field, raw string) time.Time {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}
	}
	t, err := dateutil.ParseDate(raw)
	if err != nil {
		c.warn(field, raw, err)
		return time.Time{}
	}
	return t
}

func (c *cells) optionalDate(field, raw string) *time.Time {
	t := c.date(field, raw)
	if t.IsZero() {
		return nil
	}
	return &t
}

func (c *cells) flag(field, raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return def
	case "yes", "y", "x":
		return true
	case "no", "n":
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		c.warn(field, raw, err)
		return def
	}
	return v
}

func (c *cells) sexes(field string, raw []string) []domain.Sex {
	out := make([]domain.Sex, 0, len(raw))
	for _, s := range raw {
		switch strings.ToLower(s) {
		case "m", "male":
			out = append(out, domain.Male)
		case "f", "female":
			out = append(out, domain.Female)
		default:
			c.warn(field, s, fmt.Errorf("expected Male or Female"))
		}
	}
	return out
}

var (
	one   = decimal.NewFromInt(1)
	eight = decimal.NewFromInt(8)
)

func normalizePersonnel(i int, r PersonnelRow, ws *domain.Warnings) (domain.PersonnelRecord, bool) {
	c, ok := newCells(domain.TablePersonnel, i, r.Title, ws)
	if !ok {
		return domain.PersonnelRecord{}, false
	}
	return domain.PersonnelRecord{
		Title:       c.record,
		Type:        strings.TrimSpace(r.Type),
		Institution: strings.TrimSpace(r.Institution),
		Salary:      c.amount("salary", r.Salary, decimal.Zero),
		Fringe:      c.amount("fringe", r.Fringe, decimal.Zero),
		Effort:      c.amount("effort", r.Effort, one),
		StartDate:   c.date("start_date", r.StartDate),
		EndDate:     c.optionalDate("end_date", r.EndDate),
		HoursPerDay: c.amount("hours_per_day", r.HoursPerDay, eight),
	}, true
}

func normalizeEquipment(i int, r EquipmentRow, ws *domain.Warnings) (domain.EquipmentRecord, bool) {
	c, ok := newCells(domain.TableEquipment, i, r.Title, ws)
	if !ok {
		return domain.EquipmentRecord{}, false
	}
	return domain.EquipmentRecord{
		Title:                   c.record,
		PurchaseDate:            c.date("purchase_date", r.PurchaseDate),
		ConstructionTime:        c.integer("construction_time", r.ConstructionTime, 0),
		Lifespan:                c.integer("lifespan", r.Lifespan, 0),
		PurchaseCost:            c.amount("purchase_cost", r.PurchaseCost, decimal.Zero),
		Quantity:                c.integer("quantity", r.Quantity, 1),
		AnnualServiceCost:       c.amount("annual_service_cost", r.AnnualServiceCost, decimal.Zero),
		AnnualAccreditationCost: c.amount("annual_accreditation_cost", r.AnnualAccreditationCost, decimal.Zero),
		AnnualInsuranceCost:     c.amount("annual_insurance_cost", r.AnnualInsuranceCost, decimal.Zero),
		MilageCost:              c.amount("milage_cost", r.MilageCost, decimal.Zero),
		SetupTime:               c.amount("setup_time", r.SetupTime, decimal.Zero),
		TakedownTime:            c.amount("takedown_time", r.TakedownTime, decimal.Zero),
		NecessaryStaff:          r.NecessaryStaff,
		ExamsOffered:            r.ExamsOffered,
		IsLeased:                c.flag("is_leased", r.IsLeased, false),
		AnnualLeaseAmount:       c.amount("annual_lease_amount", r.AnnualLeaseAmount, decimal.Zero),
	}, true
}

func normalizeExam(i int, r ExamRow, ws *domain.Warnings) (domain.ExamRecord, bool) {
	c, ok := newCells(domain.TableExams, i, r.Title, ws)
	if !ok {
		return domain.ExamRecord{}, false
	}
	return domain.ExamRecord{
		Title:         c.record,
		Equipment:     r.Equipment,
		Staff:         r.Staff,
		Duration:      c.amount("duration", r.Duration, decimal.Zero),
		SupplyCost:    c.amount("supply_cost", r.SupplyCost, decimal.Zero),
		OrderCost:     c.amount("order_cost", r.OrderCost, decimal.Zero),
		InterpCost:    c.amount("interp_cost", r.InterpCost, decimal.Zero),
		DirectCost:    c.optionalAmount("direct_cost", r.DirectCost),
		VariableCost:  c.optionalAmount("variable_cost", r.VariableCost),
		CMSTechRate:   c.amount("cms_tech_rate", r.CMSTechRate, decimal.Zero),
		CMSProRate:    c.amount("cms_pro_rate", r.CMSProRate, decimal.Zero),
		Price:         c.optionalAmount("price", r.Price),
		Rate:          c.optionalAmount("rate", r.Rate),
		MinAge:        c.integer("min_age", r.MinAge, 0),
		MaxAge:        c.integer("max_age", r.MaxAge, 0),
		ApplicableSex: c.sexes("applicable_sex", r.ApplicableSex),
		ApplicablePct: c.amount("applicable_pct", r.ApplicablePct, decimal.Zero),
	}, true
}

func normalizeRevenueSource(i int, r RevenueSourceRow, ws *domain.Warnings) (domain.RevenueSourceRecord, bool) {
	c, ok := newCells(domain.TableRevenueSources, i, r.Title, ws)
	if !ok {
		return domain.RevenueSourceRecord{}, false
	}
	return domain.RevenueSourceRecord{
		Title:                c.record,
		OfferedExams:         r.OfferedExams,
		TargetPopulation:     int64(c.integer("target_population", r.TargetPopulation, 0)),
		PctPopulationReached: c.amount("pct_population_reached", r.PctPopulationReached, decimal.Zero),
		PopulationMinAge:     c.integer("population_min_age", r.PopulationMinAge, 0),
		PopulationMaxAge:     c.integer("population_max_age", r.PopulationMaxAge, 0),
		PctFemale:            c.amount("pct_female", r.PctFemale, decimal.Zero),
		PctFullModel:         c.amount("pct_full_model", r.PctFullModel, decimal.Zero),
		PctCMS:               c.amount("pct_cms", r.PctCMS, decimal.Zero),
		NonCMSMultiplier:     c.amount("non_cms_multiplier", r.NonCMSMultiplier, one),
		FlatPatientFee:       c.amount("flat_patient_fee", r.FlatPatientFee, decimal.Zero),
		RevenueToPartner:     c.amount("revenue_to_partner", r.RevenueToPartner, decimal.Zero),
	}, true
}

func normalizeOtherItem(i int, r OtherItemRow, ws *domain.Warnings) (domain.OtherItemRecord, bool) {
	c, ok := newCells(domain.TableOtherItems, i, r.Title, ws)
	if !ok {
		return domain.OtherItemRecord{}, false
	}
	return domain.OtherItemRecord{
		Title:       c.record,
		Vendor:      strings.TrimSpace(r.Vendor),
		AppliedDate: c.date("applied_date", r.AppliedDate),
		Amount:      c.amount("amount", r.Amount, decimal.Zero),
		Expense:     c.flag("expense", r.Expense, true),
		Description: r.Description,
	}, true
}
