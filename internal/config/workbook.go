package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Workbook is the on-disk form of a proforma: an assumptions block plus one
// list of raw rows per input table. Cell values are kept as strings until
// normalization so spreadsheet exports ("$1,250", "01/15/2025", "1_000")
// load without a custom YAML type per field.
type Workbook struct {
	Assumptions    Assumptions        `yaml:"assumptions"`
	Personnel      []PersonnelRow     `yaml:"personnel"`
	Equipment      []EquipmentRow     `yaml:"equipment"`
	Exams          []ExamRow          `yaml:"exams"`
	RevenueSources []RevenueSourceRow `yaml:"revenue_sources"`
	OtherItems     []OtherItemRow     `yaml:"other_items"`
}

// Assumptions are the run-wide settings of a workbook.
type Assumptions struct {
	StartDate         string     `yaml:"start_date"`
	EndDate           string     `yaml:"end_date"`
	SelectedSources   StringList `yaml:"selected_sources,omitempty"`
	WorkDaysPerYear   int        `yaml:"work_days_per_year,omitempty"`
	DaysBetweenTravel int        `yaml:"days_between_travel,omitempty"`
	MilesPerTravel    string     `yaml:"miles_per_travel,omitempty"`
	GrowthSchedule    StringList `yaml:"growth_schedule,omitempty"`
	MovingDayCadence  *int       `yaml:"moving_day_cadence,omitempty"`
	YearParallelism   int        `yaml:"year_parallelism,omitempty"`
	InitialCash       string     `yaml:"initial_cash,omitempty"`
	OrderPaymentShare string     `yaml:"order_payment_share,omitempty"`
}

type PersonnelRow struct {
	Title       string `yaml:"title"`
	Type        string `yaml:"type"`
	Institution string `yaml:"institution,omitempty"`
	Salary      string `yaml:"salary"`
	Fringe      string `yaml:"fringe,omitempty"`
	Effort      string `yaml:"effort"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date,omitempty"`
	HoursPerDay string `yaml:"hours_per_day,omitempty"`
}

type EquipmentRow struct {
	Title                   string     `yaml:"title"`
	PurchaseDate            string     `yaml:"purchase_date"`
	ConstructionTime        string     `yaml:"construction_time,omitempty"`
	Lifespan                string     `yaml:"lifespan"`
	PurchaseCost            string     `yaml:"purchase_cost,omitempty"`
	Quantity                string     `yaml:"quantity,omitempty"`
	AnnualServiceCost       string     `yaml:"annual_service_cost,omitempty"`
	AnnualAccreditationCost string     `yaml:"annual_accreditation_cost,omitempty"`
	AnnualInsuranceCost     string     `yaml:"annual_insurance_cost,omitempty"`
	MilageCost              string     `yaml:"milage_cost,omitempty"`
	SetupTime               string     `yaml:"setup_time,omitempty"`
	TakedownTime            string     `yaml:"takedown_time,omitempty"`
	NecessaryStaff          StringList `yaml:"necessary_staff,omitempty"`
	ExamsOffered            StringList `yaml:"exams_offered,omitempty"`
	IsLeased                string     `yaml:"is_leased,omitempty"`
	AnnualLeaseAmount       string     `yaml:"annual_lease_amount,omitempty"`
}

type ExamRow struct {
	Title         string     `yaml:"title"`
	Equipment     StringList `yaml:"equipment"`
	Staff         StringList `yaml:"staff"`
	Duration      string     `yaml:"duration"`
	SupplyCost    string     `yaml:"supply_cost,omitempty"`
	OrderCost     string     `yaml:"order_cost,omitempty"`
	InterpCost    string     `yaml:"interp_cost,omitempty"`
	DirectCost    string     `yaml:"direct_cost,omitempty"`
	VariableCost  string     `yaml:"variable_cost,omitempty"`
	CMSTechRate   string     `yaml:"cms_tech_rate,omitempty"`
	CMSProRate    string     `yaml:"cms_pro_rate,omitempty"`
	Price         string     `yaml:"price,omitempty"`
	Rate          string     `yaml:"rate,omitempty"`
	MinAge        string     `yaml:"min_age"`
	MaxAge        string     `yaml:"max_age"`
	ApplicableSex StringList `yaml:"applicable_sex"`
	ApplicablePct string     `yaml:"applicable_pct"`
}

type RevenueSourceRow struct {
	Title                string     `yaml:"title"`
	OfferedExams         StringList `yaml:"offered_exams"`
	TargetPopulation     string     `yaml:"target_population"`
	PctPopulationReached string     `yaml:"pct_population_reached"`
	PopulationMinAge     string     `yaml:"population_min_age"`
	PopulationMaxAge     string     `yaml:"population_max_age"`
	PctFemale            string     `yaml:"pct_female"`
	PctFullModel         string     `yaml:"pct_full_model"`
	PctCMS               string     `yaml:"pct_cms,omitempty"`
	NonCMSMultiplier     string     `yaml:"non_cms_multiplier,omitempty"`
	FlatPatientFee       string     `yaml:"flat_patient_fee,omitempty"`
	RevenueToPartner     string     `yaml:"revenue_to_partner,omitempty"`
}

type OtherItemRow struct {
	Title       string `yaml:"title"`
	Vendor      string `yaml:"vendor,omitempty"`
	AppliedDate string `yaml:"applied_date"`
	Amount      string `yaml:"amount"`
	// Expense defaults to true; "false" or "no" marks the row as revenue.
	Expense     string `yaml:"expense,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// StringList accepts either a YAML sequence or a single semicolon-delimited string.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = trimAll(items)
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = trimAll(strings.Split(value.Value, ";"))
	default:
		return fmt.Errorf("line %d: expected a list or a semicolon-delimited string", value.Line)
	}
	return nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
