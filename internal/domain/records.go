package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sex identifies the patient population an exam applies to.
type Sex string

const (
	Male   Sex = "Male"
	Female Sex = "Female"
)

// PersonnelRecord is one staff position on the roster.
type PersonnelRecord struct {
	Title       string          `json:"title"`
	Type        string          `json:"type"`
	Institution string          `json:"institution"`
	Salary      decimal.Decimal `json:"salary"`
	Fringe      decimal.Decimal `json:"fringe"`
	Effort      decimal.Decimal `json:"effort"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"` // nil = open-ended
	HoursPerDay decimal.Decimal `json:"hours_per_day"`
}

// ActiveOn reports whether the position is staffed on the given date.
func (p PersonnelRecord) ActiveOn(date time.Time) bool {
	if date.Before(p.StartDate) {
		return false
	}
	return p.EndDate == nil || !date.After(*p.EndDate)
}

// DailyHours is the effort-weighted hours this position contributes per work day.
func (p PersonnelRecord) DailyHours() decimal.Decimal {
	return p.Effort.Mul(p.HoursPerDay)
}

// EquipmentRecord is one mobile imaging unit, purchased or leased.
type EquipmentRecord struct {
	Title                   string          `json:"title"`
	PurchaseDate            time.Time       `json:"purchase_date"`
	ConstructionTime        int             `json:"construction_time"` // days
	Lifespan                int             `json:"lifespan"`          // years
	PurchaseCost            decimal.Decimal `json:"purchase_cost"`
	Quantity                int             `json:"quantity"`
	AnnualServiceCost       decimal.Decimal `json:"annual_service_cost"`
	AnnualAccreditationCost decimal.Decimal `json:"annual_accreditation_cost"`
	AnnualInsuranceCost     decimal.Decimal `json:"annual_insurance_cost"`
	MilageCost              decimal.Decimal `json:"milage_cost"`
	SetupTime               decimal.Decimal `json:"setup_time"`    // minutes
	TakedownTime            decimal.Decimal `json:"takedown_time"` // minutes
	NecessaryStaff          []string        `json:"necessary_staff"`
	ExamsOffered            []string        `json:"exams_offered"`
	IsLeased                bool            `json:"is_leased"`
	AnnualLeaseAmount       decimal.Decimal `json:"annual_lease_amount"`
}

// StartDate is the date the unit becomes usable, after construction.
func (e EquipmentRecord) StartDate() time.Time {
	return e.PurchaseDate.AddDate(0, 0, e.ConstructionTime)
}

// EndOfLife is the first day the unit is no longer in service.
func (e EquipmentRecord) EndOfLife() time.Time {
	return e.StartDate().AddDate(e.Lifespan, 0, 0)
}

// LastServiceDay is the final day the unit is in service.
func (e EquipmentRecord) LastServiceDay() time.Time {
	return e.EndOfLife().AddDate(0, 0, -1)
}

// DepreciableCost is the cost basis written down over the lifespan; zero for leased units.
func (e EquipmentRecord) DepreciableCost() decimal.Decimal {
	if e.IsLeased {
		return decimal.Zero
	}
	return e.PurchaseCost
}

// AvailableOn reports whether construction has finished by date.
func (e EquipmentRecord) AvailableOn(date time.Time) bool {
	return !e.StartDate().After(date)
}

// ChangeoverMinutes is the setup plus takedown time of one relocation.
func (e EquipmentRecord) ChangeoverMinutes() decimal.Decimal {
	return e.SetupTime.Add(e.TakedownTime)
}

// ExamRecord describes one exam type, what it needs and what it pays.
type ExamRecord struct {
	Title         string           `json:"title"`
	Equipment     []string         `json:"equipment"`
	Staff         []string         `json:"staff"`
	Duration      decimal.Decimal  `json:"duration"` // minutes
	SupplyCost    decimal.Decimal  `json:"supply_cost"`
	OrderCost     decimal.Decimal  `json:"order_cost"`
	InterpCost    decimal.Decimal  `json:"interp_cost"`
	DirectCost    *decimal.Decimal `json:"direct_cost,omitempty"`
	VariableCost  *decimal.Decimal `json:"variable_cost,omitempty"`
	CMSTechRate   decimal.Decimal  `json:"cms_tech_rate"`
	CMSProRate    decimal.Decimal  `json:"cms_pro_rate"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	MinAge        int              `json:"min_age"`
	MaxAge        int              `json:"max_age"`
	ApplicableSex []Sex            `json:"applicable_sex"`
	ApplicablePct decimal.Decimal  `json:"applicable_pct"`
}

// AppliesTo reports whether the exam is offered to the given sex.
func (x ExamRecord) AppliesTo(s Sex) bool {
	for _, v := range x.ApplicableSex {
		if v == s {
			return true
		}
	}
	return false
}

// RevenueSourceRecord is a contract offering exams to a target population.
type RevenueSourceRecord struct {
	Title                string          `json:"title"`
	OfferedExams         []string        `json:"offered_exams"`
	TargetPopulation     int64           `json:"target_population"`
	PctPopulationReached decimal.Decimal `json:"pct_population_reached"`
	PopulationMinAge     int             `json:"population_min_age"`
	PopulationMaxAge     int             `json:"population_max_age"`
	PctFemale            decimal.Decimal `json:"pct_female"`
	PctFullModel         decimal.Decimal `json:"pct_full_model"`
	PctCMS               decimal.Decimal `json:"pct_cms"`
	NonCMSMultiplier     decimal.Decimal `json:"non_cms_multiplier"`
	FlatPatientFee       decimal.Decimal `json:"flat_patient_fee"`
	RevenueToPartner     decimal.Decimal `json:"revenue_to_partner"`
}

// Offers reports whether the contract lists the exam.
func (r RevenueSourceRecord) Offers(exam string) bool {
	for _, e := range r.OfferedExams {
		if e == exam {
			return true
		}
	}
	return false
}

// OtherItemRecord is a one-off ledger entry.
type OtherItemRecord struct {
	Title       string          `json:"title"`
	Vendor      string          `json:"vendor"`
	AppliedDate time.Time       `json:"applied_date"`
	Amount      decimal.Decimal `json:"amount"`
	Expense     bool            `json:"expense"`
	Description string          `json:"description"`
}

// Tables bundles the input tables of one run. A nil slice means the table is absent.
type Tables struct {
	Personnel      []PersonnelRecord     `json:"personnel"`
	Equipment      []EquipmentRecord     `json:"equipment"`
	Exams          []ExamRecord          `json:"exams"`
	RevenueSources []RevenueSourceRecord `json:"revenue_sources"`
	OtherItems     []OtherItemRecord     `json:"other_items"`
}
