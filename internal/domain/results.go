package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyExpenseRow is one employee's prorated cost for one calendar month.
type MonthlyExpenseRow struct {
	Title         string          `json:"title"`
	Type          string          `json:"type"`
	Institution   string          `json:"institution"`
	Year          int             `json:"year"`
	Month         time.Month      `json:"month"`
	DaysWorked    int             `json:"days_worked"`
	MonthFraction decimal.Decimal `json:"month_fraction"`
	Effort        decimal.Decimal `json:"effort"`
	BaseExpense   decimal.Decimal `json:"base_expense"`
	FringeAmount  decimal.Decimal `json:"fringe_amount"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
}

// AnnualExpenseRow is one employee's cost summed over a calendar year.
type AnnualExpenseRow struct {
	Title        string          `json:"title"`
	Type         string          `json:"type"`
	Institution  string          `json:"institution"`
	Year         int             `json:"year"`
	BaseExpense  decimal.Decimal `json:"base_expense"`
	FringeAmount decimal.Decimal `json:"fringe_amount"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// CategoryExpenseRow aggregates personnel cost by staff type and institution.
type CategoryExpenseRow struct {
	Type         string          `json:"type"`
	Institution  string          `json:"institution"`
	BaseExpense  decimal.Decimal `json:"base_expense"`
	FringeAmount decimal.Decimal `json:"fringe_amount"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// HeadcountRow counts staff of one type active in a month.
type HeadcountRow struct {
	Year      int             `json:"year"`
	Month     time.Month      `json:"month"`
	Type      string          `json:"type"`
	FTECount  decimal.Decimal `json:"fte_count"`
	Headcount int             `json:"headcount"`
}

// PersonnelTotals are window-wide personnel sums.
type PersonnelTotals struct {
	BaseExpense  decimal.Decimal `json:"base_expense"`
	FringeAmount decimal.Decimal `json:"fringe_amount"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// PersonnelResult bundles every personnel view for one window.
type PersonnelResult struct {
	Monthly    []MonthlyExpenseRow  `json:"monthly"`
	Annual     []AnnualExpenseRow   `json:"annual"`
	ByCategory []CategoryExpenseRow `json:"by_category"`
	Headcount  []HeadcountRow       `json:"headcount"`
	Totals     PersonnelTotals      `json:"totals"`
	Warnings   Warnings             `json:"warnings,omitempty"`
}

// EquipmentAnnualRow is one unit's cost for one calendar year.
type EquipmentAnnualRow struct {
	Title              string          `json:"title"`
	Year               int             `json:"year"`
	PurchaseCost       decimal.Decimal `json:"purchase_cost"`
	QuantityPurchased  int             `json:"quantity_purchased"`
	IsLeased           bool            `json:"is_leased"`
	DaysOwned          int             `json:"days_owned"`
	DaysInService      int             `json:"days_in_service"`
	// OwnedFrom and OwnedTo bound the owned days of this year inside the window.
	OwnedFrom          time.Time       `json:"owned_from"`
	OwnedTo            time.Time       `json:"owned_to"`
	AnnualDepreciation decimal.Decimal `json:"annual_depreciation"`
	LeaseExpense       decimal.Decimal `json:"lease_expense"`
	ServiceCost        decimal.Decimal `json:"service_cost"`
	AccreditationCost  decimal.Decimal `json:"accreditation_cost"`
	InsuranceCost      decimal.Decimal `json:"insurance_cost"`
	TravelEvents       int             `json:"travel_events"`
	TravelExpense      decimal.Decimal `json:"travel_expense"`
	TotalAnnualExpense decimal.Decimal `json:"total_annual_expense"`
}

// EquipmentMonthlyRow is an annual equipment row spread over one month.
type EquipmentMonthlyRow struct {
	Title              string          `json:"title"`
	Year               int             `json:"year"`
	Month              time.Month      `json:"month"`
	AnnualDepreciation decimal.Decimal `json:"annual_depreciation"`
	LeaseExpense       decimal.Decimal `json:"lease_expense"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
}

// EquipmentTotalRow aggregates one unit across all years of the window.
type EquipmentTotalRow struct {
	Title              string          `json:"title"`
	PurchaseCost       decimal.Decimal `json:"purchase_cost"`
	QuantityPurchased  int             `json:"quantity_purchased"`
	AnnualDepreciation decimal.Decimal `json:"annual_depreciation"`
	LeaseExpense       decimal.Decimal `json:"lease_expense"`
	ServiceCost        decimal.Decimal `json:"service_cost"`
	AccreditationCost  decimal.Decimal `json:"accreditation_cost"`
	InsuranceCost      decimal.Decimal `json:"insurance_cost"`
	TravelExpense      decimal.Decimal `json:"travel_expense"`
	TotalAnnualExpense decimal.Decimal `json:"total_annual_expense"`
}

// EquipmentTotals are window-wide equipment sums.
type EquipmentTotals struct {
	TotalPurchaseCost      decimal.Decimal `json:"total_purchase_cost"`
	TotalDepreciation      decimal.Decimal `json:"total_depreciation"`
	TotalLeaseExpense      decimal.Decimal `json:"total_lease_expense"`
	TotalServiceCost       decimal.Decimal `json:"total_service_cost"`
	TotalAccreditationCost decimal.Decimal `json:"total_accreditation_cost"`
	TotalInsuranceCost     decimal.Decimal `json:"total_insurance_cost"`
	TotalTravelExpense     decimal.Decimal `json:"total_travel_expense"`
	TotalAnnualExpense     decimal.Decimal `json:"total_annual_expense"`
}

// EquipmentResult bundles every equipment view for one window.
type EquipmentResult struct {
	Annual      []EquipmentAnnualRow  `json:"annual"`
	Monthly     []EquipmentMonthlyRow `json:"monthly"`
	ByEquipment []EquipmentTotalRow   `json:"by_equipment"`
	Totals      EquipmentTotals       `json:"totals"`
	Warnings    Warnings              `json:"warnings,omitempty"`
}

// Ledger categories of other items.
const (
	CategoryExpense = "Expense"
	CategoryRevenue = "Revenue"
)

// OtherItemRow is a ledger entry placed in the window.
type OtherItemRow struct {
	Title       string          `json:"title"`
	Vendor      string          `json:"vendor"`
	AppliedDate time.Time       `json:"applied_date"`
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// OtherCategoryRow sums other items by title and category.
type OtherCategoryRow struct {
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// OtherTotals are window-wide other item sums.
type OtherTotals struct {
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	RevenueTotal decimal.Decimal `json:"revenue_total"`
	NetTotal     decimal.Decimal `json:"net_total"`
}

// OtherItemsResult bundles every other-items view for one window.
type OtherItemsResult struct {
	Items      []OtherItemRow     `json:"items"`
	ByCategory []OtherCategoryRow `json:"by_category"`
	Totals     OtherTotals        `json:"totals"`
	Warnings   Warnings           `json:"warnings,omitempty"`
}

// MaxVolumeRow is the demographically reachable volume of one exam under one contract.
type MaxVolumeRow struct {
	RevenueSource string          `json:"revenue_source"`
	Exam          string          `json:"exam"`
	AgeFactor     decimal.Decimal `json:"age_factor"`
	GenderFactor  decimal.Decimal `json:"gender_factor"`
	MaxVolume     decimal.Decimal `json:"max_volume"`
}

// ExamCapacityRow is the staff-constrained daily throughput of one exam on one day.
type ExamCapacityRow struct {
	Date               time.Time       `json:"date"`
	RevenueSource      string          `json:"revenue_source"`
	Exam               string          `json:"exam"`
	MaxVolume          decimal.Decimal `json:"max_volume"`
	Proportion         decimal.Decimal `json:"proportion"`
	DurationHours      decimal.Decimal `json:"duration_hours"`
	StaffCapacity      decimal.Decimal `json:"staff_capacity"`
	LimitingStaff      string          `json:"limiting_staff"`
	TargetExamsPerDay  decimal.Decimal `json:"target_exams_per_day"`
	StaffHoursRequired decimal.Decimal `json:"staff_hours_required"`
	LimitedByEquipment bool            `json:"limited_by_equipment"`
	MovingDay          bool            `json:"moving_day"`
}

// ExamVolumeRow is the annual volume and money of one exam under one contract.
type ExamVolumeRow struct {
	Year                int             `json:"year"`
	RevenueSource       string          `json:"revenue_source"`
	Exam                string          `json:"exam"`
	EffectivePctReached decimal.Decimal `json:"effective_pct_reached"`
	TargetExamsPerDay   decimal.Decimal `json:"target_exams_per_day"`
	AnnualVolume        decimal.Decimal `json:"annual_volume"`
	PricePerExam        decimal.Decimal `json:"price_per_exam"`
	CostPerExam         decimal.Decimal `json:"cost_per_exam"`
	CMSTechRevenue      decimal.Decimal `json:"cms_tech_revenue"`
	CMSProRevenue       decimal.Decimal `json:"cms_pro_revenue"`
	NonCMSTechRevenue   decimal.Decimal `json:"non_cms_tech_revenue"`
	NonCMSProRevenue    decimal.Decimal `json:"non_cms_pro_revenue"`
	PatientFeeRevenue   decimal.Decimal `json:"patient_fee_revenue"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	SupplyExpense       decimal.Decimal `json:"supply_expense"`
	OrderExpense        decimal.Decimal `json:"order_expense"`
	InterpExpense       decimal.Decimal `json:"interp_expense"`
	PartnerShare        decimal.Decimal `json:"partner_share"`
	TotalDirectExpenses decimal.Decimal `json:"total_direct_expenses"`
	NetRevenue          decimal.Decimal `json:"net_revenue"`
	LimitingStaff       string          `json:"limiting_staff,omitempty"`
	LimitedByEquipment  bool            `json:"limited_by_equipment"`
}

// AnnualSummaryRow is one year of the integrated proforma.
type AnnualSummaryRow struct {
	Year                  int             `json:"year"`
	ExamRevenue           decimal.Decimal `json:"exam_revenue"`
	OtherRevenue          decimal.Decimal `json:"other_revenue"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	PersonnelExpenses     decimal.Decimal `json:"personnel_expenses"`
	EquipmentExpenses     decimal.Decimal `json:"equipment_expenses"`
	EquipmentLease        decimal.Decimal `json:"equipment_lease"`
	EquipmentDepreciation decimal.Decimal `json:"equipment_depreciation"`
	ExamDirectExpenses    decimal.Decimal `json:"exam_direct_expenses"`
	OtherExpenses         decimal.Decimal `json:"other_expenses"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	NetIncome             decimal.Decimal `json:"net_income"`
	CumulativeNetIncome   decimal.Decimal `json:"cumulative_net_income"`
}

// MonthlyCashFlowRow is one month of the integrated proforma.
type MonthlyCashFlowRow struct {
	Year                  int             `json:"year"`
	Month                 time.Month      `json:"month"`
	Date                  time.Time       `json:"date"`
	ExamRevenue           decimal.Decimal `json:"exam_revenue"`
	OtherRevenue          decimal.Decimal `json:"other_revenue"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	PersonnelExpenses     decimal.Decimal `json:"personnel_expenses"`
	EquipmentExpenses     decimal.Decimal `json:"equipment_expenses"`
	EquipmentDepreciation decimal.Decimal `json:"equipment_depreciation"`
	ExamDirectExpenses    decimal.Decimal `json:"exam_direct_expenses"`
	OtherExpenses         decimal.Decimal `json:"other_expenses"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	NetIncome             decimal.Decimal `json:"net_income"`
	CumulativeNetIncome   decimal.Decimal `json:"cumulative_net_income"`
	EquipmentPurchases    decimal.Decimal `json:"equipment_purchases"`
	CashFlow              decimal.Decimal `json:"cash_flow"`
	CashOnHand            decimal.Decimal `json:"cash_on_hand"`
}

// FinancialMetrics are the headline figures of a proforma.
type FinancialMetrics struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	TotalNetIncome      decimal.Decimal `json:"total_net_income"`
	AverageRevenue      decimal.Decimal `json:"average_annual_revenue"`
	AverageExpenses     decimal.Decimal `json:"average_annual_expenses"`
	AverageNetIncome    decimal.Decimal `json:"average_annual_net_income"`
	RevenueExpenseRatio decimal.Decimal `json:"revenue_expense_ratio"`
	ROI                 decimal.Decimal `json:"roi"`
	BreakevenYear       *int            `json:"breakeven_year,omitempty"`
	MinimumCashOnHand   decimal.Decimal `json:"minimum_cash_on_hand"`
	EndingCashOnHand    decimal.Decimal `json:"ending_cash_on_hand"`
}

// RunMetadata identifies one proforma run.
type RunMetadata struct {
	RunID       string    `json:"run_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DurationMs  int64     `json:"duration_ms"`
}

// ProformaResult is the full output of the integrator.
type ProformaResult struct {
	Metadata        RunMetadata          `json:"metadata"`
	AnnualSummary   []AnnualSummaryRow   `json:"annual_summary"`
	MonthlyCashFlow []MonthlyCashFlowRow `json:"monthly_cash_flow"`
	Metrics         FinancialMetrics     `json:"financial_metrics"`
	Personnel       PersonnelResult      `json:"personnel"`
	Equipment       EquipmentResult      `json:"equipment"`
	Exams           []ExamVolumeRow      `json:"exams"`
	Other           OtherItemsResult     `json:"other"`
	Warnings        Warnings             `json:"warnings,omitempty"`
}
