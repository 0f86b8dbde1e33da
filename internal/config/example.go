package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CreateExampleWorkbook returns a small but complete workbook: one mobile
// MRI and one mobile CT serving two contracts over five years.
func (ip *InputParser) CreateExampleWorkbook() *Workbook {
	cadence := 5
	return &Workbook{
		Assumptions: Assumptions{
			StartDate:         "2025-01-01",
			EndDate:           "2029-12-31",
			WorkDaysPerYear:   250,
			DaysBetweenTravel: 5,
			MilesPerTravel:    "20",
			GrowthSchedule:    StringList{"0", "0", "5%", "5%", "4%"},
			MovingDayCadence:  &cadence,
			InitialCash:       "$2,000,000",
			OrderPaymentShare: "80%",
		},
		Personnel: []PersonnelRow{
			{Title: "Lead MRI Technologist", Type: "Technologist", Institution: "Mobile Imaging", Salary: "85,000", Fringe: "28%", Effort: "1", StartDate: "01/01/2025"},
			{Title: "MRI Technologist", Type: "Technologist", Institution: "Mobile Imaging", Salary: "78,000", Fringe: "28%", Effort: "1", StartDate: "03/01/2025"},
			{Title: "Radiologist", Type: "Radiologist", Institution: "University Radiology", Salary: "450,000", Fringe: "22%", Effort: "0.5", StartDate: "01/01/2025"},
			{Title: "Driver", Type: "Driver", Institution: "Mobile Imaging", Salary: "52,000", Fringe: "30%", Effort: "1", StartDate: "01/01/2025", HoursPerDay: "10"},
			{Title: "Program Coordinator", Type: "Administrator", Institution: "Mobile Imaging", Salary: "65,000", Fringe: "28%", Effort: "0.5", StartDate: "01/01/2025", EndDate: "12/31/2027"},
		},
		Equipment: []EquipmentRow{
			{Title: "Mobile MRI", PurchaseDate: "01/15/2025", ConstructionTime: "90", Lifespan: "7", PurchaseCost: "$2,400,000", Quantity: "1",
				AnnualServiceCost: "180,000", AnnualAccreditationCost: "8,000", AnnualInsuranceCost: "25,000", MilageCost: "3.50",
				SetupTime: "45", TakedownTime: "45", NecessaryStaff: StringList{"Technologist", "Driver"}, ExamsOffered: StringList{"Brain MRI", "Breast MRI"}},
			{Title: "Mobile CT", PurchaseDate: "07/01/2026", Lifespan: "5", IsLeased: "yes", AnnualLeaseAmount: "240,000",
				AnnualServiceCost: "60,000", MilageCost: "3.00", SetupTime: "30", TakedownTime: "30",
				NecessaryStaff: StringList{"Technologist", "Driver"}, ExamsOffered: StringList{"Low-Dose Chest CT"}},
		},
		Exams: []ExamRow{
			{Title: "Brain MRI", Equipment: StringList{"Mobile MRI"}, Staff: StringList{"Technologist", "Radiologist"}, Duration: "45",
				SupplyCost: "35", OrderCost: "10", InterpCost: "60", CMSTechRate: "280", CMSProRate: "90",
				MinAge: "18", MaxAge: "85", ApplicableSex: StringList{"Male", "Female"}, ApplicablePct: "2%"},
			{Title: "Breast MRI", Equipment: StringList{"Mobile MRI"}, Staff: StringList{"Technologist", "Radiologist"}, Duration: "40",
				SupplyCost: "40", OrderCost: "10", InterpCost: "70", CMSTechRate: "320", CMSProRate: "110",
				MinAge: "40", MaxAge: "74", ApplicableSex: StringList{"Female"}, ApplicablePct: "3%"},
			{Title: "Low-Dose Chest CT", Equipment: StringList{"Mobile CT"}, Staff: StringList{"Technologist", "Radiologist"}, Duration: "15",
				VariableCost: "55", Rate: "185",
				MinAge: "50", MaxAge: "80", ApplicableSex: StringList{"Male", "Female"}, ApplicablePct: "4%"},
		},
		RevenueSources: []RevenueSourceRow{
			{Title: "Rural Health Network", OfferedExams: StringList{"Brain MRI", "Breast MRI", "Low-Dose Chest CT"},
				TargetPopulation: "120_000", PctPopulationReached: "25%", PopulationMinAge: "18", PopulationMaxAge: "85",
				PctFemale: "51%", PctFullModel: "90%", PctCMS: "45%", NonCMSMultiplier: "1.4", FlatPatientFee: "15", RevenueToPartner: "5%"},
			{Title: "County Employer Program", OfferedExams: StringList{"Breast MRI", "Low-Dose Chest CT"},
				TargetPopulation: "40_000", PctPopulationReached: "30%", PopulationMinAge: "21", PopulationMaxAge: "65",
				PctFemale: "48%", PctFullModel: "75%", PctCMS: "10%", NonCMSMultiplier: "1.6"},
		},
		OtherItems: []OtherItemRow{
			{Title: "Launch marketing", Vendor: "Brightline Media", AppliedDate: "02/01/2025", Amount: "45,000", Expense: "true"},
			{Title: "State rural access grant", Vendor: "Department of Health", AppliedDate: "06/30/2025", Amount: "250,000", Expense: "false"},
			{Title: "Site permits", AppliedDate: "01/10/2026", Amount: "12,500"},
		},
	}
}

// MarshalWorkbook renders a workbook as YAML.
func (ip *InputParser) MarshalWorkbook(wb *Workbook) ([]byte, error) {
	data, err := yaml.Marshal(wb)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workbook: %w", err)
	}
	return data, nil
}
