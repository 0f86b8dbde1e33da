package calculation

import (
	"github.com/carescan/proforma/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceBreakdown is the revenue of one exam under one contract.
type PriceBreakdown struct {
	Direct     decimal.Decimal
	CMSTech    decimal.Decimal
	CMSPro     decimal.Decimal
	NonCMSTech decimal.Decimal
	NonCMSPro  decimal.Decimal
	PatientFee decimal.Decimal
}

// Total is the full per-exam price.
func (p PriceBreakdown) Total() decimal.Decimal {
	return p.Direct.Add(p.CMSTech).Add(p.CMSPro).Add(p.NonCMSTech).Add(p.NonCMSPro).Add(p.PatientFee)
}

// PricePerExam resolves the per-exam price: an explicit Price, else Rate,
// else the CMS rates blended by the contract's payer mix plus its flat patient fee.
func PricePerExam(exam domain.ExamRecord, contract domain.RevenueSourceRecord) PriceBreakdown {
	switch {
	case exam.Price != nil:
		return PriceBreakdown{Direct: *exam.Price}
	case exam.Rate != nil:
		return PriceBreakdown{Direct: *exam.Rate}
	}
	nonCMS := decimal.NewFromInt(1).Sub(contract.PctCMS).Mul(contract.NonCMSMultiplier)
	return PriceBreakdown{
		CMSTech:    exam.CMSTechRate.Mul(contract.PctCMS),
		CMSPro:     exam.CMSProRate.Mul(contract.PctCMS),
		NonCMSTech: exam.CMSTechRate.Mul(nonCMS),
		NonCMSPro:  exam.CMSProRate.Mul(nonCMS),
		PatientFee: contract.FlatPatientFee,
	}
}

// CostBreakdown is the direct cost of performing one exam.
type CostBreakdown struct {
	Direct decimal.Decimal
	Supply decimal.Decimal
	Order  decimal.Decimal
	Interp decimal.Decimal
}

// Total is the full per-exam direct cost.
func (c CostBreakdown) Total() decimal.Decimal {
	return c.Direct.Add(c.Supply).Add(c.Order).Add(c.Interp)
}

// CostPerExam resolves the per-exam cost: DirectCost, else VariableCost, else supply+order+interpretation.
func CostPerExam(exam domain.ExamRecord) CostBreakdown {
	switch {
	case exam.DirectCost != nil:
		return CostBreakdown{Direct: *exam.DirectCost}
	case exam.VariableCost != nil:
		return CostBreakdown{Direct: *exam.VariableCost}
	}
	return CostBreakdown{Supply: exam.SupplyCost, Order: exam.OrderCost, Interp: exam.InterpCost}
}
