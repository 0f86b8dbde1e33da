package calculation

import (
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DefaultOrderPaymentShare is the fraction of a purchase paid when the unit is ordered.
var DefaultOrderPaymentShare = decimal.RequireFromString("0.8")

// CashParams configure the cash-basis view of the monthly cash flow.
type CashParams struct {
	InitialCash decimal.Decimal `json:"initial_cash"`
	// OrderPaymentShare is paid in the purchase month and the rest on delivery.
	// Nil means DefaultOrderPaymentShare.
	OrderPaymentShare *decimal.Decimal `json:"order_payment_share,omitempty"`
}

func (p CashParams) orderShare() decimal.Decimal {
	if p.OrderPaymentShare == nil {
		return DefaultOrderPaymentShare
	}
	return *p.OrderPaymentShare
}

// PurchasePayment is one cash outlay for equipment.
type PurchasePayment struct {
	Title  string
	Date   time.Time
	Amount decimal.Decimal
}

// EquipmentPurchasePayments splits each purchased unit's cost into a payment
// at order and the remainder at delivery (purchase date plus construction time).
// Leased units and payments outside [start, end] are left out.
func EquipmentPurchasePayments(equipment []domain.EquipmentRecord, params CashParams, start, end time.Time) []PurchasePayment {
	share := params.orderShare()
	var payments []PurchasePayment
	add := func(title string, date time.Time, amount decimal.Decimal) {
		if amount.IsZero() || date.Before(start) || date.After(end) {
			return
		}
		payments = append(payments, PurchasePayment{Title: title, Date: date, Amount: amount})
	}
	for _, r := range equipment {
		if r.IsLeased || r.PurchaseDate.IsZero() {
			continue
		}
		qty := r.Quantity
		if qty <= 0 {
			qty = 1
		}
		total := r.PurchaseCost.Mul(decimal.NewFromInt(int64(qty)))
		atOrder := total.Mul(share)
		add(r.Title, dateutil.Civil(r.PurchaseDate), atOrder)
		add(r.Title, dateutil.Civil(r.StartDate()), total.Sub(atOrder))
	}
	return payments
}

// ApplyCashPosition fills the cash columns of rows in place. Depreciation is
// added back as a non-cash expense and equipment payments are taken out in the
// month they are made.
func ApplyCashPosition(rows []domain.MonthlyCashFlowRow, equipment []domain.EquipmentRecord, params CashParams, start, end time.Time) {
	index := make(map[monthKey]int, len(rows))
	for i, r := range rows {
		index[monthKey{r.Year, r.Month}] = i
	}
	for _, p := range EquipmentPurchasePayments(equipment, params, start, end) {
		if i, ok := index[monthKey{p.Date.Year(), p.Date.Month()}]; ok {
			rows[i].EquipmentPurchases = rows[i].EquipmentPurchases.Add(p.Amount)
		}
	}
	cash := params.InitialCash
	for i := range rows {
		r := &rows[i]
		r.CashFlow = r.NetIncome.Add(r.EquipmentDepreciation).Sub(r.EquipmentPurchases)
		cash = cash.Add(r.CashFlow)
		r.CashOnHand = cash
	}
}
