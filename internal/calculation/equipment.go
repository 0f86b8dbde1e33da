package calculation

import (
	"fmt"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// TravelParams describe how often mobile units relocate and how far.
type TravelParams struct {
	DaysBetweenTravel int             `json:"days_between_travel"`
	MilesPerTravel    decimal.Decimal `json:"miles_per_travel"`
}

// DefaultTravelParams returns a relocation every 5 days of 20 miles.
func DefaultTravelParams() TravelParams {
	return TravelParams{DaysBetweenTravel: 5, MilesPerTravel: decimal.NewFromInt(20)}
}

// TravelEvents counts relocations within a service span of days. A span that
// divides evenly ends on a travel day, which belongs to the next span.
func TravelEvents(days, daysBetweenTravel int) int {
	if days <= 0 || daysBetweenTravel <= 0 {
		return 0
	}
	n := days / daysBetweenTravel
	if n > 0 && days%daysBetweenTravel == 0 {
		n--
	}
	return n
}

type depreciationYear struct {
	amount decimal.Decimal
	days   int
}

// depreciationSchedule spreads the depreciable cost over the unit's whole
// service life, capped so the total never exceeds the cost.
func depreciationSchedule(r domain.EquipmentRecord) map[int]depreciationYear {
	cost := r.DepreciableCost()
	if cost.IsZero() || r.Lifespan <= 0 {
		return nil
	}
	annual := cost.Div(decimal.NewFromInt(int64(r.Lifespan)))
	first, last := r.StartDate(), r.LastServiceDay()
	remaining := cost
	schedule := make(map[int]depreciationYear, r.Lifespan+1)
	for y := first.Year(); y <= last.Year(); y++ {
		days := dateutil.OverlapDays(dateutil.BeginningOfYear(y), dateutil.EndOfYear(y), first, last)
		amount := annual
		if days != dateutil.DaysInYear(y) {
			amount = annual.Mul(decimal.NewFromInt(int64(days))).Div(decimal.NewFromInt(int64(dateutil.DaysInYear(y))))
		}
		if amount.GreaterThan(remaining) {
			amount = remaining
		}
		remaining = remaining.Sub(amount)
		schedule[y] = depreciationYear{amount: amount, days: days}
	}
	return schedule
}

// equipmentProblem describes why a unit cannot be costed, or returns "".
func equipmentProblem(r domain.EquipmentRecord) string {
	switch {
	case r.PurchaseDate.IsZero():
		return "missing purchase date, skipped"
	case r.Lifespan <= 0:
		return fmt.Sprintf("lifespan %d must be positive, skipped", r.Lifespan)
	case r.ConstructionTime < 0:
		return fmt.Sprintf("negative construction time %d, skipped", r.ConstructionTime)
	}
	return ""
}

func validEquipment(e *Engine, ws *domain.Warnings, r domain.EquipmentRecord) bool {
	if msg := equipmentProblem(r); msg != "" {
		e.warn(ws, domain.TableEquipment, r.Title, 0, "%s", msg)
		return false
	}
	return true
}

// EquipmentAnnualExpenses prorates depreciation, lease, recurring and travel
// costs per unit and calendar year within [start, end].
func (e *Engine) EquipmentAnnualExpenses(records []domain.EquipmentRecord, start, end time.Time, travel TravelParams) ([]domain.EquipmentAnnualRow, domain.Warnings) {
	start, end = dateutil.Civil(start), dateutil.Civil(end)
	var rows []domain.EquipmentAnnualRow
	var warnings domain.Warnings

	for _, r := range records {
		if !validEquipment(e, &warnings, r) {
			continue
		}
		purchase := dateutil.Civil(r.PurchaseDate)
		if purchase.After(end) {
			continue
		}
		inService := r.StartDate()
		lastDay := r.LastServiceDay()
		if lastDay.Before(start) {
			continue
		}
		schedule := depreciationSchedule(r)

		for y := dateutil.Max(purchase, start).Year(); y <= dateutil.Min(lastDay, end).Year(); y++ {
			yFrom := dateutil.Max(dateutil.BeginningOfYear(y), start)
			yTo := dateutil.Min(dateutil.EndOfYear(y), end)
			owned := dateutil.OverlapDays(yFrom, yTo, purchase, lastDay)
			if owned == 0 {
				continue
			}
			serviceDays := dateutil.OverlapDays(yFrom, yTo, inService, lastDay)
			diy := int64(dateutil.DaysInYear(y))
			ownedFraction := decimal.NewFromInt(int64(owned)).Div(decimal.NewFromInt(diy))
			if int64(owned) == diy {
				ownedFraction = decimal.NewFromInt(1)
			}

			row := domain.EquipmentAnnualRow{
				Title:             r.Title,
				Year:              y,
				PurchaseCost:      r.PurchaseCost,
				QuantityPurchased: r.Quantity,
				IsLeased:          r.IsLeased,
				DaysOwned:         owned,
				DaysInService:     serviceDays,
				OwnedFrom:         dateutil.Max(yFrom, purchase),
				OwnedTo:           dateutil.Min(yTo, lastDay),
				ServiceCost:       r.AnnualServiceCost.Mul(ownedFraction),
				AccreditationCost: r.AnnualAccreditationCost.Mul(ownedFraction),
				InsuranceCost:     r.AnnualInsuranceCost.Mul(ownedFraction),
			}

			if r.IsLeased {
				row.LeaseExpense = r.AnnualLeaseAmount.Mul(ownedFraction)
			} else if sched, ok := schedule[y]; ok && sched.days > 0 && serviceDays > 0 {
				row.AnnualDepreciation = sched.amount
				if serviceDays != sched.days {
					row.AnnualDepreciation = sched.amount.Mul(decimal.NewFromInt(int64(serviceDays))).Div(decimal.NewFromInt(int64(sched.days)))
				}
			}

			row.TravelEvents = TravelEvents(serviceDays, travel.DaysBetweenTravel)
			row.TravelExpense = decimal.NewFromInt(int64(row.TravelEvents)).Mul(travel.MilesPerTravel).Mul(r.MilageCost)

			row.TotalAnnualExpense = row.ServiceCost.
				Add(row.AccreditationCost).
				Add(row.InsuranceCost).
				Add(row.TravelExpense).
				Add(row.AnnualDepreciation).
				Add(row.LeaseExpense)
			rows = append(rows, row)
		}
	}
	return rows, warnings
}

// ExpensesByEquipment aggregates annual rows per unit.
func ExpensesByEquipment(annual []domain.EquipmentAnnualRow) []domain.EquipmentTotalRow {
	index := map[string]int{}
	var rows []domain.EquipmentTotalRow
	for _, a := range annual {
		i, ok := index[a.Title]
		if !ok {
			i = len(rows)
			index[a.Title] = i
			rows = append(rows, domain.EquipmentTotalRow{
				Title:             a.Title,
				PurchaseCost:      a.PurchaseCost,
				QuantityPurchased: a.QuantityPurchased,
			})
		}
		t := &rows[i]
		t.AnnualDepreciation = t.AnnualDepreciation.Add(a.AnnualDepreciation)
		t.LeaseExpense = t.LeaseExpense.Add(a.LeaseExpense)
		t.ServiceCost = t.ServiceCost.Add(a.ServiceCost)
		t.AccreditationCost = t.AccreditationCost.Add(a.AccreditationCost)
		t.InsuranceCost = t.InsuranceCost.Add(a.InsuranceCost)
		t.TravelExpense = t.TravelExpense.Add(a.TravelExpense)
		t.TotalAnnualExpense = t.TotalAnnualExpense.Add(a.TotalAnnualExpense)
	}
	return rows
}

// EquipmentGrandTotal sums purchase outlays for valid units bought by end plus every annual component.
func EquipmentGrandTotal(records []domain.EquipmentRecord, annual []domain.EquipmentAnnualRow, end time.Time) domain.EquipmentTotals {
	var t domain.EquipmentTotals
	for _, r := range records {
		if equipmentProblem(r) != "" || r.PurchaseDate.After(end) {
			continue
		}
		qty := r.Quantity
		if qty <= 0 {
			qty = 1
		}
		t.TotalPurchaseCost = t.TotalPurchaseCost.Add(r.DepreciableCost().Mul(decimal.NewFromInt(int64(qty))))
	}
	for _, a := range annual {
		t.TotalDepreciation = t.TotalDepreciation.Add(a.AnnualDepreciation)
		t.TotalLeaseExpense = t.TotalLeaseExpense.Add(a.LeaseExpense)
		t.TotalServiceCost = t.TotalServiceCost.Add(a.ServiceCost)
		t.TotalAccreditationCost = t.TotalAccreditationCost.Add(a.AccreditationCost)
		t.TotalInsuranceCost = t.TotalInsuranceCost.Add(a.InsuranceCost)
		t.TotalTravelExpense = t.TotalTravelExpense.Add(a.TravelExpense)
		t.TotalAnnualExpense = t.TotalAnnualExpense.Add(a.TotalAnnualExpense)
	}
	return t
}

// MonthlyEquipmentExpenses spreads each annual row evenly over the months of
// its owned span.
func MonthlyEquipmentExpenses(annual []domain.EquipmentAnnualRow) []domain.EquipmentMonthlyRow {
	var rows []domain.EquipmentMonthlyRow
	for _, a := range annual {
		months := dateutil.MonthsBetween(a.OwnedFrom, a.OwnedTo)
		dep := spreadEvenly(a.AnnualDepreciation, len(months))
		lease := spreadEvenly(a.LeaseExpense, len(months))
		total := spreadEvenly(a.TotalAnnualExpense, len(months))
		for i, m := range months {
			rows = append(rows, domain.EquipmentMonthlyRow{
				Title:              a.Title,
				Year:               a.Year,
				Month:              m.Month(),
				AnnualDepreciation: dep[i],
				LeaseExpense:       lease[i],
				TotalExpense:       total[i],
			})
		}
	}
	return rows
}

// CalculateEquipmentExpenses produces every equipment view for [start, end].
func (e *Engine) CalculateEquipmentExpenses(records []domain.EquipmentRecord, start, end time.Time, travel TravelParams) (domain.EquipmentResult, error) {
	if err := requireTable(records, domain.TableEquipment, "equipment expenses"); err != nil {
		return domain.EquipmentResult{}, err
	}
	annual, warnings := e.EquipmentAnnualExpenses(records, start, end, travel)
	e.logger().Debugf("equipment: %d units, %d annual rows", len(records), len(annual))
	return domain.EquipmentResult{
		Annual:      annual,
		Monthly:     MonthlyEquipmentExpenses(annual),
		ByEquipment: ExpensesByEquipment(annual),
		Totals:      EquipmentGrandTotal(records, annual, dateutil.Civil(end)),
		Warnings:    warnings,
	}, nil
}
