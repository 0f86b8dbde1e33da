package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/pkg/dateutil"
	dec "github.com/carescan/proforma/pkg/decimal"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkDaysPerYear is used when ExamVolumeParams leaves WorkDaysPerYear unset.
const DefaultWorkDaysPerYear = 250

// ExamVolumeParams select the years, contracts and assumptions of an exam revenue run.
type ExamVolumeParams struct {
	StartYear int
	EndYear   int
	// SelectedSources limits the run to these contracts; empty means all, in table order.
	SelectedSources []string
	WorkDaysPerYear int
	// GrowthSchedule defaults to DefaultGrowthSchedule when nil.
	GrowthSchedule []decimal.Decimal
	// ProjectionStart anchors the moving-day cadence; zero means January 1 of StartYear.
	ProjectionStart time.Time
}

func (p ExamVolumeParams) withDefaults() ExamVolumeParams {
	if p.WorkDaysPerYear <= 0 {
		p.WorkDaysPerYear = DefaultWorkDaysPerYear
	}
	if p.GrowthSchedule == nil {
		p.GrowthSchedule = DefaultGrowthSchedule()
	}
	if p.ProjectionStart.IsZero() {
		p.ProjectionStart = dateutil.BeginningOfYear(p.StartYear)
	}
	return p
}

// MaxReachableVolume computes the demographic ceiling of every exam the
// contract offers, using pctReached in place of the contract's baseline reach.
func MaxReachableVolume(contract domain.RevenueSourceRecord, exams []domain.ExamRecord, pctReached decimal.Decimal) []domain.MaxVolumeRow {
	return maxReachableVolume(contract, newExamCatalog(exams, nil).offered(contract), pctReached)
}

func maxReachableVolume(contract domain.RevenueSourceRecord, offered []domain.ExamRecord, pctReached decimal.Decimal) []domain.MaxVolumeRow {
	rows := make([]domain.MaxVolumeRow, 0, len(offered))
	population := decimal.NewFromInt(contract.TargetPopulation).Mul(pctReached)
	contractRange := int64(contract.PopulationMaxAge - contract.PopulationMinAge)
	for _, x := range offered {
		ageFactor := decimal.Zero
		if contractRange > 0 {
			ageFactor = dec.NonNegative(dec.Ratio(int64(x.MaxAge-x.MinAge), contractRange))
		}
		genderFactor := GenderFactor(x, contract.PctFemale)
		rows = append(rows, domain.MaxVolumeRow{
			RevenueSource: contract.Title,
			Exam:          x.Title,
			AgeFactor:     ageFactor,
			GenderFactor:  genderFactor,
			MaxVolume:     ageFactor.Mul(population).Mul(genderFactor).Mul(x.ApplicablePct),
		})
	}
	return rows
}

// GenderFactor is the share of the contract population of the sexes the exam applies to.
func GenderFactor(x domain.ExamRecord, pctFemale decimal.Decimal) decimal.Decimal {
	male, female := x.AppliesTo(domain.Male), x.AppliesTo(domain.Female)
	switch {
	case male && female:
		return decimal.NewFromInt(1)
	case female:
		return pctFemale
	case male:
		return decimal.NewFromInt(1).Sub(pctFemale)
	default:
		return decimal.Zero
	}
}

// annualInput carries what one (year, contract) computation needs.
type annualInput struct {
	catalog   examCatalog
	contract  domain.RevenueSourceRecord
	year      int
	params    ExamVolumeParams
	personnel []domain.PersonnelRecord
	equipment []domain.EquipmentRecord
}

func (e *Engine) annualExamVolume(in annualInput) []domain.ExamVolumeRow {
	pct := EffectivePctReached(in.contract.PctPopulationReached, in.params.GrowthSchedule, in.year-in.params.StartYear)
	capacity := e.examsPerDay(in.catalog, CapacityInput{
		Date:                 e.representativeDate(in.year),
		ProjectionStart:      in.params.ProjectionStart,
		Contract:             in.contract,
		PctPopulationReached: &pct,
		Personnel:            in.personnel,
		Equipment:            in.equipment,
	})

	workDays := decimal.NewFromInt(int64(in.params.WorkDaysPerYear))
	rows := make([]domain.ExamVolumeRow, 0, len(capacity))
	for _, c := range capacity {
		x := in.catalog.exams[c.Exam]
		volume := dec.NonNegative(workDays.Mul(in.contract.PctFullModel).Mul(c.TargetExamsPerDay))
		price := PricePerExam(x, in.contract)
		cost := CostPerExam(x)

		row := domain.ExamVolumeRow{
			Year:                in.year,
			RevenueSource:       in.contract.Title,
			Exam:                c.Exam,
			EffectivePctReached: pct,
			TargetExamsPerDay:   c.TargetExamsPerDay,
			AnnualVolume:        volume,
			PricePerExam:        price.Total(),
			CostPerExam:         cost.Total(),
			CMSTechRevenue:      volume.Mul(price.CMSTech),
			CMSProRevenue:       volume.Mul(price.CMSPro),
			NonCMSTechRevenue:   volume.Mul(price.NonCMSTech),
			NonCMSProRevenue:    volume.Mul(price.NonCMSPro),
			PatientFeeRevenue:   volume.Mul(price.PatientFee),
			TotalRevenue:        volume.Mul(price.Total()),
			SupplyExpense:       volume.Mul(cost.Supply),
			OrderExpense:        volume.Mul(cost.Order),
			InterpExpense:       volume.Mul(cost.Interp),
			LimitingStaff:       c.LimitingStaff,
			LimitedByEquipment:  c.LimitedByEquipment,
		}
		row.PartnerShare = row.TotalRevenue.Mul(in.contract.RevenueToPartner)
		row.TotalDirectExpenses = volume.Mul(cost.Total()).Add(row.PartnerShare)
		row.NetRevenue = row.TotalRevenue.Sub(row.TotalDirectExpenses)
		rows = append(rows, row)
	}
	return rows
}

// AnnualExamVolume projects one contract's exam volume, revenue and direct
// expense for a single year.
func (e *Engine) AnnualExamVolume(year int, contract domain.RevenueSourceRecord, tables domain.Tables, params ExamVolumeParams) ([]domain.ExamVolumeRow, domain.Warnings) {
	params = params.withDefaults()
	var warnings domain.Warnings
	catalog := newExamCatalog(tables.Exams, tables.Equipment)
	e.checkReferences(catalog, contract, &warnings)
	return e.annualExamVolume(annualInput{
		catalog:   catalog,
		contract:  contract,
		year:      year,
		params:    params,
		personnel: tables.Personnel,
		equipment: tables.Equipment,
	}), warnings
}

// selectContracts resolves the requested contract titles against the table.
func (e *Engine) selectContracts(sources []domain.RevenueSourceRecord, selected []string, ws *domain.Warnings) []domain.RevenueSourceRecord {
	if len(selected) == 0 {
		return sources
	}
	byTitle := make(map[string]domain.RevenueSourceRecord, len(sources))
	for _, s := range sources {
		if _, dup := byTitle[s.Title]; !dup {
			byTitle[s.Title] = s
		}
	}
	out := make([]domain.RevenueSourceRecord, 0, len(selected))
	for _, title := range selected {
		s, ok := byTitle[title]
		if !ok {
			e.warn(ws, domain.TableRevenueSources, title, 0, "unknown revenue source, skipped")
			continue
		}
		out = append(out, s)
	}
	return out
}

// CalculateMultiYearExamRevenue projects exam volume and money for every
// selected contract and every year in [StartYear, EndYear]. Rows are ordered
// by year, then contract, then the contract's exam order.
func (e *Engine) CalculateMultiYearExamRevenue(ctx context.Context, tables domain.Tables, params ExamVolumeParams) ([]domain.ExamVolumeRow, domain.Warnings, error) {
	const calc = "exam revenue"
	for _, check := range []error{
		requireTable(tables.Exams, domain.TableExams, calc),
		requireTable(tables.RevenueSources, domain.TableRevenueSources, calc),
		requireTable(tables.Personnel, domain.TablePersonnel, calc),
		requireTable(tables.Equipment, domain.TableEquipment, calc),
	} {
		if check != nil {
			return nil, nil, check
		}
	}
	params = params.withDefaults()

	var warnings domain.Warnings
	if params.EndYear < params.StartYear {
		return nil, warnings, nil
	}

	catalog := newExamCatalog(tables.Exams, tables.Equipment)
	contracts := e.selectContracts(tables.RevenueSources, params.SelectedSources, &warnings)
	for _, c := range contracts {
		e.checkReferences(catalog, c, &warnings)
	}

	years := params.EndYear - params.StartYear + 1
	perYear := make([][]domain.ExamVolumeRow, years)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.Options.YearParallelism))
	for i := 0; i < years; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			year := params.StartYear + i
			var rows []domain.ExamVolumeRow
			for _, c := range contracts {
				rows = append(rows, e.annualExamVolume(annualInput{
					catalog:   catalog,
					contract:  c,
					year:      year,
					params:    params,
					personnel: tables.Personnel,
					equipment: tables.Equipment,
				})...)
			}
			perYear[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, fmt.Errorf("exam revenue projection cancelled: %w", err)
	}

	var rows []domain.ExamVolumeRow
	for _, yr := range perYear {
		rows = append(rows, yr...)
	}
	e.logger().Debugf("exam revenue: %d years, %d contracts, %d rows", years, len(contracts), len(rows))
	return rows, warnings, nil
}
