package calculation

import (
	dec "github.com/carescan/proforma/pkg/decimal"
	"github.com/shopspring/decimal"
)

// DefaultGrowthSchedule is the year-over-year growth of population reached:
// flat for two years, then 5%, 5% and 4%.
func DefaultGrowthSchedule() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.Zero,
		decimal.Zero,
		decimal.RequireFromString("0.05"),
		decimal.RequireFromString("0.05"),
		decimal.RequireFromString("0.04"),
	}
}

// EffectivePctReached compounds a contract's baseline reach by the growth
// schedule. yearIndex 0 is the projection start year and gets no growth; year
// i applies schedule[0] through schedule[i-1]. Years past the end of the
// schedule add no further growth. The result never exceeds 100%.
func EffectivePctReached(base decimal.Decimal, schedule []decimal.Decimal, yearIndex int) decimal.Decimal {
	pct := base
	for i := 1; i <= yearIndex && i-1 < len(schedule); i++ {
		pct = pct.Mul(decimal.NewFromInt(1).Add(schedule[i-1]))
	}
	return dec.ClampUnit(pct)
}
