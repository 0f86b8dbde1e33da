package calculation

import "github.com/shopspring/decimal"

// spreadEvenly splits total into n equal parts. The last part absorbs the
// rounding remainder so the parts always sum to total exactly.
func spreadEvenly(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	parts := make([]decimal.Decimal, n)
	share := total.Div(decimal.NewFromInt(int64(n)))
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = share
		allocated = allocated.Add(share)
	}
	parts[n-1] = total.Sub(allocated)
	return parts
}
