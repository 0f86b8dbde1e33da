package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	assert.True(t, Ratio(16, 30).Mul(stddec.NewFromInt(30)).Round(10).Equal(stddec.NewFromInt(16)))
	assert.True(t, Ratio(31, 31).Equal(stddec.NewFromInt(1)))
	assert.True(t, Ratio(5, 0).IsZero())
}

func TestSafeDivAndSum(t *testing.T) {
	assert.True(t, SafeDiv(stddec.NewFromInt(10), stddec.Zero).IsZero())
	assert.Equal(t, "2.5", SafeDiv(stddec.NewFromInt(10), stddec.NewFromInt(4)).String())
	assert.Equal(t, "6", Sum(stddec.NewFromInt(1), stddec.NewFromInt(2), stddec.NewFromInt(3)).String())
	assert.True(t, Sum().IsZero())
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"below", "-0.2", "0"},
		{"inside", "0.35", "0.35"},
		{"above", "1.07", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampUnit(stddec.RequireFromString(tt.in)).String())
		})
	}
	assert.True(t, NonNegative(stddec.NewFromInt(-3)).IsZero())
	assert.Equal(t, "3", Max(stddec.NewFromInt(3), stddec.NewFromInt(-3)).String())
	assert.Equal(t, "-3", Min(stddec.NewFromInt(3), stddec.NewFromInt(-3)).String())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "1250.5", "1250.5", false},
		{"currency", "$1,250.50", "1250.5", false},
		{"underscores", "100_000", "100000", false},
		{"percent", "12.5%", "0.125", false},
		{"empty", " ", "", true},
		{"text", "n/a", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, stddec.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"999.999", "$1,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-75000", "-$75,000.00"},
		{"-0.001", "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(stddec.RequireFromString(tt.in)))
		})
	}
	assert.Equal(t, "12.5%", FormatPercent(stddec.RequireFromString("0.125")))
}
