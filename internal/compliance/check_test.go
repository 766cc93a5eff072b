package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/offer-analyzer/internal/types"
)

func jakartaRate() *types.UMKRate {
	return &types.UMKRate{
		Region:      "Jakarta",
		Province:    "DKI Jakarta",
		MonthlyWage: 5067823,
		Year:        2024,
		Active:      true,
	}
}

func TestCheck_CompliantOffer(t *testing.T) {
	result := Check(6000000, jakartaRate())

	assert.True(t, result.Complies)
	require.NotNil(t, result.PercentageAbove)
	assert.InDelta(t, 18.4, *result.PercentageAbove, 1e-9)
	assert.Equal(t, types.RiskLow, result.RiskLevel)
	require.NotNil(t, result.AnnualMinimum)
	assert.Equal(t, int64(5067823*12), *result.AnnualMinimum)
	assert.Contains(t, result.Message, "18.4%")
	assert.Contains(t, result.Message, "Meets UMK requirement")
}

func TestCheck_NonCompliantOffer(t *testing.T) {
	result := Check(3000000, jakartaRate())

	assert.False(t, result.Complies)
	assert.Equal(t, types.RiskHigh, result.RiskLevel)
	require.NotNil(t, result.PercentageAbove)
	assert.Negative(t, *result.PercentageAbove)
	assert.Contains(t, result.Message, "below UMK")
	// The message cites the magnitude of the shortfall with a percent sign.
	assert.Contains(t, result.Message, "40.8%")
}

func TestCheck_ComfortableMargin(t *testing.T) {
	// ~38% above minimum: compliant but not yet fully cleared.
	result := Check(7000000, jakartaRate())

	assert.True(t, result.Complies)
	assert.Equal(t, types.RiskLow, result.RiskLevel)
	assert.Contains(t, result.Message, "Above UMK requirement")
}

func TestCheck_SignificantMargin(t *testing.T) {
	result := Check(10000000, jakartaRate())

	assert.True(t, result.Complies)
	assert.Equal(t, types.RiskNone, result.RiskLevel)
	require.NotNil(t, result.PercentageAbove)
	assert.GreaterOrEqual(t, *result.PercentageAbove, 50.0)
	assert.Contains(t, result.Message, "Significantly above")
}

func TestCheck_NilRateIsIndeterminate(t *testing.T) {
	result := Check(6000000, nil)

	assert.True(t, result.Complies)
	assert.Nil(t, result.MonthlyMinimum)
	assert.Nil(t, result.AnnualMinimum)
	assert.Nil(t, result.PercentageAbove)
	assert.Empty(t, result.RiskLevel)
	assert.Contains(t, result.Message, "not available")
}

func TestCheck_ZeroMinimumGuardsDivision(t *testing.T) {
	rate := &types.UMKRate{Region: "Nowhere", MonthlyWage: 0, Year: 2024}
	result := Check(5000000, rate)

	assert.True(t, result.Complies)
	require.NotNil(t, result.PercentageAbove)
	assert.Zero(t, *result.PercentageAbove)
}

func TestCheck_ExactMinimumComplies(t *testing.T) {
	result := Check(5067823, jakartaRate())

	assert.True(t, result.Complies)
	require.NotNil(t, result.PercentageAbove)
	assert.Zero(t, *result.PercentageAbove)
	assert.Equal(t, types.RiskLow, result.RiskLevel)
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 5.067.823", FormatRupiah(5067823))
	assert.Equal(t, "Rp 500", FormatRupiah(500))
	assert.Equal(t, "Rp 1.000", FormatRupiah(1000))
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "-Rp 12.345", FormatRupiah(-12345))
}
