package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-backoffice/internal/apperr"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestGramRate(t *testing.T) {
	// 2000 per troy ounce over 31.103 grams
	rate := GramRate(d("2000"))
	assert.Equal(t, "64.30", rate.StringFixed(2))
}

func TestPriceLine(t *testing.T) {
	res, err := PriceLine(d("2000"), LineInput{
		PureWeight: d("10"),
		MakingRate: d("50"),
		MakingAmt:  d("20"),
	})
	require.NoError(t, err)

	assert.Equal(t, "643.02", res.PureGoldValue.StringFixed(2))
	assert.Equal(t, "713.02", res.NetAmount.StringFixed(2))
}

func TestPriceLine_ZeroRate(t *testing.T) {
	res, err := PriceLine(decimal.Zero, LineInput{PureWeight: d("10")})
	require.NoError(t, err)
	assert.True(t, res.PureGoldValue.IsZero())
}

func TestPriceLine_RejectsNegativeInputs(t *testing.T) {
	cases := []struct {
		name string
		rate decimal.Decimal
		in   LineInput
	}{
		{"negative rate", d("-1"), LineInput{PureWeight: d("10")}},
		{"negative weight", d("2000"), LineInput{PureWeight: d("-10")}},
		{"negative making rate", d("2000"), LineInput{PureWeight: d("10"), MakingRate: d("-5")}},
		{"negative making amount", d("2000"), LineInput{PureWeight: d("10"), MakingAmt: d("-5")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PriceLine(tc.rate, tc.in)
			require.Error(t, err)
			assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
		})
	}
}

func TestPriceInvoice_Totals(t *testing.T) {
	lines := []LineInput{
		{PureWeight: d("10"), MakingRate: d("50"), MakingAmt: d("20")}, // 713.02...
		{MakingAmt: d("100")},
		{MakingAmt: d("50")},
	}

	results, totals, err := PriceInvoice(d("2000"), lines, d("5"), d("2"), d("10"))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "863.02", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "43.15", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "17.26", totals.DiscountAmount.StringFixed(2))
	assert.Equal(t, "10.00", totals.Shipping.StringFixed(2))
	assert.Equal(t, "898.92", totals.GrandTotal.StringFixed(2))
	assert.False(t, totals.ZeroRateWarning)
}

func TestPriceInvoice_FullPrecisionAccumulation(t *testing.T) {
	// Totals must be computed on unrounded line values: three identical lines
	// whose rounded net amount (713.02) would under-sum by a cent.
	lines := []LineInput{
		{PureWeight: d("10"), MakingRate: d("50"), MakingAmt: d("20")},
		{PureWeight: d("10"), MakingRate: d("50"), MakingAmt: d("20")},
		{PureWeight: d("10"), MakingRate: d("50"), MakingAmt: d("20")},
	}

	_, totals, err := PriceInvoice(d("2000"), lines, decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	// 3 x 713.024... = 2139.074..., not 3 x 713.02 = 2139.06
	assert.Equal(t, "2139.07", totals.Subtotal.StringFixed(2))
}

func TestPriceInvoice_ZeroRateFlagged(t *testing.T) {
	lines := []LineInput{{PureWeight: d("10"), MakingAmt: d("100")}}

	results, totals, err := PriceInvoice(decimal.Zero, lines, decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.ZeroRateWarning)
	assert.True(t, results[0].PureGoldValue.IsZero())
	assert.Equal(t, "100.00", totals.GrandTotal.StringFixed(2))
}

func TestPriceInvoice_RejectsNegativePercentages(t *testing.T) {
	_, _, err := PriceInvoice(d("2000"), nil, d("-5"), decimal.Zero, decimal.Zero)
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, _, err = PriceInvoice(d("2000"), nil, decimal.Zero, decimal.Zero, d("-10"))
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "898.92", Round2(d("898.9155")).String())
}
