// Package pricing derives per-item and invoice-level monetary values from
// weights and a gold rate. It is pure: no storage, no side effects. All
// arithmetic stays in decimal at full precision; callers round only when
// presenting values.
package pricing

import (
	"github.com/shopspring/decimal"

	"btc-backoffice/internal/apperr"
)

// TroyOunceGrams converts a per-troy-ounce gold rate to a per-gram rate.
var TroyOunceGrams = decimal.NewFromFloat(31.103)

type LineInput struct {
	PureWeight decimal.Decimal // grams
	MakingRate decimal.Decimal
	MakingAmt  decimal.Decimal
}

type LineResult struct {
	PureGoldValue decimal.Decimal
	NetAmount     decimal.Decimal
}

type InvoiceTotals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Shipping       decimal.Decimal
	GrandTotal     decimal.Decimal
	// ZeroRateWarning is set when the gold rate was zero: the math is valid
	// but the rate is almost certainly not live market data.
	ZeroRateWarning bool
}

var hundred = decimal.NewFromInt(100)

// GramRate converts a gold rate quoted per troy ounce into a per-gram rate.
func GramRate(goldRate decimal.Decimal) decimal.Decimal {
	return goldRate.Div(TroyOunceGrams)
}

// PriceLine computes the pure-gold value and net amount of a single item.
func PriceLine(goldRate decimal.Decimal, in LineInput) (LineResult, error) {
	if goldRate.IsNegative() {
		return LineResult{}, apperr.New(apperr.InvalidInput, "gold rate must not be negative, got %s", goldRate)
	}
	if in.PureWeight.IsNegative() {
		return LineResult{}, apperr.New(apperr.InvalidInput, "pure weight must not be negative, got %s", in.PureWeight)
	}
	if in.MakingRate.IsNegative() || in.MakingAmt.IsNegative() {
		return LineResult{}, apperr.New(apperr.InvalidInput, "making charges must not be negative")
	}

	value := GramRate(goldRate).Mul(in.PureWeight)
	return LineResult{
		PureGoldValue: value,
		NetAmount:     value.Add(in.MakingRate).Add(in.MakingAmt),
	}, nil
}

// PriceInvoice prices every line and aggregates the invoice totals:
// subtotal, tax (percent of subtotal), discount (percent of subtotal), flat
// shipping, and grand total = subtotal + tax + shipping - discount.
func PriceInvoice(goldRate decimal.Decimal, lines []LineInput, taxPercent, discountPercent, shipping decimal.Decimal) ([]LineResult, InvoiceTotals, error) {
	if taxPercent.IsNegative() || discountPercent.IsNegative() || shipping.IsNegative() {
		return nil, InvoiceTotals{}, apperr.New(apperr.InvalidInput, "tax, discount and shipping must not be negative")
	}

	results := make([]LineResult, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		res, err := PriceLine(goldRate, line)
		if err != nil {
			return nil, InvoiceTotals{}, err
		}
		results = append(results, res)
		subtotal = subtotal.Add(res.NetAmount)
	}

	tax := subtotal.Mul(taxPercent).Div(hundred)
	discount := subtotal.Mul(discountPercent).Div(hundred)

	totals := InvoiceTotals{
		Subtotal:        subtotal,
		TaxAmount:       tax,
		DiscountAmount:  discount,
		Shipping:        shipping,
		GrandTotal:      subtotal.Add(tax).Add(shipping).Sub(discount),
		ZeroRateWarning: goldRate.IsZero(),
	}
	return results, totals, nil
}

// Round2 rounds a full-precision value for presentation.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
