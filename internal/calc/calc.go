// Package calc holds the money arithmetic behind a checkout: discounts,
// redeemed credit, surcharges, tips, GST extraction and the charged total.
//
// Every function returns an amount rounded to cents. Inputs are not
// validated or clamped: a discount larger than the subtotal yields a
// negative final subtotal, and callers are expected to prevent that.
package calc

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// gstDivisor and gstRate describe a 10% tax-inclusive price.
	gstDivisor = decimal.RequireFromString("1.1")
	gstRate    = decimal.RequireFromString("0.1")
)

// Surcharge is a percentage fee configured for an outlet.
// Rate is a percentage: 10 means 10%.
type Surcharge struct {
	ID     uuid.UUID
	Name   string
	Rate   decimal.Decimal
	Active bool
}

// AppliedSurcharge is a surcharge together with the amount it added.
type AppliedSurcharge struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// Round rounds x to 2 decimal places, half away from zero.
func Round(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

// IsCents reports whether x has no fractions of a cent.
func IsCents(x decimal.Decimal) bool {
	return x.Equal(Round(x))
}

// TipByRate returns the tip for a fractional rate (0.10 = 10%) applied to
// the subtotal after discount and redeemed credit.
func TipByRate(subtotal, discount, redeem, rate decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Sub(discount).Sub(redeem).Mul(rate))
}

// DiscountByRate returns the discount for a fractional rate.
func DiscountByRate(subtotal, rate decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Mul(rate))
}

// SurchargeAmount returns a single surcharge. rate is a fraction, so a
// stored percentage must be divided by 100 first.
func SurchargeAmount(finalSubtotal, rate decimal.Decimal) decimal.Decimal {
	return Round(finalSubtotal.Mul(rate))
}

// SurchargeAmounts returns one rounded amount per surcharge, in input order.
// Each amount is rounded on its own before anything sums them.
func SurchargeAmounts(finalSubtotal decimal.Decimal, surcharges []Surcharge) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(surcharges))
	for i, s := range surcharges {
		amounts[i] = SurchargeAmount(finalSubtotal, s.Rate.Div(hundred))
	}
	return amounts
}

// FinalSubtotal is the subtotal less discount and redeemed credit.
// Negative results are returned as is.
func FinalSubtotal(subtotal, discount, redeem decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Sub(discount).Sub(redeem))
}

// ExtractTax reports the GST already contained in final subtotal, tip and
// surcharges. It does not change what is charged.
func ExtractTax(finalSubtotal, tip decimal.Decimal, surchargeAmounts []decimal.Decimal) decimal.Decimal {
	gross := finalSubtotal.Add(tip).Add(sum(surchargeAmounts))
	return Round(gross.Div(gstDivisor).Mul(gstRate))
}

// Total is the amount charged: final subtotal plus tip plus the already
// rounded surcharge amounts.
func Total(finalSubtotal decimal.Decimal, surchargeAmounts []decimal.Decimal, tip decimal.Decimal) decimal.Decimal {
	return Round(finalSubtotal.Add(tip).Add(sum(surchargeAmounts)))
}

func sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
