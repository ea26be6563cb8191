package calc

import "github.com/shopspring/decimal"

// AddOn is a priced extra on a cart line, charged once per unit.
type AddOn struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Line is the priced part of a cart entry.
type Line struct {
	Quantity  int32
	UnitPrice decimal.Decimal
	AddOns    []AddOn
}

// LineTotal returns (unit price + add-ons) * quantity.
func LineTotal(l Line) decimal.Decimal {
	unit := l.UnitPrice
	for _, a := range l.AddOns {
		unit = unit.Add(a.Price)
	}
	return Round(unit.Mul(decimal.NewFromInt32(l.Quantity)))
}

// Subtotal sums LineTotal over lines.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return Round(total)
}

// Input is everything needed to price a checkout.
type Input struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Redeem     decimal.Decimal
	Tip        decimal.Decimal
	Surcharges []Surcharge
}

// Breakdown is the priced result of an Input.
type Breakdown struct {
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	Redeem         decimal.Decimal    `json:"redeem"`
	FinalSubtotal  decimal.Decimal    `json:"final_subtotal"`
	Tip            decimal.Decimal    `json:"tip"`
	Surcharges     []AppliedSurcharge `json:"surcharges"`
	SurchargeTotal decimal.Decimal    `json:"surcharge_total"`
	Tax            decimal.Decimal    `json:"tax"`
	Total          decimal.Decimal    `json:"total"`
}

// Quote runs the full pipeline: final subtotal, surcharges, tax and total.
func Quote(in Input) Breakdown {
	final := FinalSubtotal(in.Subtotal, in.Discount, in.Redeem)
	amounts := SurchargeAmounts(final, in.Surcharges)
	tip := Round(in.Tip)

	applied := make([]AppliedSurcharge, len(in.Surcharges))
	for i, s := range in.Surcharges {
		applied[i] = AppliedSurcharge{ID: s.ID, Name: s.Name, Rate: s.Rate, Amount: amounts[i]}
	}

	return Breakdown{
		Subtotal:       Round(in.Subtotal),
		Discount:       Round(in.Discount),
		Redeem:         Round(in.Redeem),
		FinalSubtotal:  final,
		Tip:            tip,
		Surcharges:     applied,
		SurchargeTotal: sum(amounts),
		Tax:            ExtractTax(final, tip, amounts),
		Total:          Total(final, amounts, tip),
	}
}

// SurchargeAmounts returns the applied amounts in order.
func (b Breakdown) SurchargeAmounts() []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(b.Surcharges))
	for i, s := range b.Surcharges {
		amounts[i] = s.Amount
	}
	return amounts
}

// Allocation is the part of a total settled by one payment method.
type Allocation struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// SumAllocations adds up allocation amounts as they are stored, each
// rounded to cents.
func SumAllocations(payments []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(Round(p.Amount))
	}
	return total
}
