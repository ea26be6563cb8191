package calc

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want string
	}{
		{
			name: "plain",
			line: Line{Quantity: 3, UnitPrice: d("4.50")},
			want: "13.50",
		},
		{
			name: "add-ons charged per unit",
			line: Line{Quantity: 2, UnitPrice: d("12.50"), AddOns: []AddOn{{Name: "egg", Price: d("1.00")}, {Name: "cheese", Price: d("0.75")}}},
			want: "28.50",
		},
		{
			name: "zero quantity",
			line: Line{Quantity: 0, UnitPrice: d("9.99")},
			want: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, "LineTotal", LineTotal(tt.line), tt.want)
		})
	}
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{Quantity: 2, UnitPrice: d("12.50")},
		{Quantity: 1, UnitPrice: d("25.00"), AddOns: []AddOn{{Name: "side", Price: d("5.00")}}},
	}
	assertMoney(t, "Subtotal", Subtotal(lines), "55.00")
	assertMoney(t, "Subtotal(nil)", Subtotal(nil), "0.00")
}

func TestQuote_QuickSaleScenario(t *testing.T) {
	subtotal := d("50.00")
	tip := TipByRate(subtotal, decimal.Zero, decimal.Zero, d("0.10"))

	b := Quote(Input{Subtotal: subtotal, Tip: tip})

	assertMoney(t, "tip", b.Tip, "5.00")
	assertMoney(t, "final subtotal", b.FinalSubtotal, "50.00")
	assertMoney(t, "surcharge total", b.SurchargeTotal, "0.00")
	assertMoney(t, "tax", b.Tax, "5.00")
	assertMoney(t, "total", b.Total, "55.00")
	if len(b.Surcharges) != 0 {
		t.Errorf("surcharges = %d, want 0", len(b.Surcharges))
	}
}

func TestQuote_WithSurcharges(t *testing.T) {
	cardID := uuid.New()
	weekendID := uuid.New()

	b := Quote(Input{
		Subtotal: d("40.00"),
		Discount: d("5.00"),
		Redeem:   d("1.67"),
		Tip:      d("2.00"),
		Surcharges: []Surcharge{
			{ID: cardID, Name: "card", Rate: d("3.5"), Active: true},
			{ID: weekendID, Name: "weekend", Rate: d("1.5"), Active: true},
		},
	})

	assertMoney(t, "final subtotal", b.FinalSubtotal, "33.33")
	if len(b.Surcharges) != 2 {
		t.Fatalf("surcharges = %d, want 2", len(b.Surcharges))
	}
	if b.Surcharges[0].ID != cardID || b.Surcharges[1].ID != weekendID {
		t.Errorf("surcharge order not preserved")
	}
	assertMoney(t, "card", b.Surcharges[0].Amount, "1.17")
	assertMoney(t, "weekend", b.Surcharges[1].Amount, "0.50")
	assertMoney(t, "surcharge total", b.SurchargeTotal, "1.67")
	assertMoney(t, "total", b.Total, "37.00")
	// 37.00 / 1.1 * 0.1 = 3.3636...
	assertMoney(t, "tax", b.Tax, "3.36")

	got := b.SurchargeAmounts()
	assertMoney(t, "amounts[0]", got[0], "1.17")
	assertMoney(t, "amounts[1]", got[1], "0.50")
}

func TestQuote_TotalMatchesCalculators(t *testing.T) {
	in := Input{
		Subtotal:   d("87.40"),
		Discount:   d("7.40"),
		Tip:        d("8.00"),
		Surcharges: []Surcharge{{Rate: d("10")}},
	}
	b := Quote(in)

	final := FinalSubtotal(in.Subtotal, in.Discount, in.Redeem)
	want := Total(final, SurchargeAmounts(final, in.Surcharges), in.Tip)
	if !b.Total.Equal(want) {
		t.Errorf("Quote total = %s, calculators give %s", b.Total, want)
	}
	assertMoney(t, "total", b.Total, "96.00")
}

func TestSumAllocations(t *testing.T) {
	payments := []Allocation{
		{Method: "CASH", Amount: d("20.00")},
		{Method: "CARD", Amount: d("35.00")},
	}
	assertMoney(t, "SumAllocations", SumAllocations(payments), "55.00")
	assertMoney(t, "SumAllocations(nil)", SumAllocations(nil), "0.00")

	// 27.505 and 27.495 are stored as 27.51 and 27.50.
	split := []Allocation{
		{Method: "CASH", Amount: d("27.505")},
		{Method: "CARD", Amount: d("27.495")},
	}
	assertMoney(t, "SumAllocations(sub-cent)", SumAllocations(split), "55.01")
}

func TestIsCents(t *testing.T) {
	for s, want := range map[string]bool{
		"55":     true,
		"55.1":   true,
		"55.10":  true,
		"55.100": true,
		"27.505": false,
		"-0.001": false,
	} {
		if got := IsCents(d(s)); got != want {
			t.Errorf("IsCents(%s) = %v, want %v", s, got, want)
		}
	}
}
