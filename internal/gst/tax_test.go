package gst

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func consulting() LineItem {
	return LineItem{
		Description: "Consulting",
		HSN:         "9983",
		Quantity:    d("10"),
		UOM:         "HRS",
		Rate:        d("500"),
		TaxRate:     d("18"),
	}
}

func assertDecEqual(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name       string
		item       LineItem
		wantAmount string
		wantTax    string
	}{
		{"consulting", consulting(), "5000", "900"},
		{"fractional quantity", LineItem{Quantity: d("2.5"), Rate: d("99.99"), TaxRate: d("12")}, "249.975", "29.997"},
		{"zero rate", LineItem{Quantity: d("3"), Rate: d("0"), TaxRate: d("28")}, "0", "0"},
		{"exempt", LineItem{Quantity: d("1"), Rate: d("1000"), TaxRate: d("0")}, "1000", "0"},
		{"five percent", LineItem{Quantity: d("7"), Rate: d("13.33"), TaxRate: d("5")}, "93.31", "4.6655"},
		{"long fraction", LineItem{Quantity: d("0.3333333333333333333"), Rate: d("3"), TaxRate: d("18")},
			"0.9999999999999999999", "0.179999999999999999982"},
		{"many digits", LineItem{Quantity: d("1.23456789012345678"), Rate: d("9876.54321"), TaxRate: d("28")},
			"12193.2631124828531222374638", "3414.113671495198874226489864"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, tax := ComputeLine(tt.item)
			assertDecEqual(t, tt.wantAmount, amount)
			assertDecEqual(t, tt.wantTax, tax)
		})
	}
}

func TestComputeLines_NonGSTForcesZeroTax(t *testing.T) {
	items := []LineItem{consulting(), {Quantity: d("1"), Rate: d("250"), TaxRate: d("12")}}

	results := ComputeLines(items, false)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Tax.IsZero())
	}
	assertDecEqual(t, "5000", results[0].Amount)
	assertDecEqual(t, "250", results[1].Amount)
}

func TestClassifyJurisdiction(t *testing.T) {
	tests := []struct {
		name   string
		seller Party
		buyer  Party
		want   Jurisdiction
	}{
		{
			name:   "same GSTIN state",
			seller: Party{GSTIN: "24ABCDE1234F1Z5"},
			buyer:  Party{GSTIN: "24XYZAB5678C1Z9"},
			want:   Intra,
		},
		{
			name:   "different GSTIN state",
			seller: Party{GSTIN: "24ABCDE1234F1Z5"},
			buyer:  Party{GSTIN: "27XYZAB5678C1Z9"},
			want:   Inter,
		},
		{
			name:   "GSTIN wins over state names",
			seller: Party{GSTIN: "24ABCDE1234F1Z5", State: "Gujarat"},
			buyer:  Party{GSTIN: "27XYZAB5678C1Z9", State: "Gujarat"},
			want:   Inter,
		},
		{
			name:   "state names normalized",
			seller: Party{State: "Gujarat"},
			buyer:  Party{State: "gujarat "},
			want:   Intra,
		},
		{
			name:   "different state names",
			seller: Party{State: "Gujarat"},
			buyer:  Party{State: "Maharashtra"},
			want:   Inter,
		},
		{
			name:   "buyer GSTIN missing falls back to state",
			seller: Party{GSTIN: "24ABCDE1234F1Z5", State: "Gujarat"},
			buyer:  Party{State: "  MAHARASHTRA"},
			want:   Inter,
		},
		{
			name:   "one character GSTIN ignored",
			seller: Party{GSTIN: "2", State: "Goa"},
			buyer:  Party{GSTIN: "2", State: "Kerala"},
			want:   Inter,
		},
		{
			name:   "no data defaults to intra",
			seller: Party{},
			buyer:  Party{},
			want:   Intra,
		},
		{
			name:   "only seller state defaults to intra",
			seller: Party{State: "Gujarat"},
			buyer:  Party{State: "   "},
			want:   Intra,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyJurisdiction(tt.seller, tt.buyer))
		})
	}
}

func TestAggregateTotals_IntraScenario(t *testing.T) {
	seller := Party{GSTRegistered: true, GSTIN: "24ABCDE1234F1Z5", State: "Gujarat"}
	buyer := Party{GSTIN: "24XYZAB5678C1Z9", State: "Gujarat"}

	j := ClassifyJurisdiction(seller, buyer)
	totals := AggregateTotals([]LineItem{consulting()}, j, true)

	assert.Equal(t, Intra, totals.Jurisdiction)
	assertDecEqual(t, "5000", totals.TaxableValue)
	assertDecEqual(t, "450", totals.CGST)
	assertDecEqual(t, "450", totals.SGST)
	assertDecEqual(t, "0", totals.IGST)
	assertDecEqual(t, "5900", totals.GrandTotal)
	assertDecEqual(t, "900", totals.TotalTax())
}

func TestAggregateTotals_InterScenario(t *testing.T) {
	seller := Party{GSTRegistered: true, GSTIN: "24ABCDE1234F1Z5"}
	buyer := Party{GSTIN: "27XYZAB5678C1Z9"}

	totals := AggregateTotals([]LineItem{consulting()}, ClassifyJurisdiction(seller, buyer), true)

	assertDecEqual(t, "0", totals.CGST)
	assertDecEqual(t, "0", totals.SGST)
	assertDecEqual(t, "900", totals.IGST)
	assertDecEqual(t, "5900", totals.GrandTotal)
}

func TestAggregateTotals_GSTInactive(t *testing.T) {
	totals := AggregateTotals([]LineItem{consulting()}, Inter, false)

	assertDecEqual(t, "5000", totals.TaxableValue)
	assert.True(t, totals.TotalTax().IsZero())
	assertDecEqual(t, "5000", totals.GrandTotal)
}

func TestAggregateTotals_PartsAddUp(t *testing.T) {
	items := []LineItem{
		{Quantity: d("3"), Rate: d("33.33"), TaxRate: d("5")},
		{Quantity: d("1.5"), Rate: d("1999.99"), TaxRate: d("18")},
		{Quantity: d("7"), Rate: d("0.01"), TaxRate: d("28")},
		{Quantity: d("11"), Rate: d("12.5"), TaxRate: d("12")},
	}

	for _, j := range []Jurisdiction{Intra, Inter} {
		t.Run(string(j), func(t *testing.T) {
			totals := AggregateTotals(items, j, true)

			sum := totals.TaxableValue.Add(totals.CGST).Add(totals.SGST).Add(totals.IGST)
			assert.True(t, sum.Equal(totals.GrandTotal))
			assert.True(t, totals.CGST.Equal(totals.SGST))
			if j == Intra {
				assert.True(t, totals.IGST.IsZero())
				assert.True(t, totals.CGST.IsPositive())
			} else {
				assert.True(t, totals.CGST.IsZero())
				assert.True(t, totals.IGST.IsPositive())
			}
		})
	}
}

func TestAggregateTotals_Empty(t *testing.T) {
	totals := AggregateTotals(nil, Intra, true)
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.TaxableValue.IsZero())
}
