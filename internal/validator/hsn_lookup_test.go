package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisaab/internal/gst"
	"hisaab/internal/port"
	"hisaab/internal/validator"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// testHSNLookup contains 8471 at 18% and 12%, an 8-digit child of 8471,
// rice at 4 and 6 digits, and an exempt code.
func testHSNLookup() *validator.HSNLookup {
	return validator.NewHSNLookup([]port.HSNEntry{
		{Code: "8471", Description: "Automatic data processing machines", GSTRate: d("18")},
		{Code: "8471", Description: "Automatic data processing machines", GSTRate: d("12"), ConditionDesc: "used/refurbished"},
		{Code: "84714100", Description: "Digital computers", GSTRate: d("18")},
		{Code: "1006", Description: "Rice", GSTRate: d("5")},
		{Code: "100630", Description: "Semi-milled or wholly milled rice", GSTRate: d("5")},
		{Code: "0101", Description: "Live horses", GSTRate: d("0")},
	})
}

func TestHSNLookup_Exists(t *testing.T) {
	lookup := testHSNLookup()

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"exact 4 digit", "8471", true},
		{"exact 8 digit", "84714100", true},
		{"exempt", "0101", true},
		{"prefix 8 to 4", "84710000", true},
		{"prefix 8 to 6", "10063010", true},
		{"unknown", "9999", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lookup.Exists(tt.code))
		})
	}
}

func TestHSNLookup_RateMatches(t *testing.T) {
	lookup := testHSNLookup()

	matched, valid := lookup.RateMatches("8471", d("12.00"))
	assert.True(t, matched)
	assert.Len(t, valid, 2)

	matched, valid = lookup.RateMatches("1006", d("18"))
	assert.False(t, matched)
	require.Len(t, valid, 1)
	assert.True(t, valid[0].Rate.Equal(d("5")))

	matched, valid = lookup.RateMatches("9999", d("18"))
	assert.False(t, matched)
	assert.Nil(t, valid)
}

func TestHSNLookup_NilAndEmpty(t *testing.T) {
	var lookup *validator.HSNLookup
	assert.False(t, lookup.Exists("8471"))
	assert.Nil(t, lookup.Warnings([]gst.LineItem{{HSN: "8471", TaxRate: d("18")}}))

	empty := validator.NewHSNLookup(nil)
	assert.Nil(t, empty.Warnings([]gst.LineItem{{HSN: "8471", TaxRate: d("18")}}))
}

func TestHSNLookup_Warnings(t *testing.T) {
	lookup := testHSNLookup()
	items := []gst.LineItem{
		{Description: "Laptop", HSN: "8471", TaxRate: d("18")},
		{Description: "Rice", HSN: "1006", TaxRate: d("12")},
		{Description: "Rice again", HSN: "1006", TaxRate: d("12")},
		{Description: "Mystery", HSN: "9999", TaxRate: d("18")},
		{Description: "Labour", TaxRate: d("18")},
	}

	warnings := lookup.Warnings(items)
	assert.Equal(t, []string{
		"HSN 1006 is taxed at 12%, expected 5%",
		"HSN 9999 is not in the HSN master",
	}, warnings)
}
