package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateName(t *testing.T) {
	assert.Equal(t, "Gujarat", StateName("24"))
	assert.Equal(t, "Maharashtra", StateName(" 27 "))
	assert.Equal(t, "Ladakh", StateName("38"))
	assert.Equal(t, "Centre Jurisdiction", StateName("99"))
	assert.Equal(t, "", StateName("40"))
}

func TestStateCodeByName(t *testing.T) {
	code, ok := StateCodeByName("  gujarat ")
	assert.True(t, ok)
	assert.Equal(t, "24", code)

	code, ok = StateCodeByName("Andhra Pradesh")
	assert.True(t, ok)
	assert.Equal(t, "37", code)

	_, ok = StateCodeByName("Atlantis")
	assert.False(t, ok)
}

func TestPlaceOfSupply(t *testing.T) {
	seller := Party{GSTIN: "24ABCDE1234F1Z5", State: "Gujarat"}

	tests := []struct {
		name  string
		buyer Party
		want  string
	}{
		{"buyer GSTIN", Party{GSTIN: "27XYZAB5678C1Z9"}, "27"},
		{"buyer state name", Party{State: "karnataka"}, "29"},
		{"unknown buyer falls back to seller", Party{State: "Nowhere"}, "24"},
		{"invalid GSTIN prefix uses state", Party{GSTIN: "XX12", State: "Goa"}, "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlaceOfSupply(seller, tt.buyer))
		})
	}

	assert.Equal(t, "", PlaceOfSupply(Party{}, Party{}))
}

func TestPlaceOfSupplyLabel(t *testing.T) {
	assert.Equal(t, "24-Gujarat", PlaceOfSupplyLabel("24"))
	assert.Equal(t, "55", PlaceOfSupplyLabel("55"))
	assert.Equal(t, "", PlaceOfSupplyLabel(""))
}
