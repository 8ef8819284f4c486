package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"999.999", "1,000.00"},
		{"1000", "1,000.00"},
		{"5900", "5,900.00"},
		{"123456", "1,23,456.00"},
		{"1234567.891", "12,34,567.89"},
		{"123456789", "12,34,56,789.00"},
		{"-45000.5", "-45,000.50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(d(tt.in)))
		})
	}
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹ 1,23,456.00", FormatINR(d("123456")))
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Zero Rupees Only"},
		{"5900", "Five Thousand Nine Hundred Rupees Only"},
		{"115", "One Hundred Fifteen Rupees Only"},
		{"250000", "Two Lakh Fifty Thousand Rupees Only"},
		{"12000000", "One Crore Twenty Lakh Rupees Only"},
		{"10.5", "Ten Rupees and Fifty Paise Only"},
		{"0.07", "Seven Paise Only"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(d(tt.in)))
		})
	}
}
