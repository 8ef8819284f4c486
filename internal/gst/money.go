package gst

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a value with 2 decimals and Indian digit grouping: 1,23,456.00.
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(groups, ",") + "," + tail
	}

	out := intPart + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatINR prefixes FormatAmount with the rupee sign.
func FormatINR(d decimal.Decimal) string {
	return "₹ " + FormatAmount(d)
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

func numberToWords(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	case n < 1000:
		return joinWords(ones[n/100]+" Hundred", numberToWords(n%100))
	case n < 100000:
		return joinWords(numberToWords(n/1000)+" Thousand", numberToWords(n%1000))
	case n < 10000000:
		return joinWords(numberToWords(n/100000)+" Lakh", numberToWords(n%100000))
	default:
		return joinWords(numberToWords(n/10000000)+" Crore", numberToWords(n%10000000))
	}
}

func joinWords(a, b string) string {
	if b == "" {
		return a
	}
	return a + " " + b
}

// AmountInWords spells out an amount in Indian numbering, e.g.
// "Five Thousand Nine Hundred Rupees Only".
func AmountInWords(d decimal.Decimal) string {
	d = d.Abs().Round(2)
	rupees := d.Truncate(0)
	paise := d.Sub(rupees).Shift(2).IntPart()

	var parts []string
	if r := rupees.IntPart(); r > 0 {
		parts = append(parts, fmt.Sprintf("%s Rupees", numberToWords(r)))
	}
	if paise > 0 {
		parts = append(parts, fmt.Sprintf("%s Paise", numberToWords(paise)))
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return strings.Join(parts, " and ") + " Only"
}
