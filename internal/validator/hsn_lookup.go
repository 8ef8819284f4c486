package validator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"hisaab/internal/gst"
	"hisaab/internal/port"
)

// HSNRate holds a valid GST rate and optional condition for an HSN code.
type HSNRate struct {
	Rate          decimal.Decimal
	ConditionDesc string
}

// HSNLookup answers HSN existence and rate questions from the master list.
// It is immutable after construction and safe for concurrent access.
type HSNLookup struct {
	byCode map[string][]HSNRate
}

// NewHSNLookup builds an HSNLookup from entries loaded from the database.
func NewHSNLookup(entries []port.HSNEntry) *HSNLookup {
	m := make(map[string][]HSNRate, len(entries))
	for idx := range entries {
		e := &entries[idx]
		m[e.Code] = append(m[e.Code], HSNRate{Rate: e.GSTRate, ConditionDesc: e.ConditionDesc})
	}
	return &HSNLookup{byCode: m}
}

// Rates returns the valid rates for code, falling back from 8 to 6 to 4 digit prefixes.
func (h *HSNLookup) Rates(code string) []HSNRate {
	if h == nil || len(h.byCode) == 0 || code == "" {
		return nil
	}
	if rates, ok := h.byCode[code]; ok {
		return rates
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if rates, ok := h.byCode[code[:prefixLen]]; ok {
				return rates
			}
		}
	}
	return nil
}

// Exists reports whether code, or one of its prefixes, is in the master list.
func (h *HSNLookup) Exists(code string) bool {
	return len(h.Rates(code)) > 0
}

// RateMatches reports whether rate is one of the valid rates for code.
func (h *HSNLookup) RateMatches(code string, rate decimal.Decimal) (matched bool, valid []HSNRate) {
	valid = h.Rates(code)
	for idx := range valid {
		if valid[idx].Rate.Equal(rate) {
			return true, valid
		}
	}
	return false, valid
}

// Warnings lists advisory HSN problems for invoice lines. They never block
// generation: the master list may lag behind notifications.
func (h *HSNLookup) Warnings(items []gst.LineItem) []string {
	if h == nil || len(h.byCode) == 0 {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for i := range items {
		code := strings.TrimSpace(items[i].HSN)
		if code == "" {
			continue
		}
		key := code + "/" + items[i].TaxRate.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		matched, valid := h.RateMatches(code, items[i].TaxRate)
		switch {
		case len(valid) == 0:
			out = append(out, fmt.Sprintf("HSN %s is not in the HSN master", code))
		case !matched:
			rates := make([]string, len(valid))
			for j := range valid {
				rates[j] = valid[j].Rate.String() + "%"
			}
			out = append(out, fmt.Sprintf("HSN %s is taxed at %s%%, expected %s",
				code, items[i].TaxRate.String(), strings.Join(rates, " or ")))
		}
	}
	return out
}
