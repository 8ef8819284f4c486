package main

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type hsnEntry struct {
	code        string
	description string
	rate        decimal.Decimal
	condition   string
}

// entrySet keeps entries in first-seen order, unique on code, rate and condition.
type entrySet struct {
	seen    map[string]bool
	entries []hsnEntry
}

func newEntrySet() *entrySet {
	return &entrySet{seen: make(map[string]bool)}
}

func (s *entrySet) add(code, description string, rate decimal.Decimal, condition string) bool {
	code = strings.TrimSpace(code)
	if !isNumeric(code) {
		return false
	}
	key := code + "|" + rate.StringFixed(2) + "|" + condition
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.entries = append(s.entries, hsnEntry{code: code, description: clip(description), rate: rate, condition: condition})
	return true
}

// Goods sheet layout: F=4-digit code, H=its description, I=6-digit, J=desc,
// K=8-digit, M=desc, N=rate ("18%" or a fraction like 0.18). Data from row 6.
const (
	goodsFirstRow = 5
	colCode4      = 5
	colDesc4      = 7
	colCode6      = 8
	colDesc6      = 9
	colCode8      = 10
	colDesc8      = 12
	colGoodsRate  = 13
)

func parseGoods(rows [][]string, set *entrySet) int {
	added := 0
	for i := goodsFirstRow; i < len(rows); i++ {
		row := rows[i]
		rate, ok := parseGoodsRate(cell(row, colGoodsRate))
		if !ok {
			continue
		}
		// most specific code first so its description wins
		for _, c := range [][2]int{{colCode8, colDesc8}, {colCode6, colDesc6}, {colCode4, colDesc4}} {
			if set.add(cell(row, c[0]), cell(row, c[1]), rate, "") {
				added++
			}
		}
	}
	return added
}

func parseGoodsRate(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	pct := strings.HasSuffix(s, "%")
	d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(s, "%")))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	// excelize returns raw fractions for percent-formatted cells without a style
	if !pct && d.LessThan(decimal.NewFromInt(1)) && !d.IsZero() {
		d = d.Shift(2)
	}
	return d, true
}

// Services sheet layout: A=4-digit SAC, B=desc, C=6-digit SAC, D=desc,
// E=free-text rate. Data from row 4.
const (
	servicesFirstRow = 3
	colSAC4          = 0
	colSACDesc4      = 1
	colSAC6          = 2
	colSACDesc6      = 3
	colSACRate       = 4
)

func parseServices(rows [][]string, set *entrySet) int {
	added := 0
	for i := servicesFirstRow; i < len(rows); i++ {
		row := rows[i]
		for _, r := range parseServiceRates(cell(row, colSACRate)) {
			if set.add(cell(row, colSAC6), cell(row, colSACDesc6), r.rate, r.condition) {
				added++
			}
			if set.add(cell(row, colSAC4), cell(row, colSACDesc4), r.rate, r.condition) {
				added++
			}
		}
	}
	return added
}

type serviceRate struct {
	rate      decimal.Decimal
	condition string
}

// ratePattern matches "5%" with an optional parenthesised condition.
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*(?:\(([^)]*)\))?`)

// parseServiceRates reads rate text such as "18%", "Exempt", "12%-18%" or
// "1% (without ITC) or 5% (without ITC)".
func parseServiceRates(s string) []serviceRate {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return nil
	case "exempt", "nil":
		return []serviceRate{{rate: decimal.Zero, condition: strings.ToLower(s)}}
	}

	var out []serviceRate
	seen := make(map[string]bool)
	for _, m := range ratePattern.FindAllStringSubmatch(s, -1) {
		rate, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		cond := strings.ToLower(strings.TrimSpace(m[2]))
		key := rate.String() + "|" + cond
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, serviceRate{rate: rate, condition: cond})
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
