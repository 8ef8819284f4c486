package gst

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TotalLabel is the HSN column text of the closing summary row.
const TotalLabel = "Total"

// HSNSummaryRow aggregates all items sharing an (HSN, tax rate) pair.
type HSNSummaryRow struct {
	HSN     string          `json:"hsn"`
	TaxRate decimal.Decimal `json:"tax_rate"`
	Taxable decimal.Decimal `json:"taxable"`
	CGST    decimal.Decimal `json:"cgst"`
	SGST    decimal.Decimal `json:"sgst"`
	IGST    decimal.Decimal `json:"igst"`
	Total   decimal.Decimal `json:"total"`
	IsTotal bool            `json:"is_total,omitempty"`
}

type hsnKey struct {
	hsn  string
	rate string
}

// BuildHSNSummary groups items by (HSN, tax rate), sorted by HSN, and appends a Total row.
// It returns nil for non-GST invoices.
func BuildHSNSummary(items []LineItem, j Jurisdiction, gstActive bool) []HSNSummaryRow {
	if !gstActive || len(items) == 0 {
		return nil
	}

	groups := make(map[hsnKey]*HSNSummaryRow)
	for _, r := range ComputeLines(items, true) {
		// 18 and 18.00 must land in the same group.
		k := hsnKey{hsn: r.Item.HSN, rate: r.Item.TaxRate.String()}
		g, ok := groups[k]
		if !ok {
			g = &HSNSummaryRow{
				HSN:     r.Item.HSN,
				TaxRate: r.Item.TaxRate,
				Taxable: decimal.Zero,
				CGST:    decimal.Zero,
				SGST:    decimal.Zero,
				IGST:    decimal.Zero,
			}
			groups[k] = g
		}
		cgst, sgst, igst := split(r.Tax, j)
		g.Taxable = g.Taxable.Add(r.Amount)
		g.CGST = g.CGST.Add(cgst)
		g.SGST = g.SGST.Add(sgst)
		g.IGST = g.IGST.Add(igst)
	}

	rows := make([]HSNSummaryRow, 0, len(groups)+1)
	for _, g := range groups {
		g.Total = g.Taxable.Add(g.CGST).Add(g.SGST).Add(g.IGST)
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].HSN != rows[b].HSN {
			return rows[a].HSN < rows[b].HSN
		}
		return rows[a].TaxRate.LessThan(rows[b].TaxRate)
	})

	total := HSNSummaryRow{
		HSN:     TotalLabel,
		Taxable: decimal.Zero,
		CGST:    decimal.Zero,
		SGST:    decimal.Zero,
		IGST:    decimal.Zero,
		Total:   decimal.Zero,
		IsTotal: true,
	}
	for i := range rows {
		total.Taxable = total.Taxable.Add(rows[i].Taxable)
		total.CGST = total.CGST.Add(rows[i].CGST)
		total.SGST = total.SGST.Add(rows[i].SGST)
		total.IGST = total.IGST.Add(rows[i].IGST)
		total.Total = total.Total.Add(rows[i].Total)
	}
	return append(rows, total)
}
