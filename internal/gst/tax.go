package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxTaxRate is the highest GST slab a line item may carry.
var MaxTaxRate = decimal.NewFromInt(28)

var half = decimal.NewFromFloat(0.5)

// Jurisdiction decides how tax on a supply is split.
type Jurisdiction string

const (
	Intra Jurisdiction = "intra"
	Inter Jurisdiction = "inter"
)

// LineItem is one billable entry on an invoice.
// Quantity, Rate and TaxRate are assumed pre-validated: non-negative, TaxRate in [0, 28].
type LineItem struct {
	Description string          `json:"description"`
	HSN         string          `json:"hsn"`
	Quantity    decimal.Decimal `json:"quantity"`
	UOM         string          `json:"uom"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// Party carries the fields used to decide the place of supply.
type Party struct {
	GSTRegistered bool
	GSTIN         string
	PAN           string
	State         string
}

// LineResult pairs an item with its computed amount and tax.
type LineResult struct {
	Item   LineItem
	Amount decimal.Decimal
	Tax    decimal.Decimal
}

// TaxTotals is the aggregate tax outcome of an invoice.
type TaxTotals struct {
	Jurisdiction Jurisdiction    `json:"jurisdiction"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// TotalTax returns CGST + SGST + IGST.
func (t TaxTotals) TotalTax() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST)
}

// ComputeLine returns quantity*rate and the tax on it. No rounding is applied.
func ComputeLine(item LineItem) (amount, tax decimal.Decimal) {
	amount = item.Quantity.Mul(item.Rate)
	tax = amount.Mul(item.TaxRate).Shift(-2)
	return amount, tax
}

// ComputeLines computes every line. When gstActive is false all tax is zero.
func ComputeLines(items []LineItem, gstActive bool) []LineResult {
	out := make([]LineResult, 0, len(items))
	for _, it := range items {
		amount, tax := ComputeLine(it)
		if !gstActive {
			tax = decimal.Zero
		}
		out = append(out, LineResult{Item: it, Amount: amount, Tax: tax})
	}
	return out
}

// ClassifyJurisdiction decides intra vs inter state supply.
// GSTIN state codes win over free-text state names; with neither the supply is Intra.
func ClassifyJurisdiction(seller, buyer Party) Jurisdiction {
	sg := strings.TrimSpace(seller.GSTIN)
	bg := strings.TrimSpace(buyer.GSTIN)
	if len(sg) >= 2 && len(bg) >= 2 {
		if sg[:2] == bg[:2] {
			return Intra
		}
		return Inter
	}

	ss := normalizeState(seller.State)
	bs := normalizeState(buyer.State)
	if ss != "" && bs != "" {
		if ss == bs {
			return Intra
		}
		return Inter
	}
	return Intra
}

func normalizeState(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// split divides tax between the CGST/SGST pair or IGST.
func split(tax decimal.Decimal, j Jurisdiction) (cgst, sgst, igst decimal.Decimal) {
	if j == Inter {
		return decimal.Zero, decimal.Zero, tax
	}
	h := tax.Mul(half)
	return h, h, decimal.Zero
}

// AggregateTotals sums the line items into invoice-level totals.
func AggregateTotals(items []LineItem, j Jurisdiction, gstActive bool) TaxTotals {
	taxable := decimal.Zero
	tax := decimal.Zero
	for _, r := range ComputeLines(items, gstActive) {
		taxable = taxable.Add(r.Amount)
		tax = tax.Add(r.Tax)
	}

	cgst, sgst, igst := split(tax, j)
	return TaxTotals{
		Jurisdiction: j,
		TaxableValue: taxable,
		CGST:         cgst,
		SGST:         sgst,
		IGST:         igst,
		GrandTotal:   taxable.Add(cgst).Add(sgst).Add(igst),
	}
}
