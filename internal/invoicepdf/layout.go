package invoicepdf

import (
	"fmt"

	"hisaab/internal/gst"
)

type pageState int

const (
	buildingHeader pageState = iota
	placingTable
	placingHSNSummary
	pageComplete
)

// Page is one laid-out page.
type Page struct {
	Number int
	// Rows indexes the line-item table body (items then summary rows) placed here.
	Rows        []int
	TableHeight float64
	HSNSummary  bool
	// HSNOnly marks the extra page that carries nothing but the HSN table.
	HSNOnly bool
	// HSNOffset is the HSN table's distance below the top of the table area.
	HSNOffset float64
	Label     string
}

// Document is the outcome of the layout pass.
type Document struct {
	Pages         []Page
	Lines         []gst.LineResult
	Totals        gst.TaxTotals
	HSN           []gst.HSNSummaryRow
	PlaceOfSupply string

	style Style
	items *table
	hsn   *table
	// hsnAlone is the HSN table with tighter rows, used on an HSN-only page.
	hsnAlone *table
}

// PageCount is the N of "Page X of N".
func (d *Document) PageCount() int { return len(d.Pages) }

// BodyRows is the number of line-item table rows, summary rows included.
func (d *Document) BodyRows() int { return len(d.items.body) }

// RowHeight returns the measured height of a body row.
func (d *Document) RowHeight(i int) float64 { return d.items.body[i].height }

func validateItems(items []gst.LineItem) error {
	if len(items) == 0 {
		return ErrNoLineItems
	}
	for i, it := range items {
		if it.Quantity.IsNegative() || it.Rate.IsNegative() ||
			it.TaxRate.IsNegative() || it.TaxRate.GreaterThan(gst.MaxTaxRate) {
			return fmt.Errorf("%w: item %d (%q)", ErrInvalidLineItem, i+1, it.Description)
		}
	}
	return nil
}

// Layout computes totals and paginates the invoice without drawing anything.
// The same input always yields the same pages.
func Layout(in Input) (*Document, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	st := StyleFor(in.Seller.Theme)
	j := in.Jurisdiction
	if j == "" {
		j = gst.Intra
	}
	doc := &Document{
		Lines:         gst.ComputeLines(in.Items, in.GSTActive),
		Totals:        gst.AggregateTotals(in.Items, j, in.GSTActive),
		HSN:           gst.BuildHSNSummary(in.Items, j, in.GSTActive),
		PlaceOfSupply: in.Meta.PlaceOfSupply,
		style:         st,
	}

	m := newMeasurer()
	doc.items = buildLineItemTable(doc.Lines, doc.Totals, in.GSTActive, st)
	doc.items.measureAll(m)
	if len(doc.HSN) > 0 {
		doc.hsn = buildHSNTable(doc.HSN, st)
		doc.hsn.measureAll(m)
		doc.hsnAlone = buildHSNTable(doc.HSN, st)
		doc.hsnAlone.padY = compactPadY
		doc.hsnAlone.measureAll(m)
	}

	pages, err := paginate(doc.items, doc.hsn, doc.hsnAlone, UsableHeight, HSNPageHeight)
	if err != nil {
		return nil, err
	}
	doc.Pages = pages
	return doc, nil
}

// paginate places the line-item table in row-boundary fragments, then the HSN
// table below the last fragment or alone on one extra page. The extra page
// draws alone, which gets aloneUsable points instead of usable.
func paginate(items, hsn, alone *table, usable, aloneUsable float64) ([]Page, error) {
	var (
		pages     []Page
		cur       Page
		next      int
		hsnPlaced = hsn == nil
		state     = buildingHeader
	)

	if alone == nil {
		alone = hsn
	}
	if hsn != nil && alone.height() > aloneUsable {
		return nil, fmt.Errorf("%w: %.1fpt needed, %.1fpt available", ErrLayoutOverflow, alone.height(), aloneUsable)
	}

	for {
		switch state {
		case buildingHeader:
			cur = Page{Number: len(pages) + 1}
			if next < len(items.body) {
				state = placingTable
			} else {
				state = placingHSNSummary
			}

		case placingTable:
			used := items.header.height
			start := next
			for next < len(items.body) && used+items.body[next].height <= usable {
				used += items.body[next].height
				cur.Rows = append(cur.Rows, next)
				next++
			}
			if next == start {
				return nil, fmt.Errorf("%w: row %d needs %.1fpt, %.1fpt available",
					ErrRowTooTall, start+1, items.header.height+items.body[start].height, usable)
			}
			cur.TableHeight = used
			if next < len(items.body) {
				state = pageComplete
			} else {
				state = placingHSNSummary
			}

		case placingHSNSummary:
			switch {
			case hsnPlaced:
			case len(cur.Rows) == 0:
				cur.HSNSummary = true
				cur.HSNOnly = true
				hsnPlaced = true
			case cur.TableHeight+HSNGap+hsn.height() <= usable:
				cur.HSNSummary = true
				cur.HSNOffset = cur.TableHeight + HSNGap
				hsnPlaced = true
			}
			state = pageComplete

		case pageComplete:
			pages = append(pages, cur)
			if next >= len(items.body) && hsnPlaced {
				for i := range pages {
					pages[i].Label = fmt.Sprintf("Page %d of %d", pages[i].Number, len(pages))
				}
				return pages, nil
			}
			state = buildingHeader
		}
	}
}
