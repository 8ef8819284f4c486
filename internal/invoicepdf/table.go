package invoicepdf

import (
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"hisaab/internal/gst"
)

const inch = 72.0

type font struct {
	family string
	style  string
	size   float64
}

// measurer wraps text to a column width using real font metrics.
type measurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newMeasurer() *measurer {
	p := gofpdf.New("P", "pt", "A4", "")
	p.SetCellMargin(0)
	return &measurer{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

// split returns the wrapped lines of text, honouring explicit newlines.
// Always at least one line.
func (m *measurer) split(text string, f font, width float64) []string {
	m.pdf.SetFont(f.family, f.style, f.size)
	var out []string
	for _, para := range strings.Split(text, "\n") {
		lines := m.pdf.SplitLines([]byte(para), width)
		if len(lines) == 0 {
			out = append(out, "")
			continue
		}
		for _, l := range lines {
			out = append(out, string(l))
		}
	}
	return out
}

type column struct {
	title string
	width float64
	align string
}

type cell struct {
	text  string
	span  int
	align string
	lines []string
}

type row struct {
	cells  []cell
	height float64
	family string
	bold   bool
	fill   *rgb
	color  rgb
}

type table struct {
	cols     []column
	header   row
	body     []row
	family   string
	fontSize float64
	padX     float64
	padY     float64
	grid     rgb
}

func (t *table) leading() float64 { return t.fontSize * 1.2 }

func (t *table) width() float64 {
	w := 0.0
	for _, c := range t.cols {
		w += c.width
	}
	return w
}

// height is the full table: header row plus every body row.
func (t *table) height() float64 {
	h := t.header.height
	for i := range t.body {
		h += t.body[i].height
	}
	return h
}

func (t *table) rowFont(r *row) font {
	st := ""
	if r.bold {
		st = "B"
	}
	family := t.family
	if r.family != "" {
		family = r.family
	}
	return font{family: family, style: st, size: t.fontSize}
}

// measure wraps every cell and sets the row height.
func (t *table) measure(m *measurer, r *row) {
	f := t.rowFont(r)
	maxLines := 1
	col := 0
	for i := range r.cells {
		c := &r.cells[i]
		span := c.span
		if span < 1 {
			span = 1
		}
		w := 0.0
		for k := col; k < col+span && k < len(t.cols); k++ {
			w += t.cols[k].width
		}
		col += span
		c.text = m.tr(c.text)
		c.lines = m.split(c.text, f, w-2*t.padX)
		if len(c.lines) > maxLines {
			maxLines = len(c.lines)
		}
	}
	r.height = float64(maxLines)*t.leading() + 2*t.padY
}

func (t *table) measureAll(m *measurer) {
	t.measure(m, &t.header)
	for i := range t.body {
		t.measure(m, &t.body[i])
	}
}

func headerRow(cols []column, st Style, family string) row {
	cells := make([]cell, len(cols))
	for i, c := range cols {
		cells[i] = cell{text: c.title, span: 1, align: "C"}
	}
	return row{cells: cells, family: family, bold: true, fill: st.HeaderRowFill, color: st.HeaderRowText}
}

func lineItemColumns(gstActive bool) []column {
	if gstActive {
		return []column{
			{"Sr.\nNo.", 0.5 * inch, "C"},
			{"Description", 2.6 * inch, "L"},
			{"HSN/SAC", 1.0 * inch, "C"},
			{"Qty", 0.8 * inch, "R"},
			{"UOM", 0.6 * inch, "C"},
			{"Rate", 1.0 * inch, "R"},
			{"Amount", 1.2 * inch, "R"},
		}
	}
	return []column{
		{"Sr.\nNo.", 0.5 * inch, "C"},
		{"Description", 3.6 * inch, "L"},
		{"Qty", 0.8 * inch, "R"},
		{"UOM", 0.6 * inch, "C"},
		{"Rate", 1.0 * inch, "R"},
		{"Amount", 1.2 * inch, "R"},
	}
}

func summaryRow(cols int, label, value string, bold bool) row {
	return row{
		cells: []cell{
			{text: label, span: cols - 1, align: "R"},
			{text: value, span: 1, align: "R"},
		},
		bold: bold,
	}
}

// buildLineItemTable lays out the item rows followed by the summary rows.
func buildLineItemTable(lines []gst.LineResult, totals gst.TaxTotals, gstActive bool, st Style) *table {
	cols := lineItemColumns(gstActive)
	t := &table{
		cols:     cols,
		family:   st.BodyFamily,
		fontSize: 9,
		padX:     6,
		padY:     6,
		grid:     st.Grid,
	}
	t.header = headerRow(cols, st, st.HeaderFamily)

	for i, l := range lines {
		cells := []cell{
			{text: strconv.Itoa(i + 1), span: 1, align: cols[0].align},
			{text: l.Item.Description, span: 1, align: "L"},
		}
		if gstActive {
			cells = append(cells, cell{text: l.Item.HSN, span: 1, align: "C"})
		}
		cells = append(cells,
			cell{text: l.Item.Quantity.String(), span: 1, align: "R"},
			cell{text: l.Item.UOM, span: 1, align: "C"},
			cell{text: gst.FormatAmount(l.Item.Rate), span: 1, align: "R"},
			cell{text: gst.FormatAmount(l.Amount), span: 1, align: "R"},
		)
		t.body = append(t.body, row{cells: cells})
	}

	n := len(cols)
	t.body = append(t.body, summaryRow(n, "Taxable Value", gst.FormatAmount(totals.TaxableValue), st.BoldSummary))
	if gstActive {
		if totals.Jurisdiction == gst.Inter {
			t.body = append(t.body, summaryRow(n, "Add: IGST", gst.FormatAmount(totals.IGST), st.BoldSummary))
		} else {
			t.body = append(t.body,
				summaryRow(n, "Add: CGST", gst.FormatAmount(totals.CGST), st.BoldSummary),
				summaryRow(n, "Add: SGST", gst.FormatAmount(totals.SGST), st.BoldSummary),
			)
		}
	}
	grand := summaryRow(n, "Grand Total", "Rs. "+gst.FormatAmount(totals.GrandTotal), true)
	grand.fill = st.GrandTotalFill
	t.body = append(t.body, grand)
	return t
}

func rateLabel(r decimal.Decimal) string {
	return r.String() + "%"
}

// compactPadY is the HSN row padding on a page of its own.
const compactPadY = 2.0

// buildHSNTable lays out the HSN summary. The Total row is bold.
func buildHSNTable(rows []gst.HSNSummaryRow, st Style) *table {
	cols := []column{
		{"HSN/SAC", 1.2 * inch, "C"},
		{"Rate", 0.8 * inch, "C"},
		{"Taxable", 1.2 * inch, "R"},
		{"CGST", 1.0 * inch, "R"},
		{"SGST", 1.0 * inch, "R"},
		{"IGST", 1.0 * inch, "R"},
		{"Total", 1.2 * inch, "R"},
	}
	t := &table{
		cols:     cols,
		family:   st.BodyFamily,
		fontSize: 8,
		padX:     6,
		padY:     3,
		grid:     grey,
	}
	t.header = headerRow(cols, Style{HeaderRowFill: &whiteSmoke, HeaderRowText: black}, st.HeaderFamily)

	for _, r := range rows {
		rate := rateLabel(r.TaxRate)
		if r.IsTotal {
			rate = ""
		}
		values := []string{
			r.HSN,
			rate,
			gst.FormatAmount(r.Taxable),
			gst.FormatAmount(r.CGST),
			gst.FormatAmount(r.SGST),
			gst.FormatAmount(r.IGST),
			gst.FormatAmount(r.Total),
		}
		cells := make([]cell, len(values))
		for i, v := range values {
			cells[i] = cell{text: v, span: 1, align: cols[i].align}
		}
		t.body = append(t.body, row{cells: cells, bold: r.IsTotal})
	}
	return t
}
