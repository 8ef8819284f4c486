package invoicepdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type renderer struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	style Style
}

func newRenderer(in *Input, st Style) *renderer {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(true)

	created := in.GeneratedAt
	if created.IsZero() {
		created = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(created)
	pdf.SetTitle("Invoice "+in.Meta.InvoiceNumber, true)
	pdf.SetAuthor(in.Seller.BusinessName, true)
	pdf.SetCreator("hisaab", false)

	return &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), style: st}
}

// registerImage loads an optional asset and fits it into a w x h slot.
// Unreadable images are logged and skipped.
func (r *renderer) registerImage(name string, data []byte, maxW, maxH float64) *imageBox {
	if len(data) == 0 {
		return nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		log.Printf("invoicepdf: skipping %s image: %v", name, err)
		return nil
	}

	tp := strings.ToUpper(format)
	if tp == "JPEG" {
		tp = "JPG"
	}
	r.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: tp}, bytes.NewReader(data))
	if !r.pdf.Ok() {
		log.Printf("invoicepdf: skipping %s image: %v", name, r.pdf.Error())
		r.pdf.ClearError()
		return nil
	}

	scale := math.Min(maxW/float64(cfg.Width), maxH/float64(cfg.Height))
	return &imageBox{name: name, w: float64(cfg.Width) * scale, h: float64(cfg.Height) * scale}
}

func (r *renderer) setFont(f font) {
	r.pdf.SetFont(f.family, f.style, f.size)
}

func (r *renderer) draw(els []element) {
	for _, e := range els {
		switch e.kind {
		case textElement:
			if e.text == "" {
				continue
			}
			r.setFont(e.font)
			r.pdf.SetTextColor(e.color.r, e.color.g, e.color.b)
			s := r.tr(e.text)
			x := e.x
			switch e.align {
			case alignCenter:
				x -= r.pdf.GetStringWidth(s) / 2
			case alignRight:
				x -= r.pdf.GetStringWidth(s)
			}
			r.pdf.Text(x, e.y, s)
		case lineElement:
			r.pdf.SetDrawColor(e.color.r, e.color.g, e.color.b)
			r.pdf.SetLineWidth(e.line)
			r.pdf.Line(e.x, e.y, e.x+e.w, e.y)
		case rectElement:
			r.pdf.SetDrawColor(e.color.r, e.color.g, e.color.b)
			r.pdf.SetLineWidth(e.line)
			r.pdf.Rect(e.x, e.y, e.w, e.h, "D")
		case imageElement:
			r.pdf.ImageOptions(e.image, e.x, e.y, e.w, e.h, false, gofpdf.ImageOptions{}, 0, "")
		}
	}
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *renderer) drawRow(t *table, rw *row, x, y float64) {
	f := t.rowFont(rw)
	col := 0
	for _, c := range rw.cells {
		span := c.span
		if span < 1 {
			span = 1
		}
		w := 0.0
		for k := col; k < col+span && k < len(t.cols); k++ {
			w += t.cols[k].width
		}
		col += span

		if rw.fill != nil {
			r.pdf.SetFillColor(rw.fill.r, rw.fill.g, rw.fill.b)
			r.pdf.Rect(x, y, w, rw.height, "F")
		}
		r.pdf.SetDrawColor(t.grid.r, t.grid.g, t.grid.b)
		r.pdf.SetLineWidth(0.5)
		r.pdf.Rect(x, y, w, rw.height, "D")

		r.setFont(f)
		r.pdf.SetTextColor(rw.color.r, rw.color.g, rw.color.b)
		for i, line := range c.lines {
			baseline := y + t.padY + t.fontSize + float64(i)*t.leading()
			tx := x + t.padX
			switch c.align {
			case "R":
				tx = x + w - t.padX - r.pdf.GetStringWidth(line)
			case "C":
				tx = x + (w-r.pdf.GetStringWidth(line))/2
			}
			r.pdf.Text(tx, baseline, line)
		}
		x += w
	}
	r.pdf.SetTextColor(0, 0, 0)
}

// drawTable draws the header row then the given body rows, returning the height used.
func (r *renderer) drawTable(t *table, rows []int, x, y float64) float64 {
	top := y
	r.drawRow(t, &t.header, x, y)
	y += t.header.height
	for _, i := range rows {
		r.drawRow(t, &t.body[i], x, y)
		y += t.body[i].height
	}
	return y - top
}

// Render lays out and draws the invoice, then writes the PDF to w. Nothing is
// written to w unless the whole document rendered.
func Render(w io.Writer, in Input) (*Document, error) {
	doc, err := Layout(in)
	if err != nil {
		return nil, err
	}

	r := newRenderer(&in, doc.style)
	logo := r.registerImage(logoImage, in.Logo, 2*inch, 1*inch)
	sig := r.registerImage(signatureImage, in.Signature, 1.4*inch, 0.7*inch)

	allHSN := make([]int, 0)
	if doc.hsn != nil {
		for i := range doc.hsn.body {
			allHSN = append(allHSN, i)
		}
	}

	for _, p := range doc.Pages {
		r.pdf.AddPage()
		r.draw(headerElements(&in, doc.style, logo))
		if len(p.Rows) > 0 {
			r.drawTable(doc.items, p.Rows, TableX, HeaderBand)
		}
		if p.HSNSummary {
			hsn := doc.hsn
			if p.HSNOnly {
				hsn = doc.hsnAlone
			}
			r.drawTable(hsn, allHSN, TableX, HeaderBand+p.HSNOffset)
		}
		if p.HSNOnly {
			r.draw(compactFooterElements(&in, doc.style, p.Label))
		} else {
			r.draw(footerElements(&in, doc.style, sig, p.Label))
		}
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: writing output: %v", ErrRenderFailed, err)
	}
	return doc, nil
}
