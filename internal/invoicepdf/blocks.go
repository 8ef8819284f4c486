package invoicepdf

import (
	"strings"

	"hisaab/internal/gst"
)

type elementKind int

const (
	textElement elementKind = iota
	lineElement
	rectElement
	imageElement
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// element is one positioned drawing instruction. Coordinates are measured
// from the top-left corner; for text, y is the baseline.
type element struct {
	kind  elementKind
	x, y  float64
	w, h  float64
	text  string
	font  font
	align align
	color rgb
	line  float64
	image string
}

func text(x, y float64, s string, f font, a align) element {
	return element{kind: textElement, x: x, y: y, text: s, font: f, align: a}
}

func hline(x1, x2, y, width float64, c rgb) element {
	return element{kind: lineElement, x: x1, y: y, w: x2 - x1, line: width, color: c}
}

// Image slots registered by the renderer.
const (
	logoImage      = "logo"
	signatureImage = "signature"
)

// imageBox is a registered asset scaled to fit its slot.
type imageBox struct {
	name string
	w, h float64
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func contactLine(mobile, email string, sep string) string {
	var parts []string
	if mobile != "" {
		parts = append(parts, "M: "+mobile)
	}
	if email != "" {
		parts = append(parts, "E: "+email)
	}
	return strings.Join(parts, sep)
}

func partyBlock(x, y float64, title, name, gstin string, gstActive bool, lines []string, contact string, st Style) []element {
	bold := font{st.HeaderFamily, "B", 10}
	body := font{st.BodyFamily, "", 9}

	els := []element{
		text(x, y, title, bold, alignLeft),
		text(x, y+15, name, font{st.BodyFamily, "B", 9}, alignLeft),
	}
	cy := y + 30
	if gstActive {
		if gstin == "" {
			gstin = "URP"
		}
		els = append(els, text(x, cy, "GSTIN: "+gstin, body, alignLeft))
		cy += 15
	}
	if len(lines) > 3 {
		lines = lines[:3]
	}
	for _, l := range lines {
		els = append(els, text(x, cy, l, body, alignLeft))
		cy += 12
	}
	if contact != "" {
		els = append(els, text(x, cy, contact, body, alignLeft))
	}
	return els
}

// headerElements describes everything above the table area.
func headerElements(in *Input, st Style, logo *imageBox) []element {
	var els []element
	s := in.Seller
	centerX := PageWidth/2 + 20

	if !in.Letterhead {
		if st.BorderedHeader {
			els = append(els, element{kind: rectElement, x: 20, y: 20, w: PageWidth - 40, h: 140, line: 3, color: st.Accent})
		}
		if logo != nil {
			els = append(els, element{kind: imageElement, x: 30, y: 28, w: logo.w, h: logo.h, image: logo.name})
		}

		name := text(centerX, 50, s.BusinessName, font{st.HeaderFamily, "B", 18}, alignCenter)
		name.color = st.Accent
		els = append(els, name)
		if s.Tagline != "" {
			els = append(els, text(centerX, 65, s.Tagline, font{st.BodyFamily, "I", 10}, alignCenter))
		}

		idLine := "PAN: " + s.PAN
		if in.GSTActive {
			idLine = "GSTIN: " + s.GSTIN
		}
		lines := append([]string{idLine}, nonEmpty(s.AddressLines...)...)
		if c := contactLine(s.Mobile, s.Email, " | "); c != "" {
			lines = append(lines, c)
		}
		y := 80.0
		for _, l := range lines {
			els = append(els, text(centerX, y, l, font{st.BodyFamily, "", 9}, alignCenter))
			y += 12
		}
	}

	title := "INVOICE"
	if in.GSTActive {
		title = "TAX INVOICE"
	}
	els = append(els, text(PageWidth/2, 160, title, font{st.HeaderFamily, "B", 14}, alignCenter))
	if st.TitleRule && !in.Letterhead {
		els = append(els, hline(30, PageWidth-30, 165, 1, black))
	}

	b := in.Buyer
	els = append(els, partyBlock(40, 190, "Bill To:", b.Name, b.GSTIN, in.GSTActive,
		nonEmpty(b.AddressLines...), contactLine(b.Mobile, b.Email, "  "), st)...)
	if ship := in.shipTo(); ship != nil {
		els = append(els, partyBlock(250, 190, "Ship To:", ship.Name, ship.GSTIN, in.GSTActive,
			nonEmpty(ship.Lines...), "", st)...)
	}

	body := font{st.BodyFamily, "", 9}
	els = append(els,
		text(400, 190, "Invoice Details:", font{st.HeaderFamily, "B", 10}, alignLeft),
		text(400, 205, "Inv No: "+in.Meta.InvoiceNumber, body, alignLeft),
		text(400, 220, "Date: "+in.Meta.Date, body, alignLeft),
	)
	if in.GSTActive && in.Meta.PlaceOfSupply != "" {
		els = append(els, text(400, 235, "POS: "+gst.PlaceOfSupplyLabel(in.Meta.PlaceOfSupply), body, alignLeft))
	}
	return els
}

// fromBottom converts a distance above the bottom edge to a top-based y.
func fromBottom(y float64) float64 { return PageHeight - y }

// footerElements describes the bottom band of one page.
func footerElements(in *Input, st Style, signature *imageBox, label string) []element {
	s := in.Seller
	body := font{st.BodyFamily, "", 9}

	els := []element{
		hline(30, PageWidth-30, fromBottom(220), 1, black),
		text(40, fromBottom(205), "Bank Details:", font{st.HeaderFamily, "B", 10}, alignLeft),
		text(40, fromBottom(190), "Bank: "+s.BankName, body, alignLeft),
		text(40, fromBottom(178), "Branch: "+s.BankBranch, body, alignLeft),
		text(40, fromBottom(166), "A/c No: "+s.AccountNo, body, alignLeft),
		text(40, fromBottom(154), "IFSC: "+s.IFSC, body, alignLeft),
		text(PageWidth-40, fromBottom(180), "For, "+s.BusinessName, font{st.HeaderFamily, "B", 10}, alignRight),
	}
	if signature != nil {
		els = append(els, element{
			kind: imageElement, x: PageWidth - 160, y: fromBottom(125) - signature.h,
			w: signature.w, h: signature.h, image: signature.name,
		})
	}
	els = append(els, text(PageWidth-40, fromBottom(120), "Authorized Signatory", body, alignRight))

	return append(els, compactFooterElements(in, st, label)...)
}

// compactFooterElements is the terms, page label and credit line. An HSN-only
// page prints just these.
func compactFooterElements(in *Input, st Style, label string) []element {
	small := font{st.BodyFamily, "", 7}
	var els []element
	y := 50.0
	for _, t := range in.terms() {
		els = append(els, text(40, fromBottom(y), t, small, alignLeft))
		y -= 10
	}

	els = append(els, text(PageWidth-40, fromBottom(25), label, font{st.BodyFamily, "", 8}, alignRight))
	credit := text(PageWidth/2, fromBottom(15), in.creditLine(), small, alignCenter)
	credit.color = grey
	return append(els, credit)
}
