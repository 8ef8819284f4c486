package invoicepdf

import (
	"errors"
	"time"

	"hisaab/internal/gst"
)

// Page geometry in points. Bands are fixed; only table rows are measured.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	HeaderBand = 300.0
	FooterBand = 230.0
	TableX     = 30.0
	HSNGap     = 20.0

	UsableHeight = PageHeight - HeaderBand - FooterBand

	// An HSN-only page keeps the terms and page label but drops the bank and
	// signature block, so its table may run down to this margin.
	HSNPageFooter = 60.0
	HSNPageHeight = PageHeight - HeaderBand - HSNPageFooter
)

var (
	ErrNoLineItems     = errors.New("invoice has no line items")
	ErrInvalidLineItem = errors.New("line item has invalid numbers")
	ErrRowTooTall      = errors.New("table row does not fit on an empty page")
	ErrLayoutOverflow  = errors.New("hsn summary does not fit on a page of its own")
	ErrRenderFailed    = errors.New("pdf rendering failed")
)

// DefaultTerms are printed at the bottom of every page.
var DefaultTerms = []string{
	"(1) We declare that this invoice shows the actual price of the goods/services described.",
	"(2) Subject to Local Jurisdiction.",
	"(3) Our responsibility ceases as soon as goods are delivered.",
}

// DefaultCreditLine is the small print under the terms.
const DefaultCreditLine = "This document is generated using HisaabKeeper."

// Seller is the issuing business as printed on the invoice.
type Seller struct {
	BusinessName  string
	Tagline       string
	GSTRegistered bool
	GSTIN         string
	PAN           string
	AddressLines  []string
	Mobile        string
	Email         string
	BankName      string
	BankBranch    string
	AccountNo     string
	IFSC          string
	Theme         Theme
}

// Address is a named postal block, used for shipping.
type Address struct {
	Name  string
	GSTIN string
	Lines []string
}

// Buyer is the billed party.
type Buyer struct {
	Name         string
	GSTIN        string
	AddressLines []string
	Mobile       string
	Email        string
	State        string
	Shipping     *Address
}

// Meta identifies the invoice.
type Meta struct {
	InvoiceNumber string
	Date          string
	// PlaceOfSupply is the two-digit state code; the header prints its label.
	PlaceOfSupply string
}

// Input is everything one render needs. It is read, never modified.
type Input struct {
	Seller       Seller
	Buyer        Buyer
	Meta         Meta
	Items        []gst.LineItem
	Jurisdiction gst.Jurisdiction
	GSTActive    bool
	Letterhead   bool

	// Optional PNG/JPEG/GIF bytes. Unreadable images are skipped.
	Logo      []byte
	Signature []byte

	Terms      []string
	CreditLine string

	// GeneratedAt is stamped as the PDF creation date. Zero means the Unix epoch.
	GeneratedAt time.Time
}

func (in *Input) terms() []string {
	if len(in.Terms) > 0 {
		return in.Terms
	}
	return DefaultTerms
}

func (in *Input) creditLine() string {
	if in.CreditLine != "" {
		return in.CreditLine
	}
	return DefaultCreditLine
}

// shipTo returns the shipping block when it was given and differs from billing.
func (in *Input) shipTo() *Address {
	s := in.Buyer.Shipping
	if s == nil || (s.Name == "" && len(s.Lines) == 0) {
		return nil
	}
	if s.Name == in.Buyer.Name && s.GSTIN == in.Buyer.GSTIN && equalLines(s.Lines, in.Buyer.AddressLines) {
		return nil
	}
	return s
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
