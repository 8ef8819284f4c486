package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"hisaab/internal/gst"
	"hisaab/internal/invoicepdf"
)

type sellerFile struct {
	BusinessName  string   `json:"business_name"`
	Tagline       string   `json:"tagline"`
	GSTRegistered bool     `json:"gst_registered"`
	GSTIN         string   `json:"gstin"`
	PAN           string   `json:"pan"`
	Address       []string `json:"address"`
	State         string   `json:"state"`
	Mobile        string   `json:"mobile"`
	Email         string   `json:"email"`
	BankName      string   `json:"bank_name"`
	BankBranch    string   `json:"bank_branch"`
	AccountNo     string   `json:"account_no"`
	IFSC          string   `json:"ifsc"`
	Theme         string   `json:"theme"`
}

type shippingFile struct {
	Name    string   `json:"name"`
	GSTIN   string   `json:"gstin"`
	Address []string `json:"address"`
}

type buyerFile struct {
	Name     string        `json:"name"`
	GSTIN    string        `json:"gstin"`
	Address  []string      `json:"address"`
	State    string        `json:"state"`
	Mobile   string        `json:"mobile"`
	Email    string        `json:"email"`
	Shipping *shippingFile `json:"shipping"`
}

// lineFile keeps Rate a pointer so an absent rate is an error rather than zero.
type lineFile struct {
	Description string           `json:"description"`
	HSN         string           `json:"hsn"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UOM         string           `json:"uom"`
	Rate        *decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal  `json:"tax_rate"`
}

// invoiceFile is the JSON document accepted by every command.
type invoiceFile struct {
	Seller        sellerFile     `json:"seller"`
	Buyer         buyerFile      `json:"buyer"`
	InvoiceNumber string         `json:"invoice_number"`
	Date          string         `json:"date"`
	Items         []lineFile     `json:"items"`
	// Jurisdiction overrides the state comparison when set to "intra" or "inter".
	Jurisdiction string   `json:"jurisdiction"`
	Letterhead   bool     `json:"letterhead"`
	Terms        []string `json:"terms"`
}

func readInvoiceFile(path string) (*invoiceFile, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	return decodeInvoiceFile(r)
}

func decodeInvoiceFile(r io.Reader) (*invoiceFile, error) {
	var doc invoiceFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &doc, nil
}

func (f *invoiceFile) sellerParty() gst.Party {
	return gst.Party{GSTRegistered: f.Seller.GSTRegistered, GSTIN: f.Seller.GSTIN, PAN: f.Seller.PAN, State: f.Seller.State}
}

func (f *invoiceFile) buyerParty() gst.Party {
	return gst.Party{GSTRegistered: f.Buyer.GSTIN != "", GSTIN: f.Buyer.GSTIN, State: f.Buyer.State}
}

func (f *invoiceFile) lineItems() ([]gst.LineItem, error) {
	items := make([]gst.LineItem, 0, len(f.Items))
	for i, l := range f.Items {
		if l.Rate == nil {
			return nil, fmt.Errorf("items[%d].rate is required", i)
		}
		items = append(items, gst.LineItem{
			Description: l.Description,
			HSN:         l.HSN,
			Quantity:    l.Quantity,
			UOM:         l.UOM,
			Rate:        *l.Rate,
			TaxRate:     l.TaxRate,
		})
	}
	return items, nil
}

func (f *invoiceFile) jurisdiction() (gst.Jurisdiction, error) {
	switch strings.ToLower(strings.TrimSpace(f.Jurisdiction)) {
	case "":
		return gst.ClassifyJurisdiction(f.sellerParty(), f.buyerParty()), nil
	case string(gst.Intra):
		return gst.Intra, nil
	case string(gst.Inter):
		return gst.Inter, nil
	default:
		return "", fmt.Errorf("unknown jurisdiction %q", f.Jurisdiction)
	}
}

// toInput builds the render input. Unregistered sellers print no tax.
func (f *invoiceFile) toInput() (invoicepdf.Input, error) {
	j, err := f.jurisdiction()
	if err != nil {
		return invoicepdf.Input{}, err
	}
	items, err := f.lineItems()
	if err != nil {
		return invoicepdf.Input{}, err
	}

	in := invoicepdf.Input{
		Seller: invoicepdf.Seller{
			BusinessName:  f.Seller.BusinessName,
			Tagline:       f.Seller.Tagline,
			GSTRegistered: f.Seller.GSTRegistered,
			GSTIN:         f.Seller.GSTIN,
			PAN:           f.Seller.PAN,
			AddressLines:  f.Seller.Address,
			Mobile:        f.Seller.Mobile,
			Email:         f.Seller.Email,
			BankName:      f.Seller.BankName,
			BankBranch:    f.Seller.BankBranch,
			AccountNo:     f.Seller.AccountNo,
			IFSC:          f.Seller.IFSC,
			Theme:         invoicepdf.ParseTheme(f.Seller.Theme),
		},
		Buyer: invoicepdf.Buyer{
			Name:         f.Buyer.Name,
			GSTIN:        f.Buyer.GSTIN,
			AddressLines: f.Buyer.Address,
			Mobile:       f.Buyer.Mobile,
			Email:        f.Buyer.Email,
			State:        f.Buyer.State,
		},
		Meta: invoicepdf.Meta{
			InvoiceNumber: f.InvoiceNumber,
			Date:          f.Date,
			PlaceOfSupply: gst.PlaceOfSupply(f.sellerParty(), f.buyerParty()),
		},
		Items:        items,
		Jurisdiction: j,
		GSTActive:    f.Seller.GSTRegistered,
		Letterhead:   f.Letterhead,
		Terms:        f.Terms,
	}
	if s := f.Buyer.Shipping; s != nil {
		in.Buyer.Shipping = &invoicepdf.Address{Name: s.Name, GSTIN: s.GSTIN, Lines: s.Address}
	}
	return in, nil
}
