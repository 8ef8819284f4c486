package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hisaab/internal/gst"
)

// SellerProfile is the single business that issues invoices.
type SellerProfile struct {
	BusinessName  string    `db:"business_name" json:"business_name"`
	Tagline       string    `db:"tagline" json:"tagline"`
	GSTRegistered bool      `db:"gst_registered" json:"gst_registered"`
	GSTIN         string    `db:"gstin" json:"gstin"`
	PAN           string    `db:"pan" json:"pan"`
	Address1      string    `db:"address1" json:"address1"`
	Address2      string    `db:"address2" json:"address2"`
	District      string    `db:"district" json:"district"`
	State         string    `db:"state" json:"state"`
	Pincode       string    `db:"pincode" json:"pincode"`
	Mobile        string    `db:"mobile" json:"mobile"`
	Email         string    `db:"email" json:"email"`
	Theme         string    `db:"theme" json:"theme"`
	BankName      string    `db:"bank_name" json:"bank_name"`
	BankBranch    string    `db:"bank_branch" json:"bank_branch"`
	AccountNo     string    `db:"account_no" json:"account_no"`
	IFSC          string    `db:"ifsc" json:"ifsc"`
	UPI           string    `db:"upi" json:"upi"`
	LogoKey       string    `db:"logo_key" json:"logo_key"`
	SignatureKey  string    `db:"signature_key" json:"signature_key"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// AddressLines returns the printable address, ending with "District, State - Pincode".
func (p *SellerProfile) AddressLines() []string {
	var lines []string
	for _, l := range []string{p.Address1, p.Address2} {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	var region []string
	for _, part := range []string{p.District, p.State} {
		if strings.TrimSpace(part) != "" {
			region = append(region, part)
		}
	}
	last := strings.Join(region, ", ")
	if p.Pincode != "" {
		if last != "" {
			last += " - "
		}
		last += p.Pincode
	}
	if last != "" {
		lines = append(lines, last)
	}
	return lines
}

// Party returns the seller's tax identity.
func (p *SellerProfile) Party() gst.Party {
	return gst.Party{GSTRegistered: p.GSTRegistered, GSTIN: p.GSTIN, PAN: p.PAN, State: p.State}
}

// Customer is a buyer in the customer master.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	Address1  string    `db:"address1" json:"address1"`
	Address2  string    `db:"address2" json:"address2"`
	Address3  string    `db:"address3" json:"address3"`
	State     string    `db:"state" json:"state"`
	Mobile    string    `db:"mobile" json:"mobile"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AddressLines returns the non-empty address lines.
func (c *Customer) AddressLines() []string {
	var lines []string
	for _, l := range []string{c.Address1, c.Address2, c.Address3} {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Party returns the customer's tax identity.
func (c *Customer) Party() gst.Party {
	return gst.Party{GSTRegistered: c.GSTIN != "", GSTIN: c.GSTIN, State: c.State}
}

// Item is a product or service in the item master.
type Item struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	HSN       string          `db:"hsn" json:"hsn"`
	UOM       string          `db:"uom" json:"uom"`
	Price     decimal.Decimal `db:"price" json:"price"`
	TaxRate   decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// ShippingAddress is the consignee block of an invoice.
type ShippingAddress struct {
	Name         string   `json:"name"`
	GSTIN        string   `json:"gstin"`
	AddressLines []string `json:"address_lines"`
}

// BuyerSnapshot freezes the buyer as printed on an invoice.
type BuyerSnapshot struct {
	Name         string           `json:"name"`
	GSTIN        string           `json:"gstin"`
	AddressLines []string         `json:"address_lines"`
	State        string           `json:"state"`
	Mobile       string           `json:"mobile"`
	Email        string           `json:"email"`
	Shipping     *ShippingAddress `json:"shipping,omitempty"`
}

// Invoice is a saved, immutable sales invoice.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   time.Time       `db:"invoice_date" json:"invoice_date"`
	CustomerID    *uuid.UUID      `db:"customer_id" json:"customer_id,omitempty"`
	BuyerName     string          `db:"buyer_name" json:"buyer_name"`
	Buyer         json.RawMessage `db:"buyer" json:"buyer"`
	Items         json.RawMessage `db:"items" json:"items"`
	GSTActive     bool            `db:"gst_active" json:"gst_active"`
	Jurisdiction  string          `db:"jurisdiction" json:"jurisdiction"`
	PlaceOfSupply string          `db:"place_of_supply" json:"place_of_supply"` // state code, e.g. "24"
	TaxableValue  decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	CGST          decimal.Decimal `db:"cgst" json:"cgst"`
	SGST          decimal.Decimal `db:"sgst" json:"sgst"`
	IGST          decimal.Decimal `db:"igst" json:"igst"`
	GrandTotal    decimal.Decimal `db:"grand_total" json:"grand_total"`
	PaymentMode   PaymentMode     `db:"payment_mode" json:"payment_mode"`
	PDFKey        string          `db:"pdf_key" json:"-"`
	PageCount     int             `db:"page_count" json:"page_count"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// LineItems decodes the stored line items.
func (inv *Invoice) LineItems() ([]gst.LineItem, error) {
	var items []gst.LineItem
	if len(inv.Items) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(inv.Items, &items); err != nil {
		return nil, fmt.Errorf("decoding items of invoice %s: %w", inv.InvoiceNumber, err)
	}
	return items, nil
}

// BuyerDetails decodes the stored buyer snapshot.
func (inv *Invoice) BuyerDetails() (*BuyerSnapshot, error) {
	var b BuyerSnapshot
	if len(inv.Buyer) == 0 {
		return &b, nil
	}
	if err := json.Unmarshal(inv.Buyer, &b); err != nil {
		return nil, fmt.Errorf("decoding buyer of invoice %s: %w", inv.InvoiceNumber, err)
	}
	return &b, nil
}

// TotalTax is CGST + SGST + IGST.
func (inv *Invoice) TotalTax() decimal.Decimal {
	return inv.CGST.Add(inv.SGST).Add(inv.IGST)
}

// Receipt is money received from a customer against its invoices.
type Receipt struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	CustomerID  uuid.UUID       `db:"customer_id" json:"customer_id"`
	ReceiptDate time.Time       `db:"receipt_date" json:"receipt_date"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Mode        PaymentMode     `db:"mode" json:"mode"`
	Note        string          `db:"note" json:"note"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// CustomerBalance is a customer's ledger position.
type CustomerBalance struct {
	CustomerID   uuid.UUID       `db:"customer_id" json:"customer_id"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	Billed       decimal.Decimal `db:"billed" json:"billed"`
	Received     decimal.Decimal `db:"received" json:"received"`
	Pending      decimal.Decimal `db:"-" json:"pending"`
}

// InwardSupply is a purchase bill received from a supplier.
type InwardSupply struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	SupplyDate    time.Time       `db:"supply_date" json:"supply_date"`
	Supplier      string          `db:"supplier" json:"supplier"`
	SupplierGSTIN string          `db:"supplier_gstin" json:"supplier_gstin"`
	BillNumber    string          `db:"bill_number" json:"bill_number"`
	Value         decimal.Decimal `db:"value" json:"value"`
	Note          string          `db:"note" json:"note"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// SalesSummary aggregates the invoice register.
type SalesSummary struct {
	InvoiceCount int             `db:"invoice_count" json:"invoice_count"`
	TotalSales   decimal.Decimal `db:"total_sales" json:"total_sales"`
	TotalTax     decimal.Decimal `db:"total_tax" json:"total_tax"`
}

// Dashboard is the landing view: totals and the latest invoices.
type Dashboard struct {
	SalesSummary
	Received decimal.Decimal `json:"received"`
	Pending  decimal.Decimal `json:"pending"`
	Recent   []Invoice       `json:"recent"`
}
