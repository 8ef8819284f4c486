package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hisaab/internal/domain"
	"hisaab/internal/gst"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// invoiceColumns is the invoice register header row.
var invoiceColumns = []string{
	"Invoice Number",
	"Invoice Date",
	"Buyer Name",
	"Buyer GSTIN",
	"Buyer State",
	"Place of Supply",
	"Supply Type",
	"GST Applied",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
	"Grand Total",
	"Payment Mode",
	"Line Item Count",
	"Pages",
	"Created At",
}

// inwardColumns is the inward supply register header row.
var inwardColumns = []string{
	"Supply Date",
	"Supplier",
	"Supplier GSTIN",
	"Bill Number",
	"Value",
	"Note",
}

// Writer wraps csv.Writer for exporting registers as CSV.
type Writer struct {
	csv        *csv.Writer
	dateFormat string
}

// NewWriter creates a Writer that writes CSV to w, printing dates with dateFormat.
func NewWriter(w io.Writer, dateFormat string) *Writer {
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	return &Writer{csv: csv.NewWriter(w), dateFormat: dateFormat}
}

// WriteInvoiceHeader writes the invoice register header row.
func (w *Writer) WriteInvoiceHeader() error {
	return w.csv.Write(invoiceColumns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(w.invoiceRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteInwardHeader writes the inward supply register header row.
func (w *Writer) WriteInwardHeader() error {
	return w.csv.Write(inwardColumns)
}

// WriteInwardSupplies writes one row per purchase bill.
func (w *Writer) WriteInwardSupplies(supplies []domain.InwardSupply) error {
	for i := range supplies {
		s := &supplies[i]
		row := []string{
			s.SupplyDate.Format(w.dateFormat),
			s.Supplier,
			s.SupplierGSTIN,
			s.BillNumber,
			formatMoney(s.Value),
			s.Note,
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// invoiceRow fills the register columns. Buyer GSTIN, state and the item
// count come from the stored snapshots and stay blank if those cannot be read.
func (w *Writer) invoiceRow(inv *domain.Invoice) []string {
	row := make([]string, len(invoiceColumns))

	row[0] = inv.InvoiceNumber
	row[1] = inv.InvoiceDate.Format(w.dateFormat)
	row[2] = inv.BuyerName
	row[5] = gst.PlaceOfSupplyLabel(inv.PlaceOfSupply)
	row[6] = supplyType(inv)
	row[7] = formatBool(inv.GSTActive)
	row[8] = formatMoney(inv.TaxableValue)
	row[9] = formatMoney(inv.CGST)
	row[10] = formatMoney(inv.SGST)
	row[11] = formatMoney(inv.IGST)
	row[12] = formatMoney(inv.TotalTax())
	row[13] = formatMoney(inv.GrandTotal)
	row[14] = string(inv.PaymentMode)
	row[16] = strconv.Itoa(inv.PageCount)
	row[17] = inv.CreatedAt.Format(time.RFC3339)

	if buyer, err := inv.BuyerDetails(); err == nil {
		row[3] = buyer.GSTIN
		row[4] = buyer.State
	}
	if items, err := inv.LineItems(); err == nil {
		row[15] = strconv.Itoa(len(items))
	}
	return row
}

func supplyType(inv *domain.Invoice) string {
	if !inv.GSTActive {
		return ""
	}
	if inv.Jurisdiction == string(gst.Inter) {
		return "Inter-State"
	}
	return "Intra-State"
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition: anything
// outside [a-zA-Z0-9_-] becomes "_", runs collapse, and the result is capped at 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns "{sanitized prefix}_{YYYY-MM-DD}.{ext}" for on.
func BuildFilename(prefix, ext string, on time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(prefix), on.Format("2006-01-02"), ext)
}
