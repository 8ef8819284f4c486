package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hisaab/internal/config"
	"hisaab/internal/csvexport"
	"hisaab/internal/domain"
	"hisaab/internal/gst"
	"hisaab/internal/invoicepdf"
	"hisaab/internal/notify"
	"hisaab/internal/port"
	"hisaab/internal/validator"
)

// LineItemInput is one invoice line. When ItemID is set, blank fields are
// filled from the item master.
type LineItemInput struct {
	ItemID      *uuid.UUID       `json:"item_id"`
	Description string           `json:"description"`
	HSN         string           `json:"hsn"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UOM         string           `json:"uom"`
	Rate        *decimal.Decimal `json:"rate"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// ShippingInput is a consignee address that differs from billing.
type ShippingInput struct {
	Name         string   `json:"name"`
	GSTIN        string   `json:"gstin"`
	AddressLines []string `json:"address_lines"`
}

// GenerateInvoiceInput is the DTO for generating or previewing an invoice.
type GenerateInvoiceInput struct {
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   string             `json:"invoice_date"`
	CustomerID    uuid.UUID          `json:"customer_id" binding:"required"`
	Shipping      *ShippingInput     `json:"shipping"`
	Items         []LineItemInput    `json:"items"`
	PaymentMode   domain.PaymentMode `json:"payment_mode"`
	Letterhead    *bool              `json:"letterhead"`
	SendEmail     *bool              `json:"send_email"`
}

// GenerateInvoiceResult is a saved invoice plus its ways of reaching the buyer.
type GenerateInvoiceResult struct {
	Invoice     *domain.Invoice `json:"invoice"`
	DownloadURL string          `json:"download_url,omitempty"`
	Links       notify.Links    `json:"links"`
	EmailSent   bool            `json:"email_sent"`
	Warnings    []string        `json:"warnings,omitempty"`
}

// PreviewResult is a rendered but unsaved invoice.
type PreviewResult struct {
	PDF       []byte        `json:"-"`
	PageCount int           `json:"page_count"`
	Totals    gst.TaxTotals `json:"totals"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// ShareResult holds fresh share links for a saved invoice.
type ShareResult struct {
	DownloadURL string       `json:"download_url"`
	Links       notify.Links `json:"links"`
}

// ShareLinker issues and verifies public invoice download links.
type ShareLinker interface {
	URL(invoiceID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}

// InvoiceSettings are the invoice service's configuration.
type InvoiceSettings struct {
	Bucket        string
	PresignExpiry int64
	KeyPrefix     string
	DateFormat    string
	Letterhead    bool
	SendEmail     bool
	Terms         []string
	CreditLine    string
}

// InvoiceSettingsFrom extracts InvoiceSettings from the application config.
func InvoiceSettingsFrom(cfg *config.Config) InvoiceSettings {
	return InvoiceSettings{
		Bucket:        cfg.S3.Bucket,
		PresignExpiry: cfg.S3.PresignExpiry,
		KeyPrefix:     cfg.Invoice.PDFKeyPrefix,
		DateFormat:    cfg.Invoice.DateFormat,
		Letterhead:    cfg.Invoice.Letterhead,
		SendEmail:     cfg.Invoice.SendEmail,
		Terms:         cfg.Invoice.Terms,
		CreditLine:    cfg.Invoice.CreditLine,
	}
}

// InvoiceService generates invoices and serves the invoice register.
type InvoiceService interface {
	Generate(ctx context.Context, input GenerateInvoiceInput) (*GenerateInvoiceResult, error)
	Preview(ctx context.Context, input GenerateInvoiceInput) (*PreviewResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	NextNumber(ctx context.Context) (string, error)
	GetPDFURL(ctx context.Context, id uuid.UUID) (string, error)
	GetSharedPDFURL(ctx context.Context, token string) (string, error)
	Share(ctx context.Context, id uuid.UUID) (*ShareResult, error)
	ExportCSV(ctx context.Context, filter port.InvoiceFilter, w io.Writer) error
}

type invoiceService struct {
	invoices  port.InvoiceRepository
	profiles  port.ProfileRepository
	customers port.CustomerRepository
	items     port.ItemRepository
	storage   port.ObjectStorage
	mailer    port.InvoiceMailer
	links     ShareLinker
	hsn       *validator.HSNLookup
	settings  InvoiceSettings
	now       func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation. hsn may be
// nil, in which case no HSN warnings are produced.
func NewInvoiceService(
	invoices port.InvoiceRepository,
	profiles port.ProfileRepository,
	customers port.CustomerRepository,
	items port.ItemRepository,
	storage port.ObjectStorage,
	mailer port.InvoiceMailer,
	links ShareLinker,
	hsn *validator.HSNLookup,
	settings InvoiceSettings,
) InvoiceService {
	return &invoiceService{
		invoices:  invoices,
		profiles:  profiles,
		customers: customers,
		items:     items,
		storage:   storage,
		mailer:    mailer,
		links:     links,
		hsn:       hsn,
		settings:  settings,
		now:       time.Now,
	}
}

// draft is a validated, rendered invoice that has not been stored yet.
type draft struct {
	profile  *domain.SellerProfile
	customer *domain.Customer
	buyer    domain.BuyerSnapshot
	number   string
	date     time.Time
	items    []gst.LineItem
	pos      string
	doc      *invoicepdf.Document
	pdf      []byte
	warnings []string
}

// resolveItems fills lines from the item master. A line without a rate needs
// an item to take its price from.
func (s *invoiceService) resolveItems(ctx context.Context, inputs []LineItemInput) ([]gst.LineItem, error) {
	var missing validator.FieldErrors
	for i := range inputs {
		if inputs[i].Rate == nil && inputs[i].ItemID == nil {
			missing = append(missing, validator.FieldError{Field: fmt.Sprintf("items[%d].rate", i), Message: "is required"})
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidLineItem, missing)
	}

	items := make([]gst.LineItem, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		li := gst.LineItem{
			Description: strings.TrimSpace(in.Description),
			HSN:         strings.TrimSpace(in.HSN),
			Quantity:    in.Quantity,
			UOM:         strings.TrimSpace(in.UOM),
		}
		if in.Rate != nil {
			li.Rate = *in.Rate
		}
		if in.TaxRate != nil {
			li.TaxRate = *in.TaxRate
		}

		if in.ItemID != nil {
			master, err := s.items.GetByID(ctx, *in.ItemID)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			if li.Description == "" {
				li.Description = master.Name
			}
			if li.HSN == "" {
				li.HSN = master.HSN
			}
			if li.UOM == "" {
				li.UOM = master.UOM
			}
			if in.Rate == nil {
				li.Rate = master.Price
			}
			if in.TaxRate == nil {
				li.TaxRate = master.TaxRate
			}
		}
		items = append(items, li)
	}
	return items, nil
}

// loadAsset fetches an optional branding image. Failures are logged and
// the invoice renders without the image.
func (s *invoiceService) loadAsset(ctx context.Context, kind, key string) []byte {
	if key == "" {
		return nil
	}
	data, err := s.storage.Download(ctx, s.settings.Bucket, key)
	if err != nil {
		log.Printf("invoiceService: skipping %s %s: %v", kind, key, err)
		return nil
	}
	return data
}

func renderError(err error) error {
	switch {
	case errors.Is(err, invoicepdf.ErrNoLineItems):
		return domain.ErrNoLineItems
	case errors.Is(err, invoicepdf.ErrInvalidLineItem):
		return fmt.Errorf("%w: %v", domain.ErrInvalidLineItem, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
}

func buyerSnapshot(c *domain.Customer, ship *ShippingInput) domain.BuyerSnapshot {
	b := domain.BuyerSnapshot{
		Name:         c.Name,
		GSTIN:        c.GSTIN,
		AddressLines: c.AddressLines(),
		State:        c.State,
		Mobile:       c.Mobile,
		Email:        c.Email,
	}
	if ship != nil && (strings.TrimSpace(ship.Name) != "" || len(ship.AddressLines) > 0) {
		var lines []string
		for _, l := range ship.AddressLines {
			if l = strings.TrimSpace(l); l != "" {
				lines = append(lines, l)
			}
		}
		b.Shipping = &domain.ShippingAddress{
			Name:         strings.TrimSpace(ship.Name),
			GSTIN:        upper(ship.GSTIN),
			AddressLines: lines,
		}
	}
	return b
}

func pdfSeller(p *domain.SellerProfile) invoicepdf.Seller {
	return invoicepdf.Seller{
		BusinessName:  p.BusinessName,
		Tagline:       p.Tagline,
		GSTRegistered: p.GSTRegistered,
		GSTIN:         p.GSTIN,
		PAN:           p.PAN,
		AddressLines:  p.AddressLines(),
		Mobile:        p.Mobile,
		Email:         p.Email,
		BankName:      p.BankName,
		BankBranch:    p.BankBranch,
		AccountNo:     p.AccountNo,
		IFSC:          p.IFSC,
		Theme:         invoicepdf.ParseTheme(p.Theme),
	}
}

func pdfBuyer(b *domain.BuyerSnapshot) invoicepdf.Buyer {
	out := invoicepdf.Buyer{
		Name:         b.Name,
		GSTIN:        b.GSTIN,
		AddressLines: b.AddressLines,
		Mobile:       b.Mobile,
		Email:        b.Email,
		State:        b.State,
	}
	if b.Shipping != nil {
		out.Shipping = &invoicepdf.Address{Name: b.Shipping.Name, GSTIN: b.Shipping.GSTIN, Lines: b.Shipping.AddressLines}
	}
	return out
}

// prepare runs everything short of storing: lookups, validation, tax and layout.
func (s *invoiceService) prepare(ctx context.Context, input GenerateInvoiceInput) (*draft, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if err := validator.LineItems(items); err != nil {
		return nil, err
	}
	date, err := parseDate(input.InvoiceDate, s.now())
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.InvoiceNumber)
	if number == "" {
		if number, err = s.NextNumber(ctx); err != nil {
			return nil, err
		}
	}

	d := &draft{
		profile:  profile,
		customer: customer,
		buyer:    buyerSnapshot(customer, input.Shipping),
		number:   number,
		date:     date,
		items:    items,
		warnings: s.hsn.Warnings(items),
	}

	seller := profile.Party()
	buyer := customer.Party()
	gstActive := profile.GSTRegistered
	j := gst.ClassifyJurisdiction(seller, buyer)
	if gstActive {
		d.pos = gst.PlaceOfSupply(seller, buyer)
	}

	letterhead := s.settings.Letterhead
	if input.Letterhead != nil {
		letterhead = *input.Letterhead
	}

	in := invoicepdf.Input{
		Seller: pdfSeller(profile),
		Buyer:  pdfBuyer(&d.buyer),
		Meta: invoicepdf.Meta{
			InvoiceNumber: number,
			Date:          date.Format(s.settings.DateFormat),
			PlaceOfSupply: d.pos,
		},
		Items:        items,
		Jurisdiction: j,
		GSTActive:    gstActive,
		Letterhead:   letterhead,
		Terms:        s.settings.Terms,
		CreditLine:   s.settings.CreditLine,
		GeneratedAt:  s.now(),
	}
	if !letterhead {
		in.Logo = s.loadAsset(ctx, "logo", profile.LogoKey)
	}
	in.Signature = s.loadAsset(ctx, "signature", profile.SignatureKey)

	var buf bytes.Buffer
	doc, err := invoicepdf.Render(&buf, in)
	if err != nil {
		return nil, renderError(err)
	}
	d.doc = doc
	d.pdf = buf.Bytes()
	return d, nil
}

func (s *invoiceService) Preview(ctx context.Context, input GenerateInvoiceInput) (*PreviewResult, error) {
	d, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{
		PDF:       d.pdf,
		PageCount: d.doc.PageCount(),
		Totals:    d.doc.Totals,
		Warnings:  d.warnings,
	}, nil
}

func (s *invoiceService) Generate(ctx context.Context, input GenerateInvoiceInput) (*GenerateInvoiceResult, error) {
	mode := input.PaymentMode
	if mode == "" {
		mode = domain.PaymentCash
	}
	if !domain.ValidPaymentModes[mode] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMode, mode)
	}

	d, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	// Reject a taken number before uploading anything.
	if _, err := s.invoices.GetByNumber(ctx, d.number); err == nil {
		return nil, domain.ErrDuplicateInvoiceNumber
	} else if !errors.Is(err, domain.ErrInvoiceNotFound) {
		return nil, err
	}

	itemsJSON, err := json.Marshal(d.items)
	if err != nil {
		return nil, fmt.Errorf("encoding items: %w", err)
	}
	buyerJSON, err := json.Marshal(d.buyer)
	if err != nil {
		return nil, fmt.Errorf("encoding buyer: %w", err)
	}

	id := uuid.New()
	key := fmt.Sprintf("%s/%s.pdf", s.settings.KeyPrefix, id)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.settings.Bucket,
		Key:         key,
		Body:        bytes.NewReader(d.pdf),
		ContentType: "application/pdf",
		Size:        int64(len(d.pdf)),
		Filename:    csvexport.SanitizeFilename(d.number) + ".pdf",
	})
	if err != nil {
		log.Printf("invoiceService.Generate: upload of %s failed: %v", d.number, err)
		return nil, domain.ErrUploadFailed
	}

	customerID := d.customer.ID
	totals := d.doc.Totals
	inv := &domain.Invoice{
		ID:            id,
		InvoiceNumber: d.number,
		InvoiceDate:   d.date,
		CustomerID:    &customerID,
		BuyerName:     d.customer.Name,
		Buyer:         buyerJSON,
		Items:         itemsJSON,
		GSTActive:     d.profile.GSTRegistered,
		Jurisdiction:  string(totals.Jurisdiction),
		PlaceOfSupply: d.pos,
		TaxableValue:  totals.TaxableValue,
		CGST:          totals.CGST,
		SGST:          totals.SGST,
		IGST:          totals.IGST,
		GrandTotal:    totals.GrandTotal,
		PaymentMode:   mode,
		PDFKey:        key,
		PageCount:     d.doc.PageCount(),
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		if delErr := s.storage.Delete(ctx, s.settings.Bucket, key); delErr != nil {
			log.Printf("invoiceService.Generate: orphaned %s: %v", key, delErr)
		}
		return nil, err
	}
	log.Printf("invoiceService.Generate: %s for %s, %d page(s), total %s",
		inv.InvoiceNumber, inv.BuyerName, inv.PageCount, inv.GrandTotal.StringFixed(2))

	result := &GenerateInvoiceResult{Invoice: inv, Warnings: d.warnings}
	result.DownloadURL = s.downloadURL(id)
	msg := s.message(d.profile, inv, &d.buyer, result.DownloadURL)
	result.Links = notify.BuildLinks(msg, d.buyer.Mobile, d.buyer.Email)

	sendEmail := s.settings.SendEmail
	if input.SendEmail != nil {
		sendEmail = *input.SendEmail
	}
	if sendEmail && d.buyer.Email != "" {
		err := s.mailer.SendInvoice(ctx, port.InvoiceEmail{
			ToEmail:     d.buyer.Email,
			ToName:      d.buyer.Name,
			Subject:     notify.Subject(msg),
			Body:        notify.Body(msg),
			DownloadURL: result.DownloadURL,
		})
		if err != nil {
			log.Printf("invoiceService.Generate: email for %s failed: %v", inv.InvoiceNumber, err)
		} else {
			result.EmailSent = true
		}
	}
	return result, nil
}

func (s *invoiceService) downloadURL(id uuid.UUID) string {
	if s.links == nil {
		return ""
	}
	u, err := s.links.URL(id)
	if err != nil {
		log.Printf("invoiceService: share link for %s: %v", id, err)
		return ""
	}
	return u
}

func (s *invoiceService) message(p *domain.SellerProfile, inv *domain.Invoice, b *domain.BuyerSnapshot, downloadURL string) notify.Invoice {
	return notify.Invoice{
		Number:      inv.InvoiceNumber,
		Date:        inv.InvoiceDate.Format(s.settings.DateFormat),
		BuyerName:   b.Name,
		FirmName:    p.BusinessName,
		FirmMobile:  p.Mobile,
		GrandTotal:  inv.GrandTotal,
		DownloadURL: downloadURL,
		Footer:      s.settings.CreditLine,
	}
}

// NextNumber proposes the next free invoice number, INV-0001 style.
func (s *invoiceService) NextNumber(ctx context.Context) (string, error) {
	summary, err := s.invoices.Summary(ctx)
	if err != nil {
		return "", err
	}
	n := summary.InvoiceCount + 1
	for tries := 0; tries < 100; tries++ {
		number := fmt.Sprintf("INV-%04d", n+tries)
		_, err := s.invoices.GetByNumber(ctx, number)
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return number, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free invoice number after INV-%04d", n+99)
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoices.List(ctx, filter, offset, limit)
}

func (s *invoiceService) GetPDFURL(ctx context.Context, id uuid.UUID) (string, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if inv.PDFKey == "" {
		return "", domain.ErrPDFNotAvailable
	}
	return s.storage.GetPresignedURL(ctx, s.settings.Bucket, inv.PDFKey, s.settings.PresignExpiry)
}

func (s *invoiceService) GetSharedPDFURL(ctx context.Context, token string) (string, error) {
	if s.links == nil {
		return "", domain.ErrInvalidShareToken
	}
	id, err := s.links.Parse(token)
	if err != nil {
		return "", err
	}
	return s.GetPDFURL(ctx, id)
}

func (s *invoiceService) Share(ctx context.Context, id uuid.UUID) (*ShareResult, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	buyer, err := inv.BuyerDetails()
	if err != nil {
		return nil, err
	}
	if buyer.Name == "" {
		buyer.Name = inv.BuyerName
	}

	res := &ShareResult{DownloadURL: s.downloadURL(id)}
	msg := s.message(profile, inv, buyer, res.DownloadURL)
	res.Links = notify.BuildLinks(msg, buyer.Mobile, buyer.Email)
	return res, nil
}

func (s *invoiceService) ExportCSV(ctx context.Context, filter port.InvoiceFilter, w io.Writer) error {
	invoices, err := s.invoices.ListAll(ctx, filter)
	if err != nil {
		return err
	}
	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w, s.settings.DateFormat)
	if err := cw.WriteInvoiceHeader(); err != nil {
		return err
	}
	if err := cw.WriteInvoices(invoices); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
