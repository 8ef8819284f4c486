package validator

import (
	"fmt"
	"strings"

	"hisaab/internal/domain"
	"hisaab/internal/gst"
)

// Profile checks the seller profile. Registered sellers need a GSTIN whose
// state code is known; unregistered sellers may carry a PAN instead.
func Profile(p *domain.SellerProfile) error {
	var errs FieldErrors
	errs.required("business_name", p.BusinessName)
	errs.required("state", p.State)

	if p.GSTRegistered {
		errs.required("gstin", p.GSTIN)
		errs.match("gstin", p.GSTIN, "GSTIN", gstinPattern)
		if GSTIN(p.GSTIN) && !gst.ValidStateCode(p.GSTIN[:2]) {
			errs.add("gstin", "state code %s is unknown", p.GSTIN[:2])
		}
	} else {
		errs.match("pan", p.PAN, "PAN", panPattern)
	}

	errs.match("pincode", p.Pincode, "pincode", pincodePattern)
	errs.match("mobile", p.Mobile, "mobile number", mobilePattern)
	errs.match("email", p.Email, "e-mail address", emailPattern)
	errs.match("account_no", p.AccountNo, "account number", acctPattern)
	errs.match("ifsc", p.IFSC, "IFSC", ifscPattern)
	errs.match("upi", p.UPI, "UPI id", upiPattern)
	return errs.wrap(domain.ErrInvalidProfile)
}

// Customer checks a customer master record.
func Customer(c *domain.Customer) error {
	var errs FieldErrors
	errs.required("name", c.Name)
	errs.match("gstin", c.GSTIN, "GSTIN", gstinPattern)
	errs.match("mobile", c.Mobile, "mobile number", mobilePattern)
	errs.match("email", c.Email, "e-mail address", emailPattern)
	return errs.wrap(domain.ErrInvalidCustomer)
}

// Item checks an item master record.
func Item(it *domain.Item) error {
	var errs FieldErrors
	errs.required("name", it.Name)
	errs.match("hsn", it.HSN, "HSN code", hsnPattern)
	if it.Price.IsNegative() {
		errs.add("price", "must not be negative")
	}
	if it.TaxRate.IsNegative() || it.TaxRate.GreaterThan(gst.MaxTaxRate) {
		errs.add("tax_rate", "must be between 0 and %s", gst.MaxTaxRate)
	}
	return errs.wrap(domain.ErrInvalidLineItem)
}

// LineItems checks invoice lines before any tax is computed.
func LineItems(items []gst.LineItem) error {
	if len(items) == 0 {
		return domain.ErrNoLineItems
	}
	var errs FieldErrors
	for i := range items {
		it := &items[i]
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

		errs.required(field("description"), it.Description)
		errs.match(field("hsn"), strings.TrimSpace(it.HSN), "HSN code", hsnPattern)
		if !it.Quantity.IsPositive() {
			errs.add(field("quantity"), "must be greater than zero")
		}
		if it.Rate.IsNegative() {
			errs.add(field("rate"), "must not be negative")
		}
		if it.TaxRate.IsNegative() || it.TaxRate.GreaterThan(gst.MaxTaxRate) {
			errs.add(field("tax_rate"), "must be between 0 and %s", gst.MaxTaxRate)
		}
	}
	return errs.wrap(domain.ErrInvalidLineItem)
}

// Receipt checks a payment received against a customer.
func Receipt(r *domain.Receipt) error {
	if !r.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if r.Mode != "" && !domain.ValidPaymentModes[r.Mode] {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMode, r.Mode)
	}
	return nil
}

// InwardSupply checks a purchase bill.
func InwardSupply(s *domain.InwardSupply) error {
	if !s.Value.IsPositive() {
		return domain.ErrInvalidAmount
	}
	var errs FieldErrors
	errs.required("supplier", s.Supplier)
	errs.match("supplier_gstin", s.SupplierGSTIN, "GSTIN", gstinPattern)
	return errs.wrap(domain.ErrInvalidInwardSupply)
}
