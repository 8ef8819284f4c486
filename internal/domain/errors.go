package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrItemNotFound           = errors.New("item not found")
	ErrProfileNotConfigured   = errors.New("seller profile is not configured")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrDuplicateCustomer      = errors.New("customer with this name already exists")
	ErrDuplicateItem          = errors.New("item with this name already exists")
	ErrNoLineItems            = errors.New("invoice has no line items")
	ErrInvalidLineItem        = errors.New("invalid line item")
	ErrInvalidProfile         = errors.New("invalid seller profile")
	ErrInvalidCustomer        = errors.New("invalid customer")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidPaymentMode     = errors.New("unknown payment mode")
	ErrInvalidInwardSupply    = errors.New("invalid inward supply")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD or DD-MM-YYYY")
	ErrInvalidSpreadsheet     = errors.New("spreadsheet could not be read")
	ErrRenderFailed           = errors.New("invoice document could not be rendered")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrInvalidShareToken      = errors.New("share link is invalid or expired")
	ErrPDFNotAvailable        = errors.New("invoice pdf is not available")
)
