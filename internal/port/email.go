package port

import "context"

// InvoiceEmail is a rendered invoice notification.
type InvoiceEmail struct {
	ToEmail     string
	ToName      string
	Subject     string
	Body        string
	DownloadURL string
}

// InvoiceMailer delivers invoice notifications to buyers.
type InvoiceMailer interface {
	SendInvoice(ctx context.Context, msg InvoiceEmail) error
}
