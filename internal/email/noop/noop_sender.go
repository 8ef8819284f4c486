package noop

import (
	"context"
	"log"

	"hisaab/internal/port"
)

type noopMailer struct{}

// NewNoopMailer creates an InvoiceMailer that only logs what it would send.
func NewNoopMailer() port.InvoiceMailer {
	return &noopMailer{}
}

func (m *noopMailer) SendInvoice(_ context.Context, msg port.InvoiceEmail) error {
	log.Printf("[NOOP EMAIL] %q to %s <%s>: %s", msg.Subject, msg.ToName, msg.ToEmail, msg.DownloadURL)
	return nil
}
