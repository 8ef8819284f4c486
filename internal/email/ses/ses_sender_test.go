package ses

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hisaab/internal/port"
)

func TestBoldMarkers(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"Hi *Ravi*,", "Hi <strong>Ravi</strong>,"},
		{"*a* and *b*", "<strong>a</strong> and <strong>b</strong>"},
		{"5 * 3", "5 * 3"},
		{"*a* then 2*", "<strong>a</strong> then 2*"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, boldMarkers(tt.in))
		})
	}
}

func TestBuildInvoiceHTML(t *testing.T) {
	out := BuildInvoiceHTML(port.InvoiceEmail{
		Body:        "Hi *Patel & Sons*,\n\nThanks.\n*Shree*\n9876543210",
		DownloadURL: "https://bills.example.in/public/invoices/t?a=1&b=2",
	})
	assert.Contains(t, out, "<p>Hi <strong>Patel &amp; Sons</strong>,</p>")
	assert.Contains(t, out, "<p>Thanks.<br><strong>Shree</strong><br>9876543210</p>")
	assert.Contains(t, out, `href="https://bills.example.in/public/invoices/t?a=1&amp;b=2"`)

	plain := BuildInvoiceHTML(port.InvoiceEmail{Body: "Hello"})
	assert.NotContains(t, plain, "Download Invoice")
}
