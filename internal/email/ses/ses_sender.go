package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"hisaab/internal/config"
	"hisaab/internal/port"
)

type sesMailer struct {
	client *sesv2.Client
	from   string
}

// NewSESMailer creates an SES-backed InvoiceMailer.
func NewSESMailer(cfg *config.EmailConfig) (port.InvoiceMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesMailer{
		client: sesv2.NewFromConfig(awsCfg),
		from:   fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
	}, nil
}

func (s *sesMailer) SendInvoice(ctx context.Context, msg port.InvoiceEmail) error {
	htmlBody := BuildInvoiceHTML(msg)
	textBody := msg.Body
	to := msg.ToEmail
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.ToEmail)
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &s.from,
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.Subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// BuildInvoiceHTML renders the plain message as HTML. WhatsApp-style *bold*
// markers become <strong> and the download link becomes a button.
func BuildInvoiceHTML(msg port.InvoiceEmail) string {
	var paras []string
	for _, p := range strings.Split(msg.Body, "\n\n") {
		p = boldMarkers(html.EscapeString(p))
		paras = append(paras, "  <p>"+strings.ReplaceAll(p, "\n", "<br>")+"</p>")
	}

	button := ""
	if msg.DownloadURL != "" {
		u := html.EscapeString(msg.DownloadURL)
		button = fmt.Sprintf(`
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #2C3E50; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Invoice</a>
  </p>`, u)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
%s%s
</body>
</html>`, strings.Join(paras, "\n"), button)
}

// boldMarkers turns *text* pairs into <strong>text</strong>. An unpaired
// asterisk is left alone.
func boldMarkers(s string) string {
	parts := strings.Split(s, "*")
	if len(parts) < 3 {
		return s
	}
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			switch {
			case i%2 == 1 && i < len(parts)-1:
				b.WriteString("<strong>")
			case i%2 == 0:
				b.WriteString("</strong>")
			default:
				b.WriteString("*")
			}
		}
		b.WriteString(part)
	}
	return b.String()
}
