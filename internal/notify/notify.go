// Package notify builds the buyer-facing messages that accompany an invoice:
// the message body, the e-mail subject, and click-to-send WhatsApp and mailto links.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"hisaab/internal/gst"
)

const (
	whatsAppBase = "https://wa.me/"
	countryCode  = "91"
)

// Invoice carries what the message templates print.
type Invoice struct {
	Number      string
	Date        string
	BuyerName   string
	FirmName    string
	FirmMobile  string
	GrandTotal  decimal.Decimal
	DownloadURL string
	Footer      string
}

// Links are the prepared share links for a generated invoice. A link is
// empty when the buyer has no usable contact for it.
type Links struct {
	WhatsApp string `json:"whatsapp,omitempty"`
	Mail     string `json:"mail,omitempty"`
}

// Subject is the e-mail subject line.
func Subject(inv Invoice) string {
	return fmt.Sprintf("Invoice %s from %s", inv.Number, inv.FirmName)
}

// Body renders the message text. Asterisks mark bold in WhatsApp.
func Body(inv Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi *%s*,\n\n", inv.BuyerName)
	fmt.Fprintf(&b, "Greetings from *%s*. I'm sending over the invoice *%s* dated *%s* for *%s*.",
		inv.FirmName, inv.Number, inv.Date, gst.FormatINR(inv.GrandTotal))
	if inv.DownloadURL != "" {
		fmt.Fprintf(&b, " You can download it here: %s", inv.DownloadURL)
	} else {
		b.WriteString(" The details are included in the attachment for your review.")
	}
	b.WriteString("\n\nThanks again for your cooperation and continued support.\n\n")
	fmt.Fprintf(&b, "*%s*", inv.FirmName)
	if inv.FirmMobile != "" {
		b.WriteString("\n" + inv.FirmMobile)
	}
	if inv.Footer != "" {
		b.WriteString("\n\n------------------------------------------\n" + inv.Footer)
	}
	return b.String()
}

// NormalizeMobile returns the number with the Indian country code, or "" if
// it cannot be a mobile number.
func NormalizeMobile(mobile string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, mobile)

	switch {
	case len(digits) == 10:
		return countryCode + digits
	case len(digits) == 11 && digits[0] == '0':
		return countryCode + digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, countryCode):
		return digits
	default:
		return ""
	}
}

// escape percent-encodes s with spaces as %20, which both WhatsApp and mail
// clients decode; "+" is not reliably read as a space by mail clients.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// WhatsAppLink opens a chat with mobile and the text pre-filled.
func WhatsAppLink(mobile, text string) string {
	phone := NormalizeMobile(mobile)
	if phone == "" {
		return ""
	}
	return whatsAppBase + phone + "?text=" + escape(text)
}

// MailtoLink opens a draft to email with subject and body pre-filled.
func MailtoLink(email, subject, body string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return "mailto:" + email + "?subject=" + escape(subject) + "&body=" + escape(body)
}

// BuildLinks prepares both share links for inv.
func BuildLinks(inv Invoice, mobile, email string) Links {
	body := Body(inv)
	return Links{
		WhatsApp: WhatsAppLink(mobile, body),
		Mail:     MailtoLink(email, Subject(inv), body),
	}
}
