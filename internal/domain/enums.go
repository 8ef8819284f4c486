package domain

// PaymentMode records how an invoice is to be settled.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "cash"
	PaymentOnline PaymentMode = "online"
	PaymentCredit PaymentMode = "credit"
)

// ValidPaymentModes lists every accepted payment mode.
var ValidPaymentModes = map[PaymentMode]bool{
	PaymentCash:   true,
	PaymentOnline: true,
	PaymentCredit: true,
}
