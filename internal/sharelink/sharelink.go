// Package sharelink issues and verifies signed, expiring links that let a
// buyer download one invoice PDF without an account.
package sharelink

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hisaab/internal/config"
	"hisaab/internal/domain"
)

const audience = "invoice-download"

// Claims identify the shared invoice.
type Claims struct {
	jwt.RegisteredClaims
	InvoiceID uuid.UUID `json:"inv"`
}

// Signer issues and parses share tokens.
type Signer struct {
	secret    []byte
	issuer    string
	expiry    time.Duration
	publicURL string
	now       func() time.Time
}

// NewSigner creates a Signer from the share configuration.
func NewSigner(cfg *config.ShareConfig) *Signer {
	return &Signer{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		expiry:    cfg.Expiry,
		publicURL: cfg.PublicURL,
		now:       time.Now,
	}
}

// Issue returns a token granting access to invoiceID until the configured expiry.
func (s *Signer) Issue(invoiceID uuid.UUID) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   invoiceID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			Audience:  jwt.ClaimStrings{audience},
		},
		InvoiceID: invoiceID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing share token: %w", err)
	}
	return signed, nil
}

// URL returns the public download URL for invoiceID.
func (s *Signer) URL(invoiceID uuid.UUID) (string, error) {
	token, err := s.Issue(invoiceID)
	if err != nil {
		return "", err
	}
	return s.publicURL + "/public/invoices/" + token, nil
}

// Parse verifies token and returns the invoice it grants access to.
func (s *Signer) Parse(token string) (uuid.UUID, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithAudience(audience),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.InvoiceID == uuid.Nil {
		return uuid.Nil, domain.ErrInvalidShareToken
	}
	return claims.InvoiceID, nil
}
