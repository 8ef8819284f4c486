package sharelink

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisaab/internal/config"
	"hisaab/internal/domain"
)

func newTestSigner(now time.Time) *Signer {
	s := NewSigner(&config.ShareConfig{
		Secret:    "test-secret",
		Expiry:    time.Hour,
		Issuer:    "hisaab",
		PublicURL: "https://bills.example.in",
	})
	s.now = func() time.Time { return now }
	return s
}

func TestSigner_RoundTrip(t *testing.T) {
	s := newTestSigner(time.Now())
	id := uuid.New()

	token, err := s.Issue(id)
	require.NoError(t, err)

	got, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSigner_URL(t *testing.T) {
	s := newTestSigner(time.Now())
	link, err := s.URL(uuid.New())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://bills.example.in/public/invoices/"))
}

func TestSigner_Expired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := newTestSigner(issued).Issue(uuid.New())
	require.NoError(t, err)

	_, err = newTestSigner(time.Now()).Parse(token)
	assert.ErrorIs(t, err, domain.ErrInvalidShareToken)
}

func TestSigner_Rejects(t *testing.T) {
	now := time.Now()
	s := newTestSigner(now)
	id := uuid.New()

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Parse("not-a-token")
		assert.ErrorIs(t, err, domain.ErrInvalidShareToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := newTestSigner(now)
		other.secret = []byte("another-secret")
		token, err := other.Issue(id)
		require.NoError(t, err)
		_, err = s.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidShareToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "hisaab",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				Audience:  jwt.ClaimStrings{"password-reset"},
			},
			InvoiceID: id,
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = s.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidShareToken)
	})
}
