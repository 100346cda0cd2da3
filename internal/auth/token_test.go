package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManager(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := NewTokenManager("test-secret", time.Hour, WithClock(fixedClock(now)))

	t.Run("GenerateAndParse", func(t *testing.T) {
		token, exp, err := tm.GenerateToken(42, domain.RoleSeller)
		require.NoError(t, err)
		assert.Equal(t, now.Add(time.Hour), exp)

		claims, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, domain.RoleSeller, claims.Role)
		assert.Equal(t, "42", claims.Subject)
		assert.Equal(t, exp.Unix(), claims.Token().ExpiresAt.Unix())
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		_, err := tm.ParseToken("invalid-token")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("RejectsExpired", func(t *testing.T) {
		issuer := NewTokenManager("test-secret", time.Hour, WithClock(fixedClock(now.Add(-2*time.Hour))))
		token, _, err := issuer.GenerateToken(1, domain.RoleBuyer)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("RejectsOtherSecret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour, WithClock(fixedClock(now)))
		token, _, err := other.GenerateToken(1, domain.RoleBuyer)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("RejectsMissingExpiry", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1, Role: domain.RoleBuyer})
		token, err := raw.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("RejectsNoneAlgorithm", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			UserID:           1,
			Role:             domain.RoleSeller,
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		})
		token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}

// Any change to the signature segment must be rejected whatever the claims say.
func TestParseTokenRejectsTamperedSignature(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := NewTokenManager("test-secret", time.Hour, WithClock(fixedClock(now)))

	for _, role := range domain.Roles {
		token, _, err := tm.GenerateToken(7, role)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		// The final character only partly encodes signature bits.
		for i := 0; i < len(sig)-1; i++ {
			tampered := append([]byte(nil), sig...)
			if tampered[i] == 'A' {
				tampered[i] = 'B'
			} else {
				tampered[i] = 'A'
			}
			candidate := parts[0] + "." + parts[1] + "." + string(tampered)

			_, err := tm.ParseToken(candidate)
			assert.ErrorIs(t, err, ErrInvalidCredential, "role=%s index=%d", role, i)
		}
	}
}

func TestParseTokenRejectsForgedClaims(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := NewTokenManager("test-secret", time.Hour, WithClock(fixedClock(now)))

	buyerToken, _, err := tm.GenerateToken(7, domain.RoleBuyer)
	require.NoError(t, err)
	sellerToken, _, err := tm.GenerateToken(7, domain.RoleSeller)
	require.NoError(t, err)

	// Seller claims with the buyer signature.
	b := strings.Split(buyerToken, ".")
	s := strings.Split(sellerToken, ".")
	forged := s[0] + "." + s[1] + "." + b[2]

	_, err = tm.ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
