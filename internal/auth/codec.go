package auth

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/storefront/internal/domain"
)

// The storefront never holds the signing secret, so these helpers read claims
// without checking the signature. They drive UI routing only.

var unverified = jwt.NewParser()

// DecodeClaims extracts the claims of token without verifying its signature.
func DecodeClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrDecodeFailure
	}
	claims := &Claims{}
	if _, _, err := unverified.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return claims, nil
}

// DecodeRole returns the role claim, or false when the token cannot be decoded.
func DecodeRole(token string) (domain.Role, bool) {
	claims, err := DecodeClaims(token)
	if err != nil || claims.Role == "" {
		return "", false
	}
	return claims.Role, true
}

// DecodeExpiry returns the exp claim, or false when absent or undecodable.
// Only the registered claims are read, so a malformed role does not hide exp.
func DecodeExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := unverified.ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// IsExpired reports whether token is unusable at now. Tokens without a
// decodable exp claim count as expired.
func IsExpired(token string, now time.Time) bool {
	exp, ok := DecodeExpiry(token)
	if !ok {
		return true
	}
	return !now.Before(exp)
}
