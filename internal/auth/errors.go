package auth

import "errors"

// Failure taxonomy shared by the API interceptor and the storefront.
var (
	// ErrUnauthenticated means no credential was supplied.
	ErrUnauthenticated = errors.New("auth: no credential supplied")
	// ErrInvalidCredential means the credential is malformed, badly signed or expired.
	ErrInvalidCredential = errors.New("auth: invalid credential")
	// ErrForbidden means the credential is valid but its role is not permitted.
	ErrForbidden = errors.New("auth: role not permitted")
	// ErrDecodeFailure means an unverified convenience decode failed.
	ErrDecodeFailure = errors.New("auth: token could not be decoded")
)
