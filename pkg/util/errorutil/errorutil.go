package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	// MessageKey selects the response field carrying Message ("error" when empty).
	MessageKey string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Body renders the JSON payload returned to API clients.
func (e *DomainError) Body() fiber.Map {
	key := e.MessageKey
	if key == "" {
		key = "error"
	}
	return fiber.Map{key: e.Message}
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest)
}

func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound)
}

// NewEmptyResult is a 404 whose text is reported under "message" rather than "error".
func NewEmptyResult(message string) error {
	return &DomainError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound, MessageKey: "message"}
}

func NewUnauthenticated(message string) error {
	return NewDomainError("UNAUTHENTICATED", message, http.StatusUnauthorized)
}

func NewInvalidToken(message string) error {
	return NewDomainError("INVALID_TOKEN", message, http.StatusUnauthorized)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden)
}

func NewConflict(message string) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict)
}

// NewInternalError hides err behind a client-safe message.
func NewInternalError(message string, err error) error {
	if message == "" {
		message = "Internal server error"
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// WithCause attaches cause to a DomainError so errors.Is can match it. Other
// errors are returned unchanged.
func WithCause(err, cause error) error {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return err
	}
	wrapped := *domainErr
	wrapped.Err = cause
	return &wrapped
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsNoRows reports whether err signals an empty single-row result.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return NewDomainError(http.StatusText(fiberErr.Code), fiberErr.Message, fiberErr.Code)
	}
	if IsNoRows(err) {
		return NewDomainError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// FiberErrorHandler writes err using the API error envelope.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	domainErr := ToDomainError(err)
	return c.Status(domainErr.HTTPStatus).JSON(domainErr.Body())
}
