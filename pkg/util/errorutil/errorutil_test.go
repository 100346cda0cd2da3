package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"domain error kept", NewForbidden("Access denied"), http.StatusForbidden, "FORBIDDEN"},
		{"wrapped domain error", fmt.Errorf("wrap: %w", NewConflict("dup")), http.StatusConflict, "CONFLICT"},
		{"fiber error", fiber.NewError(http.StatusNotFound, "Cannot GET /nope"), http.StatusNotFound, "Not Found"},
		{"no rows", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
	assert.Nil(t, ToDomainError(nil))
}

func TestBodyKey(t *testing.T) {
	assert.Equal(t, fiber.Map{"error": "Access denied"}, ToDomainError(NewForbidden("Access denied")).Body())
	assert.Equal(t, fiber.Map{"message": "Cart is empty"}, ToDomainError(NewEmptyResult("Cart is empty")).Body())
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := ToDomainError(NewInternalError("Error fetching cart", cause))

	assert.Equal(t, fiber.Map{"error": "Error fetching cart"}, err.Body())
	assert.ErrorIs(t, err, cause)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}

func TestWithCause(t *testing.T) {
	cause := errors.New("no credential")
	err := WithCause(NewUnauthenticated("User authorization denied"), cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, fiber.Map{"error": "User authorization denied"}, ToDomainError(err).Body())
	assert.Equal(t, http.StatusUnauthorized, ToDomainError(err).HTTPStatus)

	plain := errors.New("plain")
	assert.Same(t, plain, WithCause(plain, cause))
}
