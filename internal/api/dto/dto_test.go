package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/storefront/internal/domain"
	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

func message(t *testing.T, err error) string {
	t.Helper()
	if !assert.Error(t, err) {
		return ""
	}
	return apperrors.ToDomainError(err).Message
}

func ptr(f float64) *float64 { return &f }

func TestSignupRequestValidate(t *testing.T) {
	assert.NoError(t, SignupRequest{Email: "a@b.c", Password: "x", Role: "buyer"}.Validate())
	assert.Equal(t, "Email, password, and role are required", message(t, SignupRequest{Email: "a@b.c", Role: "buyer"}.Validate()))
	assert.Equal(t, "Email, password, and role are required", message(t, SignupRequest{Email: "a@b.c", Password: "x"}.Validate()))
	assert.Equal(t, "Role must be either buyer or seller", message(t, SignupRequest{Email: "a@b.c", Password: "x", Role: "admin"}.Validate()))
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "a@b.c", Password: "x"}.Validate())
	assert.Equal(t, "Email and password are required.", message(t, LoginRequest{Email: "a@b.c"}.Validate()))
}

func TestProductRequestValidate(t *testing.T) {
	valid := ProductRequest{Name: "Lamp", Category: "Lighting", Price: ptr(0), Discount: ptr(0)}
	assert.NoError(t, valid.ValidateCreate())

	missingDiscount := valid
	missingDiscount.Discount = nil
	assert.Equal(t, "Name, category, price, and discount are required", message(t, missingDiscount.ValidateCreate()))

	negative := valid
	negative.Price = ptr(-1)
	assert.Equal(t, "Price must be a positive number", message(t, negative.ValidateCreate()))
	assert.Equal(t, "Price must be a valid number", message(t, negative.ValidateUpdate()))

	tooMuch := valid
	tooMuch.Discount = ptr(100.5)
	assert.Equal(t, "Discount must be between 0 and 100", message(t, tooMuch.ValidateCreate()))
	assert.Equal(t, "Discount must be a valid number between 0 and 100", message(t, tooMuch.ValidateUpdate()))

	full := valid
	full.Discount = ptr(100)
	assert.NoError(t, full.ValidateUpdate())
}

func TestAddToCartRequestValidate(t *testing.T) {
	assert.NoError(t, AddToCartRequest{ProductID: 1, Quantity: 1}.Validate())
	assert.Equal(t, "Invalid product ID", message(t, AddToCartRequest{Quantity: 1}.Validate()))
	assert.Equal(t, "Invalid quantity", message(t, AddToCartRequest{ProductID: 1}.Validate()))
	assert.Equal(t, "Invalid quantity", message(t, AddToCartRequest{ProductID: 1, Quantity: -2}.Validate()))
}

func TestCartItemResponsesUseProductID(t *testing.T) {
	lines := []domain.CartLine{{ID: 7, ProductID: 3, Quantity: 2, Product: domain.Product{ID: 3, Name: "Chair"}}}

	got := NewCartItemResponses(lines)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(7), got[0].CartID)
	assert.Equal(t, "Chair", got[0].Name)
}
