package web

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/storefront/internal/api/dto"
)

func TestProductFormValidation(t *testing.T) {
	tests := []struct {
		name string
		form productForm
		want fieldErrors
	}{
		{"valid", productForm{Name: "Lamp", Category: "Home", Price: "0", Discount: "100"}, fieldErrors{}},
		{"missing text", productForm{Price: "1", Discount: "1"}, fieldErrors{"name": "Name is required", "category": "Category is required"}},
		{"empty numbers", productForm{Name: "a", Category: "b"}, fieldErrors{"price": "Price must be a positive number", "discount": "Discount must be between 0 and 100"}},
		{"negative price", productForm{Name: "a", Category: "b", Price: "-0.5", Discount: "0"}, fieldErrors{"price": "Price must be a positive number"}},
		{"discount over range", productForm{Name: "a", Category: "b", Price: "3", Discount: "100.5"}, fieldErrors{"discount": "Discount must be between 0 and 100"}},
		{"not a number", productForm{Name: "a", Category: "b", Price: "ten", Discount: "0"}, fieldErrors{"price": "Price must be a positive number"}},
		{"infinite price", productForm{Name: "a", Category: "b", Price: "Inf", Discount: "0"}, fieldErrors{"price": "Price must be a positive number"}},
		{"overflowing price", productForm{Name: "a", Category: "b", Price: "1e400", Discount: "0"}, fieldErrors{"price": "Price must be a positive number"}},
		{"nan discount", productForm{Name: "a", Category: "b", Price: "1", Discount: "NaN"}, fieldErrors{"discount": "Discount must be between 0 and 100"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.form.validate())
		})
	}
}

func TestProductFormRequest(t *testing.T) {
	req := productForm{Name: "Lamp", Category: "Home", Price: " 12.5 ", Discount: "5"}.request()
	assert.Equal(t, 12.5, *req.Price)
	assert.Equal(t, 5.0, *req.Discount)
	assert.NoError(t, req.ValidateCreate())
}

func TestAuthFormsValidation(t *testing.T) {
	assert.Empty(t, loginForm{Email: "a@b.co", Password: "secret"}.validate())
	assert.Equal(t, fieldErrors{"email": "Invalid email address", "password": "Password must be at least 6 characters"},
		loginForm{Email: "", Password: "12345"}.validate())

	assert.Equal(t, fieldErrors{"role": "You need to select a user role"},
		signupForm{Email: "a@b.co", Password: "secret", Role: "admin"}.validate())
}

func TestSortByName(t *testing.T) {
	products := []dto.ProductResponse{{ID: 1, Name: "b"}, {ID: 2, Name: "B"}, {ID: 3, Name: "a"}, {ID: 4, Name: "b"}}
	sortByName(products)

	var ids []int64
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{2, 3, 1, 4}, ids)
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 51.0, lineTotal(25.5, 2))
	assert.Equal(t, 25.5, lineTotal(25.5, 0))
}
