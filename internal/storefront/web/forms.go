package web

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/domain"
)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		n, ok := parseNumber(fl.Field().String())
		return ok && n >= 0
	})
	_ = v.RegisterValidation("discount", func(fl validator.FieldLevel) bool {
		n, ok := parseNumber(fl.Field().String())
		return ok && n >= 0 && n <= 100
	})
	return v
}

// parseNumber accepts finite decimals only; ParseFloat also takes "Inf" and
// "NaN", which cannot be sent as JSON.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// fieldErrors maps each failed field to the message shown under it. Every
// field carries one message whatever rule it broke.
type fieldErrors map[string]string

func validateForm(form any, messages map[string]string) fieldErrors {
	errs := fieldErrors{}
	var verrs validator.ValidationErrors
	if err := formValidator.Struct(form); !errors.As(err, &verrs) {
		return errs
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = messages[fe.Field()]
		}
	}
	return errs
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

var loginMessages = map[string]string{
	"email":    "Invalid email address",
	"password": "Password must be at least 6 characters",
}

func (f loginForm) validate() fieldErrors {
	return validateForm(f, loginMessages)
}

type signupForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Role     string `form:"role" validate:"required,oneof=buyer seller"`
}

var signupMessages = map[string]string{
	"email":    "Invalid email address",
	"password": "Password must be at least 6 characters",
	"role":     "You need to select a user role",
}

func parseSignupForm(c *fiber.Ctx) signupForm {
	f := signupForm{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
		Role:     c.FormValue("role"),
	}
	if f.Role == "" {
		f.Role = string(domain.RoleBuyer)
	}
	return f
}

func (f signupForm) validate() fieldErrors {
	return validateForm(f, signupMessages)
}

// productForm keeps the raw text so a rejected form is redisplayed as typed.
type productForm struct {
	Name        string `form:"name" validate:"required"`
	Category    string `form:"category" validate:"required"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"price"`
	Discount    string `form:"discount" validate:"discount"`
}

var productMessages = map[string]string{
	"name":     "Name is required",
	"category": "Category is required",
	"price":    "Price must be a positive number",
	"discount": "Discount must be between 0 and 100",
}

func parseProductForm(c *fiber.Ctx) productForm {
	return productForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Description: c.FormValue("description"),
		Price:       strings.TrimSpace(c.FormValue("price")),
		Discount:    strings.TrimSpace(c.FormValue("discount")),
	}
}

func productFormFrom(p dto.ProductResponse) productForm {
	return productForm{
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Discount:    strconv.FormatFloat(p.Discount, 'f', -1, 64),
	}
}

func (f productForm) validate() fieldErrors {
	return validateForm(f, productMessages)
}

// request converts a validated form into the API payload.
func (f productForm) request() dto.ProductRequest {
	price, _ := parseNumber(f.Price)
	discount, _ := parseNumber(f.Discount)
	return dto.ProductRequest{
		Name:        f.Name,
		Category:    f.Category,
		Description: f.Description,
		Price:       &price,
		Discount:    &discount,
	}
}
