package dto

import "github.com/spec-kit/storefront/internal/domain"

// ProductRequest payload for creating or editing a product. Price and
// discount are pointers so that an absent value differs from zero.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Discount    *float64 `json:"discount" validate:"required,gte=0,lte=100"`
}

type productMessages struct {
	price    string
	discount string
}

var (
	createMessages = productMessages{
		price:    "Price must be a positive number",
		discount: "Discount must be between 0 and 100",
	}
	updateMessages = productMessages{
		price:    "Price must be a valid number",
		discount: "Discount must be a valid number between 0 and 100",
	}
)

// ValidateCreate checks a new product payload.
func (r ProductRequest) ValidateCreate() error {
	return r.validate(createMessages)
}

// ValidateUpdate checks an edit payload.
func (r ProductRequest) ValidateUpdate() error {
	return r.validate(updateMessages)
}

func (r ProductRequest) validate(msgs productMessages) error {
	fe, failed := firstFailure(validate.Struct(r))
	if !failed {
		return nil
	}
	switch {
	case fe.Tag() == "required":
		return invalid("Name, category, price, and discount are required")
	case fe.Field() == "Price":
		return invalid(msgs.price)
	default:
		return invalid(msgs.discount)
	}
}

// ProductResponse is the wire shape of a product.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	SellerID    int64   `json:"seller_id"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Discount:    p.Discount,
		SellerID:    p.SellerID,
	}
}

// NewProductResponses maps a product list.
func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
