package dto

import "github.com/spec-kit/storefront/internal/domain"

// AddToCartRequest payload for adding a product to the cart.
type AddToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// Validate checks the product reference and quantity.
func (r AddToCartRequest) Validate() error {
	fe, failed := firstFailure(validate.Struct(r))
	if !failed {
		return nil
	}
	if fe.Field() == "ProductID" {
		return invalid("Invalid product ID")
	}
	return invalid("Invalid quantity")
}

// CartItemResponse is one cart line. ID is the product id, which is also the
// key used to remove the line; CartID is the cart row itself.
type CartItemResponse struct {
	ID          int64   `json:"id"`
	CartID      int64   `json:"cart_id"`
	Quantity    int     `json:"quantity"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	SellerID    int64   `json:"seller_id"`
}

// NewCartItemResponses maps cart lines.
func NewCartItemResponses(lines []domain.CartLine) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, CartItemResponse{
			ID:          line.Product.ID,
			CartID:      line.ID,
			Quantity:    line.Quantity,
			Name:        line.Product.Name,
			Category:    line.Product.Category,
			Description: line.Product.Description,
			Price:       line.Product.Price,
			Discount:    line.Product.Discount,
			SellerID:    line.Product.SellerID,
		})
	}
	return out
}

// CartCountResponse carries the total quantity in the cart.
type CartCountResponse struct {
	CartItemCount int `json:"cartItemCount"`
}
