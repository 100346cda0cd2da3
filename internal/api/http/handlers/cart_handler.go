package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/service"
)

// CartHandler exposes buyer cart endpoints.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := h.carts.Add(c.UserContext(), p.ID, req.ProductID, req.Quantity); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "Item added to cart successfully"})
}

// Remove handles DELETE /api/cart/:id where :id is the product id.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	productID, err := idParam(c, "Invalid item ID")
	if err != nil {
		return err
	}
	if err := h.carts.Remove(c.UserContext(), p.ID, productID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Item removed from cart successfully"})
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	lines, err := h.carts.List(c.UserContext(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCartItemResponses(lines))
}

// Count handles GET /api/cart/count.
func (h *CartHandler) Count(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	count, err := h.carts.Count(c.UserContext(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.CartCountResponse{CartItemCount: count})
}
