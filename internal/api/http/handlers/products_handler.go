package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/service"
)

// ProductsHandler exposes catalog endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	products, err := h.products.List(c.UserContext(), p.ID, p.Role, c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponses(products))
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "Invalid product ID")
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.UserContext(), p.ID, p.Role, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(*product))
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.ValidateCreate(); err != nil {
		return err
	}

	if _, err := h.products.Create(c.UserContext(), p.ID, productInput(req)); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "Product added successfully"})
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "Invalid product ID")
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.ValidateUpdate(); err != nil {
		return err
	}

	if _, err := h.products.Update(c.UserContext(), p.ID, id, productInput(req)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Product updated successfully"})
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "Invalid product ID")
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.UserContext(), p.ID, id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Product deleted successfully"})
}

func productInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       *req.Price,
		Discount:    *req.Discount,
	}
}
