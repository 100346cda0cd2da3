package web

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/storefront/apiclient"
)

// sortByName orders products by name, byte-wise, keeping ties stable.
func sortByName(products []dto.ProductResponse) {
	slices.SortStableFunc(products, func(a, b dto.ProductResponse) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

// listProducts fetches the catalog. An empty catalog is not an error.
func (h *Handler) listProducts(c *fiber.Ctx, search string) ([]dto.ProductResponse, error) {
	products, err := h.api.ListProducts(c.UserContext(), search)
	if apiclient.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sortByName(products)
	return products, nil
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}
