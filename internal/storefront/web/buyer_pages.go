package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/storefront/apiclient"
	"github.com/spec-kit/storefront/internal/storefront/guard"
)

// BuyerDashboard lists the catalog, optionally filtered by ?search=.
func (h *Handler) BuyerDashboard(c *fiber.Ctx) error {
	search := c.Query("search")
	data := fiber.Map{"Title": "Browse Products", "Search": search}

	products, err := h.listProducts(c, search)
	if err != nil {
		data["Error"] = apiclient.Message(err)
		return h.render(c, apiStatus(err), "buyer/dashboard", data)
	}
	data["Products"] = products
	return h.render(c, fiber.StatusOK, "buyer/dashboard", data)
}

// AddToCart adds the posted product and returns to the dashboard.
func (h *Handler) AddToCart(c *fiber.Ctx) error {
	// Unparsable values go through as zero and are rejected by the API.
	productID, _ := strconv.ParseInt(c.FormValue("product_id"), 10, 64)
	quantity, _ := strconv.Atoi(c.FormValue("quantity", "1"))

	msg, err := h.api.AddToCart(c.UserContext(), productID, quantity)
	if err != nil {
		h.flash(c, apiclient.Message(err))
	} else {
		h.flash(c, msg)
	}
	return c.Redirect(guard.PathBuyerDashboard, fiber.StatusFound)
}

// CartPage shows the cart lines and their total.
func (h *Handler) CartPage(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Your Cart"}

	items, err := h.api.Cart(c.UserContext())
	if err != nil && !apiclient.IsNotFound(err) {
		data["Error"] = apiclient.Message(err)
		data["Total"] = 0.0
		return h.render(c, apiStatus(err), "buyer/cart", data)
	}

	total := 0.0
	for _, item := range items {
		total += lineTotal(item.Price, item.Quantity)
	}
	data["Items"] = items
	data["Total"] = total
	return h.render(c, fiber.StatusOK, "buyer/cart", data)
}

// RemoveFromCart drops one product from the cart and reloads the cart page.
func (h *Handler) RemoveFromCart(c *fiber.Ctx) error {
	productID, err := pathID(c)
	if err != nil {
		return err
	}
	msg, err := h.api.RemoveFromCart(c.UserContext(), productID)
	if err != nil {
		h.flash(c, apiclient.Message(err))
	} else {
		h.flash(c, msg)
	}
	return c.Redirect(guard.PathBuyerCart, fiber.StatusFound)
}
