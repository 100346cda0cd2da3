package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/storefront/apiclient"
	"github.com/spec-kit/storefront/internal/storefront/guard"
)

// SellerDashboard lists the signed in seller's products.
func (h *Handler) SellerDashboard(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Your Products"}

	products, err := h.listProducts(c, "")
	if err != nil {
		data["Error"] = apiclient.Message(err)
		return h.render(c, apiStatus(err), "seller/dashboard", data)
	}
	data["Products"] = products
	return h.render(c, fiber.StatusOK, "seller/dashboard", data)
}

// AddProductPage renders an empty product form.
func (h *Handler) AddProductPage(c *fiber.Ctx) error {
	return h.renderProductForm(c, fiber.StatusOK, addProductView(), productForm{}, fieldErrors{}, "")
}

// AddProduct creates the posted product.
func (h *Handler) AddProduct(c *fiber.Ctx) error {
	form := parseProductForm(c)
	view := addProductView()
	if errs := form.validate(); len(errs) > 0 {
		return h.renderProductForm(c, fiber.StatusUnprocessableEntity, view, form, errs, "")
	}

	msg, err := h.api.CreateProduct(c.UserContext(), form.request())
	if err != nil {
		return h.renderProductForm(c, apiStatus(err), view, form, fieldErrors{}, apiclient.Message(err))
	}
	h.flash(c, msg)
	return c.Redirect(guard.PathSellerDashboard, fiber.StatusFound)
}

// EditProductPage renders the form prefilled with the stored product.
func (h *Handler) EditProductPage(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.api.GetProduct(c.UserContext(), id)
	if apiclient.IsNotFound(err) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return h.renderProductForm(c, apiStatus(err), editProductView(id), productForm{}, fieldErrors{}, apiclient.Message(err))
	}
	return h.renderProductForm(c, fiber.StatusOK, editProductView(id), productFormFrom(*product), fieldErrors{}, "")
}

// EditProduct saves the posted changes.
func (h *Handler) EditProduct(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	form := parseProductForm(c)
	view := editProductView(id)
	if errs := form.validate(); len(errs) > 0 {
		return h.renderProductForm(c, fiber.StatusUnprocessableEntity, view, form, errs, "")
	}

	msg, err := h.api.UpdateProduct(c.UserContext(), id, form.request())
	if err != nil {
		return h.renderProductForm(c, apiStatus(err), view, form, fieldErrors{}, apiclient.Message(err))
	}
	h.flash(c, msg)
	return c.Redirect(guard.PathSellerDashboard, fiber.StatusFound)
}

// DeleteProduct removes a product and returns to the dashboard.
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	msg, err := h.api.DeleteProduct(c.UserContext(), id)
	if err != nil {
		h.flash(c, apiclient.Message(err))
	} else {
		h.flash(c, msg)
	}
	return c.Redirect(guard.PathSellerDashboard, fiber.StatusFound)
}

type productView struct {
	title  string
	action string
	submit string
}

func addProductView() productView {
	return productView{title: "Add Product", action: guard.PathSellerAddProduct, submit: "Add Product"}
}

func editProductView(id int64) productView {
	return productView{
		title:  "Edit Product",
		action: guard.PathSellerEditProduct + "/" + strconv.FormatInt(id, 10),
		submit: "Update Product",
	}
}

func (h *Handler) renderProductForm(c *fiber.Ctx, status int, view productView, form productForm, errs fieldErrors, message string) error {
	return h.render(c, status, "seller/product_form", fiber.Map{
		"Title":       view.title,
		"Action":      view.action,
		"Submit":      view.submit,
		"Form":        form,
		"FieldErrors": errs,
		"Error":       message,
	})
}
