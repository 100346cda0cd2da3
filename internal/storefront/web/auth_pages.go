package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/storefront/apiclient"
	"github.com/spec-kit/storefront/internal/storefront/guard"
)

// Home is the landing page.
func (h *Handler) Home(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "home", fiber.Map{"Title": "Home"})
}

// Unauthorized is shown when a signed in visitor opens another role's page.
func (h *Handler) Unauthorized(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusForbidden, "unauthorized", fiber.Map{"Title": "Access denied"})
}

// NotFound catches every unmatched path.
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusNotFound, "not_found", fiber.Map{"Title": "Not Found"})
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *fiber.Ctx) error {
	return h.renderLogin(c, fiber.StatusOK, loginForm{}, fieldErrors{}, "")
}

// Login exchanges the credentials for a token, records it in the session
// and the token cookie, then sends the visitor to their dashboard.
func (h *Handler) Login(c *fiber.Ctx) error {
	form := loginForm{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}
	if errs := form.validate(); len(errs) > 0 {
		return h.renderLogin(c, fiber.StatusUnprocessableEntity, form, errs, "")
	}

	resp, err := h.api.Login(c.UserContext(), dto.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return h.renderLogin(c, apiStatus(err), form, fieldErrors{}, apiclient.Message(err))
	}

	sess := sessionFrom(c)
	if err := sess.Login(c.UserContext(), resp.Token); err != nil {
		return err
	}
	h.flash(c, resp.Message)

	role, ok := sess.CurrentRole()
	if !ok || !role.Valid() {
		h.logger.Warn("login returned a token without a known role", zap.String("session", sess.Namespace()))
		return c.Redirect(guard.PathLogin, fiber.StatusFound)
	}
	h.setTokenCookie(c, resp.Token)
	return c.Redirect(role.DashboardPath(), fiber.StatusFound)
}

func (h *Handler) renderLogin(c *fiber.Ctx, status int, form loginForm, errs fieldErrors, message string) error {
	return h.render(c, status, "auth/login", fiber.Map{
		"Title":       "Login",
		"Form":        form,
		"FieldErrors": errs,
		"Error":       message,
	})
}

// SignupPage renders the signup form.
func (h *Handler) SignupPage(c *fiber.Ctx) error {
	return h.renderSignup(c, fiber.StatusOK, signupForm{}, fieldErrors{}, "")
}

// Signup registers the account and sends the visitor to the login page.
func (h *Handler) Signup(c *fiber.Ctx) error {
	form := parseSignupForm(c)
	if errs := form.validate(); len(errs) > 0 {
		return h.renderSignup(c, fiber.StatusUnprocessableEntity, form, errs, "")
	}

	msg, err := h.api.Signup(c.UserContext(), dto.SignupRequest{Email: form.Email, Password: form.Password, Role: form.Role})
	if err != nil {
		return h.renderSignup(c, apiStatus(err), form, fieldErrors{}, apiclient.Message(err))
	}
	h.flash(c, msg)
	return c.Redirect(guard.PathLogin, fiber.StatusFound)
}

func (h *Handler) renderSignup(c *fiber.Ctx, status int, form signupForm, errs fieldErrors, message string) error {
	return h.render(c, status, "auth/signup", fiber.Map{
		"Title":       "Sign Up",
		"Form":        form,
		"FieldErrors": errs,
		"Error":       message,
	})
}

// Logout drops the credential and the cart badge, clears the token cookie and
// returns to the login page.
func (h *Handler) Logout(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	if err := sess.Logout(c.UserContext()); err != nil {
		h.logger.Warn("logout", zap.String("session", sess.Namespace()), zap.Error(err))
	}
	if err := sess.Cart().Reset(c.UserContext()); err != nil {
		h.logger.Warn("reset cart count", zap.String("session", sess.Namespace()), zap.Error(err))
	}
	h.clearTokenCookie(c)
	return c.Redirect(guard.PathLogin, fiber.StatusFound)
}
