package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/storefront/apiclient"
	"github.com/spec-kit/storefront/internal/storefront/guard"
	"github.com/spec-kit/storefront/internal/storefront/session"
)

// SessionCookie names the browser session namespace.
const SessionCookie = "sid"

const (
	localSession = "session"
	flashKey     = "flash"
)

// Handler serves the storefront pages.
type Handler struct {
	api     *apiclient.Client
	storage session.Storage
	logger  *zap.Logger
	secure  bool
	now     func() time.Time
}

// loadSession opens the browser's session namespace, minting one on first
// visit, and scopes outbound API calls of this request to it.
func (h *Handler) loadSession(c *fiber.Ctx) error {
	sid := c.Cookies(SessionCookie)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			Secure:   h.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	sess, err := session.Open(c.UserContext(), h.storage, sid, session.WithClock(h.now))
	if err != nil {
		return err
	}
	c.Locals(localSession, sess)
	c.SetUserContext(apiclient.WithScope(c.UserContext(), sess, func() { h.clearTokenCookie(c) }))
	return c.Next()
}

func sessionFrom(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(localSession).(*session.Session)
	return sess
}

func (h *Handler) setTokenCookie(c *fiber.Ctx, token string) {
	cookie := &fiber.Cookie{
		Name:     guard.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if exp, ok := auth.DecodeExpiry(token); ok {
		cookie.Expires = exp
	}
	c.Cookie(cookie)
}

func (h *Handler) clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     guard.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// flash stores a one-shot message shown on the next rendered page.
func (h *Handler) flash(c *fiber.Ctx, message string) {
	sess := sessionFrom(c)
	if sess == nil || message == "" {
		return
	}
	if err := h.storage.Set(c.UserContext(), sess.Namespace(), flashKey, []byte(message)); err != nil {
		h.logger.Warn("store flash", zap.Error(err))
	}
}

func (h *Handler) popFlash(c *fiber.Ctx, sess *session.Session) string {
	raw, ok, err := h.storage.Get(c.UserContext(), sess.Namespace(), flashKey)
	if err != nil || !ok {
		return ""
	}
	if err := h.storage.Delete(c.UserContext(), sess.Namespace(), flashKey); err != nil {
		h.logger.Warn("drop flash", zap.Error(err))
	}
	return string(raw)
}

// render fills in the header state and writes view inside the main layout.
func (h *Handler) render(c *fiber.Ctx, status int, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Path"] = c.Path()
	data["LoggedIn"] = false
	data["Role"] = ""
	data["CartCount"] = 0

	if sess := sessionFrom(c); sess != nil {
		valid := false
		if sess.IsLoggedIn() {
			var err error
			if valid, err = sess.IsValid(c.UserContext()); err != nil {
				h.logger.Warn("check session", zap.String("session", sess.Namespace()), zap.Error(err))
			}
			if !valid {
				h.clearTokenCookie(c)
			}
		}
		if role, ok := sess.CurrentRole(); ok && valid && role == domain.RoleBuyer {
			h.refreshCartCount(c, sess)
		}
		// Re-read after the refresh: an unusable token logs the session out.
		role, _ := sess.CurrentRole()
		data["LoggedIn"] = valid && sess.IsLoggedIn()
		data["Role"] = string(role)
		data["CartCount"] = sess.Cart().Count()
		if msg := h.popFlash(c, sess); msg != "" {
			data["Flash"] = msg
		}
	}
	return c.Status(status).Render(view, data)
}

func (h *Handler) refreshCartCount(c *fiber.Ctx, sess *session.Session) {
	count, err := h.api.CartCount(c.UserContext())
	if err != nil {
		h.logger.Debug("refresh cart count", zap.String("session", sess.Namespace()), zap.Error(err))
		return
	}
	if err := sess.Cart().Update(c.UserContext(), count); err != nil {
		h.logger.Warn("store cart count", zap.Error(err))
	}
}

// apiStatus picks the page status for a failed API call.
func apiStatus(err error) int {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return fiber.StatusBadGateway
}

// errorPages turns handler errors into rendered pages.
func (h *Handler) errorPages(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	status := fiber.StatusInternalServerError
	message := apiclient.DefaultErrorMessage
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
	}
	if status == fiber.StatusNotFound {
		return h.render(c, status, "not_found", fiber.Map{"Title": "Not Found"})
	}
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("storefront request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return h.render(c, status, "error", fiber.Map{"Title": "Error", "Error": message})
}
