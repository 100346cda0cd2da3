// Package guard decides, before a storefront page renders, whether the
// visitor may see it or must be redirected.
package guard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
)

// TokenCookie is the cookie the guard reads the visitor's token from.
const TokenCookie = "token"

// Decision is the outcome for one navigation. An empty Redirect allows it.
type Decision struct {
	Redirect string
}

// Allowed reports whether navigation proceeds.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// Guard evaluates navigations against the route classification. It decodes
// tokens without verifying signatures; the API remains the trust boundary.
type Guard struct {
	now func() time.Time
}

// Option customizes a Guard.
type Option func(*Guard)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// New creates a guard.
func New(opts ...Option) *Guard {
	g := &Guard{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide applies the redirect rules to a navigation to path carrying token.
// The first matching rule wins.
func (g *Guard) Decide(path, token string) Decision {
	class := Classify(path)

	// Validity is expiry alone; a missing or foreign role is handled by the
	// role rules below.
	role, _ := auth.DecodeRole(token)
	valid := token != "" && !auth.IsExpired(token, g.now())

	switch {
	case class == PublicOnly && valid && role.Valid():
		return Decision{Redirect: role.DashboardPath()}
	case class.Protected() && !valid:
		return Decision{Redirect: PathLogin}
	case class == BuyerProtected && role != domain.RoleBuyer:
		return Decision{Redirect: PathUnauthorized}
	case class == SellerProtected && role != domain.RoleSeller:
		return Decision{Redirect: PathUnauthorized}
	default:
		return Decision{}
	}
}

// Handler runs Decide for every request using the token cookie.
func (g *Guard) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := g.Decide(c.Path(), c.Cookies(TokenCookie))
		if !decision.Allowed() {
			return c.Redirect(decision.Redirect, fiber.StatusFound)
		}
		return c.Next()
	}
}
