// Package web is the browser-facing storefront: server-rendered pages behind
// the route guard that talk to the REST API through the session-aware client.
package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/storefront/apiclient"
	"github.com/spec-kit/storefront/internal/storefront/guard"
	"github.com/spec-kit/storefront/internal/storefront/session"
)

// Dependencies wires the storefront.
type Dependencies struct {
	AppName       string
	API           *apiclient.Client
	Storage       session.Storage
	Guard         *guard.Guard
	Logger        *zap.Logger
	Metrics       *observability.Metrics
	SecureCookies bool
	// Now is the clock used for session expiry checks; defaults to time.Now.
	Now func() time.Time
}

// New builds the storefront fiber app with its middleware chain and pages.
func New(deps Dependencies) (*fiber.App, error) {
	if deps.API == nil || deps.Storage == nil {
		return nil, errors.New("web: api client and session storage are required")
	}
	if deps.Guard == nil {
		deps.Guard = guard.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetrics()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	views, err := NewViews()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               deps.AppName,
		Views:                 views,
		ViewsLayout:           layoutMain,
		DisableStartupMessage: true,
	})

	h := &Handler{
		api:     deps.API,
		storage: deps.Storage,
		logger:  deps.Logger,
		secure:  deps.SecureCookies,
		now:     deps.Now,
	}

	app.Use(observability.RequestLogger(deps.Logger, deps.Metrics))
	app.Use(h.errorPages)
	app.Use(recover.New())
	app.Use(deps.Guard.Handler())
	app.Use(h.loadSession)

	registerPages(app, h)
	return app, nil
}

func registerPages(app *fiber.App, h *Handler) {
	app.Get(guard.PathHome, h.Home)
	app.Get(guard.PathUnauthorized, h.Unauthorized)

	app.Get(guard.PathLogin, h.LoginPage)
	app.Post(guard.PathLogin, h.Login)
	app.Get(guard.PathSignup, h.SignupPage)
	app.Post(guard.PathSignup, h.Signup)
	app.Post(guard.PathLogout, h.Logout)

	buyer := app.Group(guard.BuyerPrefix)
	buyer.Get("/", redirectTo(guard.PathBuyerDashboard))
	buyer.Get("/dashboard", h.BuyerDashboard)
	buyer.Get("/cart", h.CartPage)
	buyer.Post("/cart", h.AddToCart)
	buyer.Post("/cart/:id/remove", h.RemoveFromCart)

	seller := app.Group(guard.SellerPrefix)
	seller.Get("/", redirectTo(guard.PathSellerDashboard))
	seller.Get("/dashboard", h.SellerDashboard)
	seller.Get("/add-product", h.AddProductPage)
	seller.Post("/add-product", h.AddProduct)
	seller.Get("/edit-product/:id", h.EditProductPage)
	seller.Post("/edit-product/:id", h.EditProduct)
	seller.Post("/products/:id/delete", h.DeleteProduct)

	app.Use(h.NotFound)
}

func redirectTo(path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Redirect(path, fiber.StatusFound)
	}
}
