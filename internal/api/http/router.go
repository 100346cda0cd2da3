package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/http/handlers"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Cart           *handlers.CartHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	anyRole := cfg.AuthMiddleware.Require(domain.RoleSeller, domain.RoleBuyer)
	sellerOnly := cfg.AuthMiddleware.Require(domain.RoleSeller)
	buyerOnly := cfg.AuthMiddleware.Require(domain.RoleBuyer)

	products := api.Group("/products")
	products.Post("/", sellerOnly, cfg.Products.Create)
	products.Put("/:id", sellerOnly, cfg.Products.Update)
	products.Delete("/:id", sellerOnly, cfg.Products.Delete)
	products.Get("/:id", anyRole, cfg.Products.Get)
	products.Get("/", anyRole, cfg.Products.List)

	cart := api.Group("/cart")
	cart.Post("/", buyerOnly, cfg.Cart.Add)
	cart.Delete("/:id", buyerOnly, cfg.Cart.Remove)
	cart.Get("/count", buyerOnly, cfg.Cart.Count)
	cart.Get("/", buyerOnly, cfg.Cart.List)
}
