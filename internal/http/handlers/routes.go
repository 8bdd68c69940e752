package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "prestige/internal/log"
)

// Register mounts every route plus the catch-all 404. Global middleware is the caller's.
func (d *Deps) Register(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/products", d.CatalogHandler.List)
	api.Get("/products/:id", d.CatalogHandler.Detail)
	api.Get("/categories", d.CatalogHandler.Categories)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Post("/cart/update", d.CartHandler.Update)
	api.Post("/cart/remove", d.CartHandler.Remove)
	api.Post("/cart/clear", d.CartHandler.Clear)

	api.Post("/checkout", d.OrderHandler.Checkout)
	api.Get("/orders", RequireUser(d.Store), d.OrderHandler.History)

	api.Get("/session", d.SessionHandler.Get)
	api.Post("/session/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	}), d.SessionHandler.Login)
	api.Post("/session/register", d.SessionHandler.Register)
	api.Post("/session/logout", d.SessionHandler.Logout)
	api.Post("/session/profile", RequireUser(d.Store), d.SessionHandler.Profile)

	api.Get("/theme", d.SessionHandler.Theme)
	api.Post("/theme/toggle", d.SessionHandler.ToggleTheme)

	app.Get("/cart", d.CartHandler.Page)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})
}
