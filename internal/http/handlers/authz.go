package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "prestige/internal/log"
	"prestige/internal/services"
	"prestige/internal/store"
)

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   c.Protocol() == "https",
			MaxAge:   365 * 24 * 60 * 60,
		})
	}
	return sid
}

// client returns the store namespace of the calling browser, issuing a sid cookie on
// first contact.
func client(c *fiber.Ctx, root *store.Store) *store.Store {
	if s, ok := c.Locals("store").(*store.Store); ok {
		return s
	}
	s := root.Namespace(ensureSID(c))
	c.Locals("store", s)
	return s
}

// RequireUser rejects guests with 401.
func RequireUser(root *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := services.NewSession(client(c, root))
		u, ok := sess.CurrentUser(c.UserContext())
		if !ok || !u.IsLoggedIn {
			applog.Security(c, "access.denied.guest", nil)
			return fiber.NewError(fiber.StatusUnauthorized, "Please login first.")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
