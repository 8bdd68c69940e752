package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"prestige/internal/domain"
	"prestige/internal/errx"
	applog "prestige/internal/log"
	"prestige/internal/services"
	"prestige/internal/store"
	"prestige/internal/validate"
)

type OrderHandler struct {
	Store *store.Store
	Cart  *services.CartService
	Order *services.OrderService
}

type orderBody struct {
	Order domain.Order `json:"order"`
	Toast *Toast       `json:"toast,omitempty"`
}

// Checkout turns the cart into an order. A signed-in user's name and email fill in
// whatever the form leaves blank.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	st := client(c, h.Store)
	cart := h.Cart.Open(ctx, st)
	if cart.IsEmpty() {
		return errx.BadRequest("Your cart is empty!")
	}

	var form validate.CheckoutForm
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&form); err != nil {
			return errx.BadRequest("invalid form")
		}
	}
	if u, ok := services.NewSession(st).CurrentUser(ctx); ok && u.IsLoggedIn {
		if form.Name == "" {
			form.Name = u.Name
		}
		if form.Email == "" {
			form.Email = u.Email
		}
	}
	if err := validate.Struct(&form); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "checkout", "reason": err.Error()})
		return errx.BadRequest(err.Error())
	}

	o, err := h.Order.Place(ctx, st, cart, domain.Contact{Name: form.Name, Email: form.Email})
	if errors.Is(err, services.ErrCartEmpty) {
		return errx.BadRequest("Your cart is empty!")
	}
	if err != nil && o.ID == "" {
		return errx.Internal(err)
	}
	persisted(c, err)
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"items":    len(o.Items),
		"total":    o.Totals.Total.String(),
	})
	return c.Status(fiber.StatusCreated).JSON(orderBody{Order: o, Toast: success("Order placed successfully!")})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders := h.Order.History(c.UserContext(), client(c, h.Store))
	body := fiber.Map{"orders": orders}
	if len(orders) == 0 {
		body["toast"] = info("No orders to track yet!")
	}
	return c.JSON(body)
}
