package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"prestige/internal/domain"
	"prestige/internal/errx"
	applog "prestige/internal/log"
	"prestige/internal/money"
	"prestige/internal/services"
	"prestige/internal/store"
	"prestige/internal/validate"
)

type CartHandler struct {
	Store *store.Store
	Cart  *services.CartService
	Money money.Formatter
}

type displayTotals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

type cartBody struct {
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	Totals     domain.Totals     `json:"totals"`
	Display    displayTotals     `json:"display"`
	Toast      *Toast            `json:"toast,omitempty"`
}

func (h *CartHandler) display(t domain.Totals) displayTotals {
	return displayTotals{
		Subtotal: h.Money.Format(t.Subtotal),
		Tax:      h.Money.Format(t.Tax),
		Shipping: h.Money.Format(t.Shipping),
		Total:    h.Money.Format(t.Total),
	}
}

func (h *CartHandler) respond(c *fiber.Ctx, cart *services.Cart, toast *Toast) error {
	totals := cart.Totals().Rounded()
	return c.JSON(cartBody{
		Items:      cart.Items(),
		TotalItems: cart.TotalItems(),
		Totals:     totals,
		Display:    h.display(totals),
		Toast:      toast,
	})
}

// persisted logs a failed write. The request still succeeds with the in-memory cart.
func persisted(c *fiber.Ctx, err error) {
	if err != nil {
		applog.Error(c, "cart.persist.fail", err, nil)
	}
}

func (h *CartHandler) open(c *fiber.Ctx) *services.Cart {
	return h.Cart.Open(c.UserContext(), client(c, h.Store))
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return h.respond(c, h.open(c), nil)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return errx.BadRequest("missing productId")
	}
	size, ok := validate.Size(c.FormValue("size"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "size"})
		return errx.BadRequest("invalid size")
	}
	qty := validate.Qty(c.FormValue("qty"))

	cart := h.open(c)
	li, err := h.Cart.Add(c.UserContext(), cart, productID, size, qty)
	switch {
	case errors.Is(err, services.ErrUnknownProduct), errors.Is(err, services.ErrUnknownSize):
		return errx.NotFound(err, "This item is no longer available")
	default:
		persisted(c, err)
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": productID, "size": li.SelectedSize, "qty": qty})
	return h.respond(c, cart, success(fmt.Sprintf("%s (%s) added to cart!", li.Name, li.SelectedSize)))
}

// Update sets a line's quantity; zero or less removes it. Without a size the first line of
// the product is targeted.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return errx.BadRequest("missing productId")
	}
	qty, ok := validate.SetQty(c.FormValue("qty"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "qty"})
		return errx.BadRequest("invalid quantity")
	}
	size, ok := validate.Size(c.FormValue("size"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "size"})
		return errx.BadRequest("invalid size")
	}

	cart := h.open(c)
	ctx := c.UserContext()
	var err error
	if size == "" {
		_, err = cart.UpdateQuantity(ctx, productID, qty)
	} else {
		_, err = cart.UpdateVariantQuantity(ctx, productID, size, qty)
	}
	persisted(c, err)

	if qty <= 0 {
		return h.respond(c, cart, info("Item removed from cart"))
	}
	return h.respond(c, cart, nil)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return errx.BadRequest("missing productId")
	}
	size, ok := validate.Size(c.FormValue("size"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "size"})
		return errx.BadRequest("invalid size")
	}

	cart := h.open(c)
	var err error
	if size == "" {
		_, err = cart.RemoveItem(c.UserContext(), productID)
	} else {
		_, err = cart.RemoveVariant(c.UserContext(), productID, size)
	}
	persisted(c, err)
	applog.Info(c, "cart.remove", map[string]any{"product_id": productID, "size": size})
	return h.respond(c, cart, info("Item removed from cart"))
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	cart := h.open(c)
	_, err := cart.Clear(c.UserContext())
	persisted(c, err)
	applog.Info(c, "cart.clear", nil)
	return h.respond(c, cart, info("Cart cleared"))
}

// Page renders the cart for browsers.
func (h *CartHandler) Page(c *fiber.Ctx) error {
	st := client(c, h.Store)
	sess := services.NewSession(st)
	ctx := c.UserContext()
	data := fiber.Map{
		"Cart":  h.Cart.Open(ctx, st),
		"Theme": string(sess.Theme(ctx)),
	}
	if u, ok := sess.CurrentUser(ctx); ok && u.IsLoggedIn {
		data["User"] = u
		data["NewMember"] = sess.IsNewMember(ctx)
	}
	return render(c, "cart", data)
}
