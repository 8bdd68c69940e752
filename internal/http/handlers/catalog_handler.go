package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"prestige/internal/catalog"
	"prestige/internal/domain"
	"prestige/internal/errx"
	applog "prestige/internal/log"
	"prestige/internal/money"
	"prestige/internal/validate"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
	Money   money.Formatter
}

type productBody struct {
	domain.Product
	PriceFrom string `json:"priceFrom"`
}

func (h *CatalogHandler) product(p domain.Product) productBody {
	b := productBody{Product: p}
	if lo, _, ok := catalog.PriceRange([]domain.Product{p}); ok {
		b.PriceFrom = h.Money.Format(lo)
	}
	return b
}

// List filters by category, max price, featured flag and free text, in catalog order.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	var f catalog.Filter
	if v := c.Query("category"); v != "" && v != "all" {
		cat, ok := validate.Category(v)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return errx.BadRequest("unknown category")
		}
		f.Category = cat
	}
	if v := c.Query("maxPrice"); v != "" {
		m, err := money.Parse(v)
		if err != nil || m.IsNegative() {
			applog.Security(c, "validation.fail", map[string]any{"field": "maxPrice"})
			return errx.BadRequest("invalid maxPrice")
		}
		f.MaxPrice = &m
	}
	if v := c.Query("q"); v != "" {
		q, ok := validate.Q(v)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			return errx.BadRequest("invalid search")
		}
		f.Query = q
	}
	f.FeaturedOnly, _ = strconv.ParseBool(c.Query("featured"))
	f.Page = c.QueryInt("page", 0)
	f.PageSize = c.QueryInt("pageSize", 0)

	products := h.Catalog.Search(f)
	out := make([]productBody, 0, len(products))
	for _, p := range products {
		out = append(out, h.product(p))
	}
	return c.JSON(fiber.Map{"products": out, "count": len(out)})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return errx.NotFound(nil, "This item is no longer available")
	}
	p, ok := h.Catalog.FindProduct(id)
	if !ok {
		return errx.NotFound(nil, "This item is no longer available")
	}
	return c.JSON(h.product(p))
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	body := fiber.Map{"categories": h.Catalog.Categories()}
	if lo, hi, ok := catalog.PriceRange(h.Catalog.All()); ok {
		body["priceRange"] = fiber.Map{"min": lo, "max": hi}
	}
	return c.JSON(body)
}
