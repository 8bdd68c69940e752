// Package catalog is the read-only product list the cart resolves ids against.
package catalog

import (
	"strings"

	"prestige/internal/domain"
	"prestige/internal/money"
)

type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New copies products; later changes to the argument are not observed.
func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		p.Sizes = append([]domain.ProductVariant(nil), p.Sizes...)
		c.products[i] = p
		c.byID[p.ID] = i
	}
	return c
}

func (c *Catalog) FindProduct(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return clone(c.products[i]), true
}

func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = clone(p)
	}
	return out
}

func (c *Catalog) Categories() []domain.Category {
	return append([]domain.Category(nil), domain.Categories...)
}

func (c *Catalog) Featured() []domain.Product {
	return c.Search(Filter{FeaturedOnly: true})
}

type Filter struct {
	Query        string
	Category     domain.Category
	MaxPrice     *money.Money // keeps products with at least one size at or under this price
	FeaturedOnly bool
	Page         int
	PageSize     int
}

func (f Filter) match(p domain.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.MaxPrice != nil {
		affordable := false
		for _, v := range p.Sizes {
			if v.Price.LessThanOrEqual(*f.MaxPrice) {
				affordable = true
				break
			}
		}
		if !affordable {
			return false
		}
	}
	return true
}

// Search filters in catalog order. Page and PageSize are optional; zero means everything.
func (c *Catalog) Search(f Filter) []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if f.match(p) {
			out = append(out, clone(p))
		}
	}
	if f.PageSize <= 0 {
		return out
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * f.PageSize
	if start >= len(out) {
		return []domain.Product{}
	}
	end := start + f.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end]
}

// PriceRange returns the cheapest and dearest size price across products.
func PriceRange(products []domain.Product) (lo, hi money.Money, ok bool) {
	for _, p := range products {
		for _, v := range p.Sizes {
			if !ok {
				lo, hi, ok = v.Price, v.Price, true
				continue
			}
			if v.Price.LessThanOrEqual(lo) {
				lo = v.Price
			}
			if hi.LessThanOrEqual(v.Price) {
				hi = v.Price
			}
		}
	}
	return lo, hi, ok
}

func clone(p domain.Product) domain.Product {
	p.Sizes = append([]domain.ProductVariant(nil), p.Sizes...)
	return p
}
