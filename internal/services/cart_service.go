package services

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"prestige/internal/catalog"
	"prestige/internal/domain"
	"prestige/internal/store"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownSize    = errors.New("unknown size")
)

// Cart is one client's cart. It is loaded once and written through on every mutation.
//
// Mutations never reject input: an empty id, an unknown id or an odd quantity leaves the
// cart as the rules below dictate. The only error a mutation returns is a failed save, in
// which case the in-memory cart already reflects the change.
type Cart struct {
	store   *store.Store
	pricing Pricing
	items   []domain.LineItem
}

func NewCart(ctx context.Context, s *store.Store, pricing Pricing) *Cart {
	items := store.Load(ctx, s, store.CartKey, []domain.LineItem{})
	if items == nil {
		items = []domain.LineItem{}
	}
	return &Cart{store: s, pricing: pricing, items: items}
}

func (c *Cart) save(ctx context.Context) ([]domain.LineItem, error) {
	if err := store.Save(ctx, c.store, store.CartKey, c.items); err != nil {
		return c.Items(), pkgerrors.Wrap(err, "persist cart")
	}
	return c.Items(), nil
}

// AddItem merges on (id, selected size): an existing line grows by quantity, otherwise
// a new line is appended with exactly quantity.
func (c *Cart) AddItem(ctx context.Context, item domain.LineItem, quantity int) ([]domain.LineItem, error) {
	if item.ID == "" {
		return c.Items(), nil
	}
	for i := range c.items {
		if c.items[i].SameLine(item.ID, item.SelectedSize) {
			c.items[i].Quantity += quantity
			return c.save(ctx)
		}
	}
	item.Quantity = quantity
	c.items = append(c.items, item)
	return c.save(ctx)
}

// RemoveItem drops every line of the product, whatever its size.
// Use RemoveVariant to drop a single size.
func (c *Cart) RemoveItem(ctx context.Context, id string) ([]domain.LineItem, error) {
	return c.removeWhere(ctx, func(li domain.LineItem) bool { return li.ID == id })
}

func (c *Cart) RemoveVariant(ctx context.Context, id, size string) ([]domain.LineItem, error) {
	return c.removeWhere(ctx, func(li domain.LineItem) bool { return li.SameLine(id, size) })
}

func (c *Cart) removeWhere(ctx context.Context, drop func(domain.LineItem) bool) ([]domain.LineItem, error) {
	kept := c.items[:0:0]
	for _, li := range c.items {
		if !drop(li) {
			kept = append(kept, li)
		}
	}
	if len(kept) == len(c.items) {
		return c.Items(), nil
	}
	c.items = kept
	return c.save(ctx)
}

// UpdateQuantity sets the first line of the product to quantity. A quantity of zero or
// less behaves as RemoveItem.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) ([]domain.LineItem, error) {
	if quantity <= 0 {
		return c.RemoveItem(ctx, id)
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return c.save(ctx)
		}
	}
	return c.Items(), nil
}

func (c *Cart) UpdateVariantQuantity(ctx context.Context, id, size string, quantity int) ([]domain.LineItem, error) {
	if quantity <= 0 {
		return c.RemoveVariant(ctx, id, size)
	}
	for i := range c.items {
		if c.items[i].SameLine(id, size) {
			c.items[i].Quantity = quantity
			return c.save(ctx)
		}
	}
	return c.Items(), nil
}

func (c *Cart) Clear(ctx context.Context) ([]domain.LineItem, error) {
	c.items = []domain.LineItem{}
	return c.save(ctx)
}

// Items returns a copy in insertion order.
func (c *Cart) Items() []domain.LineItem {
	return append([]domain.LineItem{}, c.items...)
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// TotalItems counts units, not lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, li := range c.items {
		n += li.Quantity
	}
	return n
}

func (c *Cart) Totals() domain.Totals { return c.pricing.Compute(c.items) }

// CartService opens carts and resolves catalog entries into line items.
type CartService struct {
	Catalog *catalog.Catalog
	Pricing Pricing
}

func NewCartService(cat *catalog.Catalog, pricing Pricing) *CartService {
	return &CartService{Catalog: cat, Pricing: pricing}
}

func (s *CartService) Open(ctx context.Context, st *store.Store) *Cart {
	return NewCart(ctx, st, s.Pricing)
}

// Add looks up the product and size and adds qty units. An empty size picks the first
// (smallest) bottle.
func (s *CartService) Add(ctx context.Context, cart *Cart, productID, size string, qty int) (domain.LineItem, error) {
	p, ok := s.Catalog.FindProduct(productID)
	if !ok {
		return domain.LineItem{}, pkgerrors.Wrapf(ErrUnknownProduct, "product %q", productID)
	}
	if size == "" && len(p.Sizes) > 0 {
		size = p.Sizes[0].Size
	}
	v, ok := p.Variant(size)
	if !ok {
		return domain.LineItem{}, pkgerrors.Wrapf(ErrUnknownSize, "product %q size %q", productID, size)
	}
	li := domain.NewLineItem(p, v, qty)
	if _, err := cart.AddItem(ctx, li, qty); err != nil {
		return li, err
	}
	return li, nil
}
