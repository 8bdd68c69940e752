package handlers

import (
	"prestige/internal/catalog"
	"prestige/internal/money"
	"prestige/internal/services"
	"prestige/internal/store"
)

type Deps struct {
	Store          *store.Store
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	SessionHandler *SessionHandler
}

func NewDeps(st *store.Store, cat *catalog.Catalog, pricing services.Pricing, f money.Formatter) *Deps {
	cartSvc := services.NewCartService(cat, pricing)
	orderSvc := services.NewOrderService()

	return &Deps{
		Store:          st,
		CatalogHandler: &CatalogHandler{Catalog: cat, Money: f},
		CartHandler:    &CartHandler{Store: st, Cart: cartSvc, Money: f},
		OrderHandler:   &OrderHandler{Store: st, Cart: cartSvc, Order: orderSvc},
		SessionHandler: &SessionHandler{Store: st},
	}
}
