package services

import (
	"github.com/shopspring/decimal"

	"prestige/internal/config"
	"prestige/internal/domain"
	"prestige/internal/money"
)

// Pricing holds the order-level charges. Shipping is a flat fee added once per order,
// including when the cart is empty.
type Pricing struct {
	TaxRate     decimal.Decimal
	ShippingFee money.Money
}

func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:     decimal.RequireFromString("0.12"),
		ShippingFee: money.New(100, 0),
	}
}

func PricingFromConfig(cfg config.Config) Pricing {
	return Pricing{
		TaxRate:     cfg.TaxRate(),
		ShippingFee: money.FromDecimal(cfg.ShippingFee()),
	}
}

func (p Pricing) Compute(items []domain.LineItem) domain.Totals {
	subtotal := money.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax := subtotal.MulRate(p.TaxRate)
	return domain.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: p.ShippingFee,
		Total:    subtotal.Add(tax).Add(p.ShippingFee),
	}
}
