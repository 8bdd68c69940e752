package domain

import (
	"time"

	"prestige/internal/money"
)

type Category string

const (
	Signature Category = "signature"
	Limited   Category = "limited"
	Seasonal  Category = "seasonal"
	Unisex    Category = "unisex"
)

var Categories = []Category{Signature, Limited, Seasonal, Unisex}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

type ProductVariant struct {
	Size               string      `json:"size"`
	Price              money.Money `json:"price"`
	OriginalPrice      money.Money `json:"originalPrice"`
	DiscountPercentage int         `json:"discountPercentage"`
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    Category         `json:"category"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Badge       string           `json:"badge,omitempty"`
	Featured    bool             `json:"featured"`
	Sizes       []ProductVariant `json:"sizes"`
}

// Variant returns the size option with the given label.
func (p Product) Variant(size string) (ProductVariant, bool) {
	for _, v := range p.Sizes {
		if v.Size == size {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// LineItem is a cart entry. It copies what it needs from the catalog at add time.
type LineItem struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Image              string      `json:"image"`
	Category           Category    `json:"category"`
	Price              money.Money `json:"price"`
	OriginalPrice      money.Money `json:"originalPrice"`
	SelectedSize       string      `json:"selectedSize"`
	DiscountPercentage int         `json:"discountPercentage"`
	Quantity           int         `json:"quantity"`
}

func NewLineItem(p Product, v ProductVariant, quantity int) LineItem {
	return LineItem{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Image:              p.Image,
		Category:           p.Category,
		Price:              v.Price,
		OriginalPrice:      v.OriginalPrice,
		SelectedSize:       v.Size,
		DiscountPercentage: v.DiscountPercentage,
		Quantity:           quantity,
	}
}

// SameLine reports whether two items occupy the same cart line.
func (li LineItem) SameLine(id, size string) bool {
	return li.ID == id && li.SelectedSize == size
}

func (li LineItem) LineTotal() money.Money { return li.Price.Times(li.Quantity) }

type Totals struct {
	Subtotal money.Money `json:"subtotal"`
	Tax      money.Money `json:"tax"`
	Shipping money.Money `json:"shipping"`
	Total    money.Money `json:"total"`
}

// Rounded is what gets charged: every part to the cent, and the total as their sum.
func (t Totals) Rounded() Totals {
	r := Totals{
		Subtotal: t.Subtotal.Round(),
		Tax:      t.Tax.Round(),
		Shipping: t.Shipping.Round(),
	}
	r.Total = r.Subtotal.Add(r.Tax).Add(r.Shipping)
	return r
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID       string     `json:"id"`
	Items    []LineItem `json:"items"`
	Totals   Totals     `json:"totals"`
	Contact  Contact    `json:"contact"`
	PlacedAt time.Time  `json:"placedAt"`
}
