package catalog

import (
	"prestige/internal/domain"
	"prestige/internal/money"
)

// Every fragrance ships in the same 10ml and 30ml tiers; only the 50ml bottle is priced per scent.
func sizes(price50, original50 string, discount50 int) []domain.ProductVariant {
	return []domain.ProductVariant{
		{Size: "10ml", Price: money.MustParse("99.00"), OriginalPrice: money.MustParse("149.00"), DiscountPercentage: 33},
		{Size: "30ml", Price: money.MustParse("190.00"), OriginalPrice: money.MustParse("299.00"), DiscountPercentage: 36},
		{Size: "50ml", Price: money.MustParse(price50), OriginalPrice: money.MustParse(original50), DiscountPercentage: discount50},
	}
}

var seed = []domain.Product{
	{
		ID:          "1",
		Name:        "Nexus Noir",
		Category:    domain.Signature,
		Description: "A deep, mysterious blend of oud and leather. Limited edition.",
		Image:       "5.jpg",
		Badge:       "35% OFF",
		Featured:    true,
		Sizes:       sizes("339.00", "349.00", 3),
	},
	{
		ID:          "2",
		Name:        "Garden of Roses",
		Category:    domain.Limited,
		Description: "Amber, vanilla, and white flowers. Spring collection.",
		Image:       "https://images.unsplash.com/photo-1590736969958-65d5e7c5e867?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
		Badge:       "34% OFF",
		Featured:    true,
		Sizes:       sizes("345.00", "359.00", 4),
	},
	{
		ID:          "3",
		Name:        "Velvet Bloom",
		Category:    domain.Seasonal,
		Description: "Jasmine, tuberose, and sandalwood. Winter edition.",
		Image:       "4.jpg",
		Badge:       "34% OFF",
		Featured:    true,
		Sizes:       sizes("342.00", "349.00", 2),
	},
	{
		ID:          "4",
		Name:        "Coming Soon...",
		Category:    domain.Signature,
		Description: "Exotic spices and precious woods. Collector item.",
		Image:       "1.jpeg",
		Badge:       "35% OFF",
		Sizes:       sizes("339.00", "349.00", 3),
	},
	{
		ID:          "5",
		Name:        "Coming Soon...",
		Category:    domain.Unisex,
		Description: "Musk, amber, and patchouli. Unisex fragrance.",
		Image:       "1.jpeg",
		Badge:       "35% OFF",
		Sizes:       sizes("344.00", "354.00", 3),
	},
	{
		ID:          "6",
		Name:        "Coming Soon...",
		Category:    domain.Signature,
		Description: "Citrus, bergamot, and cedarwood. Summer special.",
		Image:       "1.jpeg",
		Badge:       "35% OFF",
		Featured:    true,
		Sizes:       sizes("347.00", "359.00", 3),
	},
	{
		ID:          "7",
		Name:        "Coming Soon...",
		Category:    domain.Limited,
		Description: "Saffron, rose, and sandalwood. Arabian nights.",
		Image:       "1.jpeg",
		Badge:       "34% OFF",
		Sizes:       sizes("340.00", "349.00", 3),
	},
	{
		ID:          "8",
		Name:        "Coming Soon...",
		Category:    domain.Seasonal,
		Description: "Sea salt, driftwood, and marine notes. Fresh aquatic.",
		Image:       "1.jpeg",
		Badge:       "34% OFF",
		Featured:    true,
		Sizes:       sizes("345.00", "355.00", 3),
	},
}

// Default is the shop's launch catalog.
func Default() *Catalog { return New(seed) }
