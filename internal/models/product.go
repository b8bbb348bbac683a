package models

import (
	"fmt"
	"strings"
)

// Marketplace identifies one upstream search back end.
type Marketplace string

const (
	MarketplaceAliexpress Marketplace = "aliexpress"
	MarketplaceEbay       Marketplace = "ebay"
)

// AllMarketplaces returns the fixed source order used for balancing and
// fan-out. The order is part of the interleave contract, do not sort it.
func AllMarketplaces() []Marketplace {
	return []Marketplace{MarketplaceAliexpress, MarketplaceEbay}
}

// ParseMarketplace normalizes a marketplace name (case-insensitive).
func ParseMarketplace(name string) (Marketplace, error) {
	m := Marketplace(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllMarketplaces() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMarketplace, name)
}

// RecommendationType tags the origin of a result in a recommendation
// context. Only "similar" is produced today.
type RecommendationType string

const RecommendationSimilar RecommendationType = "similar"

// Product is a normalized search result. Identity is (ProductID,
// Marketplace); the engine relies on offset correctness rather than global
// deduplication, so the same product may legitimately reappear only if the
// upstream listing shifts between fetches.
type Product struct {
	ProductID          string             `json:"product_id"`
	Marketplace        Marketplace        `json:"marketplace"`
	Title              string             `json:"title"`
	SalePrice          *float64           `json:"sale_price,omitempty"`
	OriginalPrice      *float64           `json:"original_price,omitempty"`
	SoldCount          *int               `json:"sold_count,omitempty"`
	Categories         []string           `json:"categories,omitempty"`
	RecommendationType RecommendationType `json:"recommendation_type,omitempty"`
}

// EffectivePrice is the value used for all filtering and sorting:
// sale price, else original price, else 0.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	if p.OriginalPrice != nil {
		return *p.OriginalPrice
	}
	return 0
}

// Sold returns the popularity proxy, missing counts as 0.
func (p Product) Sold() int {
	if p.SoldCount != nil {
		return *p.SoldCount
	}
	return 0
}
