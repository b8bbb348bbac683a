package models

import (
	"fmt"
	"strings"
)

// CategoryAll disables the category predicate.
const CategoryAll = "all"

// FilterState is the full set of client-side predicates applied to the
// accumulated result set. An empty EnabledSources means nothing passes,
// not "all sources".
type FilterState struct {
	PriceMin       *float64      `json:"price_min,omitempty"`
	PriceMax       *float64      `json:"price_max,omitempty"`
	EnabledSources []Marketplace `json:"enabled_sources"`
	Category       string        `json:"category"`
}

// DefaultFilterState enables every marketplace with open price bounds.
func DefaultFilterState() FilterState {
	return FilterState{
		EnabledSources: AllMarketplaces(),
		Category:       CategoryAll,
	}
}

func (f FilterState) SourceEnabled(m Marketplace) bool {
	for _, s := range f.EnabledSources {
		if s == m {
			return true
		}
	}
	return false
}

// PriceRange replaces both bounds at once. A nil bound is unbounded, which
// lets the consumer clear a bound by omitting it.
type PriceRange struct {
	Min *float64 `json:"min,omitempty" validate:"omitempty,gte=0"`
	Max *float64 `json:"max,omitempty" validate:"omitempty,gte=0"`
}

// FilterPatch is a partial filter update. Nil fields are left unchanged;
// a non-nil Sources replaces the whole set, so an explicit empty list is
// meaningful (it empties the displayed set).
type FilterPatch struct {
	Price    *PriceRange    `json:"price,omitempty"`
	Sources  *[]Marketplace `json:"sources,omitempty"`
	Category *string        `json:"category,omitempty"`
}

// Merge applies patch on top of f and returns the result. f is not mutated.
func (f FilterState) Merge(patch FilterPatch) FilterState {
	next := f
	next.EnabledSources = append([]Marketplace(nil), f.EnabledSources...)
	if patch.Price != nil {
		next.PriceMin = patch.Price.Min
		next.PriceMax = patch.Price.Max
	}
	if patch.Sources != nil {
		next.EnabledSources = append([]Marketplace(nil), (*patch.Sources)...)
	}
	if patch.Category != nil {
		c := strings.TrimSpace(*patch.Category)
		if c == "" {
			c = CategoryAll
		}
		next.Category = c
	}
	return next
}

// SortMode total-orders the displayed set. The zero value keeps the
// balanced interleave order.
type SortMode string

const (
	SortNone      SortMode = ""
	SortPriceAsc  SortMode = "priceAsc"
	SortPriceDesc SortMode = "priceDesc"
	SortSoldDesc  SortMode = "soldDesc"
)

func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortSoldDesc:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}
