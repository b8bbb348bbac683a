package usecase

import (
	"strings"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/taxonomy"
)

// FilterEngine applies the price, source and category predicates to a
// result set. Apply is pure and idempotent: no network, no mutation, and
// re-filtering an already filtered list changes nothing.
type FilterEngine struct {
	taxonomy *taxonomy.Taxonomy
}

func NewFilterEngine(tax *taxonomy.Taxonomy) *FilterEngine {
	return &FilterEngine{taxonomy: tax}
}

func (e *FilterEngine) Apply(products []models.Product, state models.FilterState) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !priceAllowed(p, state) {
			continue
		}
		// an empty enabled set admits nothing, it does not mean "all"
		if !state.SourceEnabled(p.Marketplace) {
			continue
		}
		if !e.categoryAllowed(p, state.Category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func priceAllowed(p models.Product, state models.FilterState) bool {
	price := p.EffectivePrice()
	if state.PriceMin != nil && price < *state.PriceMin {
		return false
	}
	if state.PriceMax != nil && price > *state.PriceMax {
		return false
	}
	return true
}

// categoryAllowed matches a structured category when the product has one,
// otherwise classifies the title through the keyword taxonomy.
func (e *FilterEngine) categoryAllowed(p models.Product, category string) bool {
	if category == "" || category == models.CategoryAll {
		return true
	}
	want := strings.ToLower(strings.TrimSpace(category))

	if len(p.Categories) > 0 {
		for _, c := range p.Categories {
			if strings.Contains(strings.ToLower(c), want) {
				return true
			}
		}
		return false
	}

	if e.taxonomy == nil {
		return false
	}
	got, ok := e.taxonomy.Classify(p.Title)
	return ok && got == want
}
