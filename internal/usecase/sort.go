package usecase

import (
	"sort"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
)

// SortProducts total-orders a copy of products. The sort is stable so that
// equal keys keep the balancer's interleave as their tie-break. Missing
// prices sort as 0: priceAsc surfaces priceless items first, priceDesc
// last. Unknown modes return the copy unchanged.
func SortProducts(products []models.Product, mode models.SortMode) []models.Product {
	out := append([]models.Product(nil), products...)
	switch mode {
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() < out[j].EffectivePrice()
		})
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() > out[j].EffectivePrice()
		})
	case models.SortSoldDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Sold() > out[j].Sold()
		})
	}
	return out
}
