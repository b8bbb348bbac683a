package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/taxonomy"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/pkg/util"
)

func newTestFilterEngine(t *testing.T) *FilterEngine {
	t.Helper()
	tax, err := taxonomy.Load("")
	require.NoError(t, err)
	return NewFilterEngine(tax)
}

func TestFilterEnginePriceBounds(t *testing.T) {
	t.Parallel()

	engine := newTestFilterEngine(t)
	products := []models.Product{
		{ProductID: "cheap", Marketplace: models.MarketplaceEbay, SalePrice: util.Ptr(4.99)},
		{ProductID: "low", Marketplace: models.MarketplaceEbay, SalePrice: util.Ptr(5.0)},
		{ProductID: "mid", Marketplace: models.MarketplaceEbay, SalePrice: util.Ptr(12.5)},
		{ProductID: "high", Marketplace: models.MarketplaceEbay, SalePrice: util.Ptr(20.0)},
		{ProductID: "rich", Marketplace: models.MarketplaceEbay, SalePrice: util.Ptr(20.01)},
	}

	state := models.DefaultFilterState()
	state.PriceMin = util.Ptr(5.0)
	state.PriceMax = util.Ptr(20.0)

	got := engine.Apply(products, state)
	assert.Equal(t, []string{"low", "mid", "high"},
		util.ConvertList(got, func(p models.Product) string { return p.ProductID }))
}

func TestFilterEngineEffectivePriceFallback(t *testing.T) {
	t.Parallel()

	engine := newTestFilterEngine(t)
	products := []models.Product{
		{ProductID: "sale", Marketplace: models.MarketplaceEbay, SalePrice: util.Ptr(8.0), OriginalPrice: util.Ptr(50.0)},
		{ProductID: "original", Marketplace: models.MarketplaceEbay, OriginalPrice: util.Ptr(9.0)},
		{ProductID: "unpriced", Marketplace: models.MarketplaceEbay},
	}

	state := models.DefaultFilterState()
	state.PriceMax = util.Ptr(10.0)
	assert.Len(t, engine.Apply(products, state), 3)

	// a product with no price at all filters as zero
	state.PriceMin = util.Ptr(1.0)
	got := engine.Apply(products, state)
	assert.Equal(t, []string{"sale", "original"},
		util.ConvertList(got, func(p models.Product) string { return p.ProductID }))
}

func TestFilterEngineSources(t *testing.T) {
	t.Parallel()

	engine := newTestFilterEngine(t)
	products := []models.Product{
		{ProductID: "a1", Marketplace: models.MarketplaceAliexpress},
		{ProductID: "e1", Marketplace: models.MarketplaceEbay},
		{ProductID: "a2", Marketplace: models.MarketplaceAliexpress},
	}

	state := models.DefaultFilterState()
	state.EnabledSources = []models.Marketplace{models.MarketplaceEbay}
	got := engine.Apply(products, state)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ProductID)

	// disabling every source empties the view rather than restoring it
	state.EnabledSources = nil
	assert.Empty(t, engine.Apply(products, state))
}

func TestFilterEngineCategory(t *testing.T) {
	t.Parallel()

	engine := newTestFilterEngine(t)
	products := []models.Product{
		{ProductID: "tagged", Marketplace: models.MarketplaceEbay, Title: "Widget", Categories: []string{"Audio", "Electronics"}},
		{ProductID: "untagged", Marketplace: models.MarketplaceEbay, Title: "Wireless Earbud Pro"},
		{ProductID: "other", Marketplace: models.MarketplaceEbay, Title: "Garden Hose", Categories: []string{"Home & Garden"}},
		{ProductID: "unknown", Marketplace: models.MarketplaceEbay, Title: "Mystery Item"},
	}

	state := models.DefaultFilterState()
	assert.Len(t, engine.Apply(products, state), 4, "category all keeps everything")

	state.Category = "audio"
	got := engine.Apply(products, state)
	assert.Equal(t, []string{"tagged", "untagged"},
		util.ConvertList(got, func(p models.Product) string { return p.ProductID }))

	// a structured category that does not match is final, the title is not
	// reconsidered
	state.Category = "home & garden"
	got = engine.Apply(products, state)
	require.Len(t, got, 1)
	assert.Equal(t, "other", got[0].ProductID)
}

func TestFilterEngineIdempotent(t *testing.T) {
	t.Parallel()

	engine := newTestFilterEngine(t)
	products := []models.Product{
		{ProductID: "a1", Marketplace: models.MarketplaceAliexpress, Title: "Laptop Stand", SalePrice: util.Ptr(15.0)},
		{ProductID: "e1", Marketplace: models.MarketplaceEbay, Title: "Desk Lamp", SalePrice: util.Ptr(9.0)},
		{ProductID: "e2", Marketplace: models.MarketplaceEbay, Title: "Phone Case", SalePrice: util.Ptr(3.0)},
	}

	state := models.DefaultFilterState()
	state.PriceMin = util.Ptr(5.0)
	state.EnabledSources = []models.Marketplace{models.MarketplaceEbay}

	once := engine.Apply(products, state)
	twice := engine.Apply(once, state)
	assert.Equal(t, once, twice)
}

func TestFilterEngineDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	engine := newTestFilterEngine(t)
	products := []models.Product{
		{ProductID: "a1", Marketplace: models.MarketplaceAliexpress, SalePrice: util.Ptr(1.0)},
		{ProductID: "e1", Marketplace: models.MarketplaceEbay, SalePrice: util.Ptr(2.0)},
	}
	before := append([]models.Product{}, products...)

	state := models.DefaultFilterState()
	state.PriceMin = util.Ptr(1.5)
	engine.Apply(products, state)

	assert.Equal(t, before, products)
}
