package markets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
)

func TestDecodeItems(t *testing.T) {
	t.Parallel()

	t.Run("wrapped payloads", func(t *testing.T) {
		for _, body := range []string{
			`{"products": [{"id": "1"}, {"id": "2"}]}`,
			`{"items": [{"id": "1"}, {"id": "2"}]}`,
			`{"results": [{"id": "1"}, {"id": "2"}]}`,
		} {
			items, err := decodeItems([]byte(body))
			require.NoError(t, err)
			assert.Len(t, items, 2)
		}
	})

	t.Run("bare list", func(t *testing.T) {
		items, err := decodeItems([]byte(`[{"id": "1"}]`))
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("empty wrapper is an empty page", func(t *testing.T) {
		items, err := decodeItems([]byte(`{"total": 0}`))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("garbage errors", func(t *testing.T) {
		_, err := decodeItems([]byte(`not json`))
		assert.Error(t, err)
	})
}

func TestNormalizeItem(t *testing.T) {
	t.Parallel()

	t.Run("aliexpress shape", func(t *testing.T) {
		raw := json.RawMessage(`{
			"product_id": "1005001",
			"title": "USB C Hub 7 in 1",
			"sale_price": "12.99",
			"original_price": "25.98",
			"orders": "1500+",
			"categories": {"first_level": "Computer & Office", "second_level": "USB Hubs"}
		}`)
		p, ok := normalizeItem(models.MarketplaceAliexpress, raw)
		require.True(t, ok)
		assert.Equal(t, "1005001", p.ProductID)
		assert.Equal(t, models.MarketplaceAliexpress, p.Marketplace)
		assert.Equal(t, 12.99, p.EffectivePrice())
		require.NotNil(t, p.OriginalPrice)
		assert.Equal(t, 25.98, *p.OriginalPrice)
		assert.Equal(t, 1500, p.Sold())
		assert.Equal(t, []string{"Computer & Office", "USB Hubs"}, p.Categories)
	})

	t.Run("ebay shape", func(t *testing.T) {
		raw := json.RawMessage(`{
			"item_id": "v1|2555|0",
			"name": "Wireless Mouse",
			"price": 8.5,
			"sold_count": 230,
			"category": "Computers/Tablets & Networking"
		}`)
		p, ok := normalizeItem(models.MarketplaceEbay, raw)
		require.True(t, ok)
		assert.Equal(t, "v1|2555|0", p.ProductID)
		assert.Equal(t, "Wireless Mouse", p.Title)
		assert.Equal(t, 8.5, p.EffectivePrice())
		assert.Equal(t, 230, p.Sold())
		assert.Equal(t, []string{"Computers/Tablets & Networking"}, p.Categories)
	})

	t.Run("category list", func(t *testing.T) {
		raw := json.RawMessage(`{"id": "1", "title": "Lamp", "categories": ["Home", " Lighting "]}`)
		p, ok := normalizeItem(models.MarketplaceEbay, raw)
		require.True(t, ok)
		assert.Equal(t, []string{"Home", "Lighting"}, p.Categories)
	})

	t.Run("missing identity drops", func(t *testing.T) {
		for _, body := range []string{
			`{"title": "no id"}`,
			`{"id": "no-title"}`,
			`{"id": " ", "title": "blank id"}`,
			`invalid`,
		} {
			_, ok := normalizeItem(models.MarketplaceEbay, json.RawMessage(body))
			assert.False(t, ok, body)
		}
	})

	t.Run("missing numerics stay nil", func(t *testing.T) {
		raw := json.RawMessage(`{"id": "1", "title": "Bare"}`)
		p, ok := normalizeItem(models.MarketplaceEbay, raw)
		require.True(t, ok)
		assert.Nil(t, p.SalePrice)
		assert.Nil(t, p.SoldCount)
		assert.Equal(t, 0.0, p.EffectivePrice())
		assert.Equal(t, 0, p.Sold())
	})
}

func TestNormalizeItemsCountsDrops(t *testing.T) {
	t.Parallel()

	rawItems := []json.RawMessage{
		json.RawMessage(`{"id": "1", "title": "Keep"}`),
		json.RawMessage(`{"title": "Drop me"}`),
		json.RawMessage(`{"id": "2", "title": "Keep too"}`),
	}
	products, dropped := normalizeItems(models.MarketplaceAliexpress, rawItems)
	assert.Len(t, products, 2)
	assert.Equal(t, 1, dropped)
}
