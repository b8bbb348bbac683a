package markets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
)

type stubClient struct {
	marketplace models.Marketplace
}

func (s *stubClient) Marketplace() models.Marketplace { return s.marketplace }

func (s *stubClient) FetchPage(ctx context.Context, req PageRequest) (*PageResult, error) {
	return &PageResult{}, nil
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	require.NoError(t, registry.Register(&stubClient{marketplace: models.MarketplaceEbay}))
	require.NoError(t, registry.Register(&stubClient{marketplace: models.MarketplaceAliexpress}))

	t.Run("get", func(t *testing.T) {
		client, err := registry.Get(models.MarketplaceEbay)
		require.NoError(t, err)
		assert.Equal(t, models.MarketplaceEbay, client.Marketplace())
	})

	t.Run("get by name is case-insensitive", func(t *testing.T) {
		client, err := registry.GetByName("  AliExpress ")
		require.NoError(t, err)
		assert.Equal(t, models.MarketplaceAliexpress, client.Marketplace())
	})

	t.Run("unknown marketplace", func(t *testing.T) {
		_, err := registry.GetByName("amazon")
		assert.ErrorIs(t, err, models.ErrUnknownMarketplace)
	})

	t.Run("list follows the balancing order", func(t *testing.T) {
		// registered ebay first, list still leads with aliexpress
		assert.Equal(t, models.AllMarketplaces(), registry.List())
	})
}

func TestRegistryRejects(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	assert.Error(t, registry.Register(nil))
	assert.Error(t, registry.Register(&stubClient{}))

	require.NoError(t, registry.Register(&stubClient{marketplace: models.MarketplaceEbay}))
	assert.Error(t, registry.Register(&stubClient{marketplace: models.MarketplaceEbay}))
}
