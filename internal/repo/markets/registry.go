package markets

import (
	"fmt"
	"sync"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/config"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/pkg/util"
)

// Registry holds the configured marketplace clients.
type Registry struct {
	clients map[models.Marketplace]Client
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[models.Marketplace]Client),
	}
}

// NewClients assembles the registry from config, one gateway client per
// marketplace, sharing a single outbound HTTP client.
func NewClients(conf *config.Config) (*Registry, error) {
	rc := util.NewRestyClient(conf.Markets.FetchTimeout)

	registry := NewRegistry()
	gateways := map[models.Marketplace]config.GatewayConfig{
		models.MarketplaceAliexpress: conf.Markets.Aliexpress,
		models.MarketplaceEbay:       conf.Markets.Ebay,
	}
	for _, m := range models.AllMarketplaces() {
		client, err := NewGatewayClient(m, gateways[m], rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", m, err)
		}
		if err := registry.Register(client); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (r *Registry) Register(client Client) error {
	if client == nil {
		return fmt.Errorf("client cannot be nil")
	}
	m := client.Marketplace()
	if m == "" {
		return fmt.Errorf("client marketplace cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[m]; exists {
		return fmt.Errorf("marketplace %s already registered", m)
	}
	r.clients[m] = client
	return nil
}

func (r *Registry) Get(m models.Marketplace) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, exists := r.clients[m]
	if !exists {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownMarketplace, m)
	}
	return client, nil
}

// GetByName retrieves a client by marketplace name (case-insensitive).
func (r *Registry) GetByName(name string) (Client, error) {
	m, err := models.ParseMarketplace(name)
	if err != nil {
		return nil, err
	}
	return r.Get(m)
}

// List returns the registered marketplaces in the fixed balancing order.
func (r *Registry) List() []models.Marketplace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Marketplace, 0, len(r.clients))
	for _, m := range models.AllMarketplaces() {
		if _, ok := r.clients[m]; ok {
			out = append(out, m)
		}
	}
	return out
}
