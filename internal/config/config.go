package config

import (
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Engine   EngineConfig   `envPrefix:"ENGINE_"`
	Markets  MarketsConfig  `envPrefix:"MARKETS_"`
	Taxonomy TaxonomyConfig `envPrefix:"TAXONOMY_"`
}

type ServerConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Host        string `env:"HOST" envDefault:"0.0.0.0"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"^https?://localhost(:\\d+)?$"`
	EnablePprof bool   `env:"ENABLE_PPROF" envDefault:"false"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type EngineConfig struct {
	DefaultPageSize      int           `env:"DEFAULT_PAGE_SIZE" envDefault:"12" validate:"gt=0,lte=100"`
	MaxConcurrentFetches int64         `env:"MAX_CONCURRENT_FETCHES" envDefault:"4" validate:"gt=0"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"15m"`
	SweepInterval        time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	ScrollDebounce       time.Duration `env:"SCROLL_DEBOUNCE" envDefault:"300ms"`
	MaxRecommendations   int           `env:"MAX_RECOMMENDATIONS" envDefault:"12" validate:"gt=0"`
}

type MarketsConfig struct {
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	Aliexpress   GatewayConfig `envPrefix:"ALIEXPRESS_"`
	Ebay         GatewayConfig `envPrefix:"EBAY_"`
}

// GatewayConfig points at one marketplace search gateway. SigningKey is
// optional; when set, requests carry an HMAC signature header.
type GatewayConfig struct {
	BaseURL    string `env:"BASE_URL,required"`
	SigningKey string `env:"SIGNING_KEY"`
}

type TaxonomyConfig struct {
	// Path to a YAML category taxonomy. Empty uses the built-in table.
	Path string `env:"PATH"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
