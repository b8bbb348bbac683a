package markets

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/config"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/pkg/crypto"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/pkg/util"
)

const (
	searchPath      = "/search"
	headerSignature = "X-Dh-Signature"
)

// PageRequest asks one marketplace gateway for one page of search results.
// PageNumber is 1-based; callers operating in offset space convert with
// floor(offset/pageSize)+1.
type PageRequest struct {
	Query      string
	PageNumber int
	PageSize   int
	PriceMin   *float64
	PriceMax   *float64
}

// PageResult is one normalized page. ReceivedCount counts the items the
// gateway returned before malformed records were dropped, so short-page
// detection is not fooled by drops.
type PageResult struct {
	Products      []models.Product
	ReceivedCount int
}

type Client interface {
	Marketplace() models.Marketplace
	FetchPage(ctx context.Context, req PageRequest) (*PageResult, error)
}

type gatewayClient struct {
	marketplace models.Marketplace
	rc          *resty.Client
	baseURL     string
	signer      crypto.Signer
	durations   *prometheus.HistogramVec
	items       *prometheus.CounterVec
}

// NewGatewayClient builds the search client for one marketplace gateway.
// When conf.SigningKey is set, every request carries an HMAC signature
// header over method, path and the encoded query.
func NewGatewayClient(m models.Marketplace, conf config.GatewayConfig, rc *resty.Client) (Client, error) {
	if conf.BaseURL == "" {
		return nil, fmt.Errorf("missing base URL for %s", m)
	}

	var signer crypto.Signer
	if conf.SigningKey != "" {
		s, err := crypto.NewSigner(conf.SigningKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create signer for %s: %w", m, err)
		}
		signer = s
	}

	durations, err := util.GetHistogramVec("market_fetch_duration_seconds", "marketplace", "outcome")
	if err != nil {
		return nil, fmt.Errorf("failed to register fetch metric: %w", err)
	}
	items, err := util.GetCounterVec("market_fetch_items_total", "marketplace")
	if err != nil {
		return nil, fmt.Errorf("failed to register item metric: %w", err)
	}

	return &gatewayClient{
		marketplace: m,
		rc:          rc,
		baseURL:     conf.BaseURL,
		signer:      signer,
		durations:   durations,
		items:       items,
	}, nil
}

func (c *gatewayClient) Marketplace() models.Marketplace {
	return c.marketplace
}

func (c *gatewayClient) FetchPage(ctx context.Context, req PageRequest) (*PageResult, error) {
	if req.PageSize <= 0 {
		req.PageSize = 12
	}
	if req.PageNumber <= 0 {
		req.PageNumber = 1
	}

	query := url.Values{}
	query.Set("q", req.Query)
	query.Set("page", strconv.Itoa(req.PageNumber))
	query.Set("limit", strconv.Itoa(req.PageSize))
	if req.PriceMin != nil {
		query.Set("price_min", strconv.FormatFloat(*req.PriceMin, 'f', -1, 64))
	}
	if req.PriceMax != nil {
		query.Set("price_max", strconv.FormatFloat(*req.PriceMax, 'f', -1, 64))
	}

	r := c.rc.R().SetContext(ctx).SetQueryParamsFromValues(query)
	if c.signer != nil {
		r.SetHeader(headerSignature, c.signer.Sign("GET"+searchPath+"?"+query.Encode()))
	}

	start := time.Now()
	resp, err := r.Get(c.baseURL + searchPath)
	if err != nil {
		c.observe(start, "error")
		return nil, fmt.Errorf("failed to query %s gateway: %w", c.marketplace, err)
	}
	if resp.IsError() {
		c.observe(start, "error")
		return nil, fmt.Errorf("%s gateway returned status %d", c.marketplace, resp.StatusCode())
	}

	rawItems, err := decodeItems(resp.Body())
	if err != nil {
		c.observe(start, "error")
		return nil, fmt.Errorf("failed to decode %s gateway response: %w", c.marketplace, err)
	}

	products, dropped := normalizeItems(c.marketplace, rawItems)
	if dropped > 0 {
		log.Debugw(ctx, "dropped malformed gateway items",
			"marketplace", c.marketplace,
			"dropped", dropped,
			"received", len(rawItems),
		)
	}

	c.observe(start, "ok")
	c.items.WithLabelValues(string(c.marketplace)).Add(float64(len(products)))

	return &PageResult{
		Products:      products,
		ReceivedCount: len(rawItems),
	}, nil
}

func (c *gatewayClient) observe(start time.Time, outcome string) {
	c.durations.WithLabelValues(string(c.marketplace), outcome).Observe(time.Since(start).Seconds())
}
