package usecase

import (
	"context"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/config"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/markets"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/pkg/util"
)

// priceBandRatio widens the subject price into the min/max band sent to
// the gateways, so "similar" also means similarly priced.
const priceBandRatio = 0.5

// RecommendationSubject is the detail-page product recommendations are
// scoped to.
type RecommendationSubject struct {
	ProductID    string
	Title        string
	Category     string
	CurrentPrice float64
}

// Recommender builds the similar-products rail for a product detail page.
type Recommender interface {
	SimilarProducts(ctx context.Context, subject RecommendationSubject) ([]models.Product, error)
}

type recommender struct {
	registry      *markets.Registry
	balancer      *Balancer
	maxResults    int
	maxConcurrent int64
}

func NewRecommender(conf *config.Config, registry *markets.Registry, balancer *Balancer) Recommender {
	return &recommender{
		registry:      registry,
		balancer:      balancer,
		maxResults:    conf.Engine.MaxRecommendations,
		maxConcurrent: conf.Engine.MaxConcurrentFetches,
	}
}

// SimilarProducts queries every marketplace for one page scoped to the
// subject: by its category when it has one, otherwise by keywords pulled
// from its title. The subject itself never appears in the rail.
func (r *recommender) SimilarProducts(ctx context.Context, subject RecommendationSubject) ([]models.Product, error) {
	query := strings.TrimSpace(subject.Category)
	if query == "" || query == models.CategoryAll {
		query = BuildSimilarQuery(subject.Title)
	}
	if query == "" {
		return nil, nil
	}

	request := markets.PageRequest{
		Query:      query,
		PageNumber: 1,
		PageSize:   r.maxResults,
	}
	if subject.CurrentPrice > 0 {
		request.PriceMin = util.Ptr(subject.CurrentPrice * (1 - priceBandRatio))
		request.PriceMax = util.Ptr(subject.CurrentPrice * (1 + priceBandRatio))
	}

	var targets []fetchTarget
	for _, m := range r.registry.List() {
		client, err := r.registry.Get(m)
		if err != nil {
			continue
		}
		targets = append(targets, fetchTarget{client: client, request: request})
	}
	if len(targets) == 0 {
		return nil, nil
	}

	outcomes := fanOut(ctx, r.maxConcurrent, targets)

	bySource := make(map[models.Marketplace][]models.Product, len(outcomes))
	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.err != nil || outcome.result == nil {
			continue
		}
		succeeded++
		for _, p := range outcome.result.Products {
			if p.ProductID == subject.ProductID {
				continue
			}
			p.RecommendationType = models.RecommendationSimilar
			bySource[p.Marketplace] = append(bySource[p.Marketplace], p)
		}
	}
	if succeeded == 0 {
		return nil, models.ErrAllSourcesFailed
	}

	similar := r.balancer.Balance(bySource)
	if len(similar) > r.maxResults {
		similar = similar[:r.maxResults]
	}
	log.Debugw(ctx, "built similar products rail",
		"query", query,
		"subject_id", subject.ProductID,
		"results", len(similar),
	)
	return similar, nil
}
