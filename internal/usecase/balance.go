package usecase

import (
	"math/rand"
	"sync"
	"time"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
)

// Balancer merges per-source result lists into one sequence that keeps the
// 1:1 source ratio regardless of list-length imbalance: each source's list
// is shuffled independently, then items are taken round-robin in the fixed
// marketplace order until every source is drained.
type Balancer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewBalancer() *Balancer {
	return NewSeededBalancer(time.Now().UnixNano())
}

// NewSeededBalancer fixes the shuffle sequence, which tests use to assert
// exact outputs instead of statistical bounds.
func NewSeededBalancer(seed int64) *Balancer {
	return &Balancer{rng: rand.New(rand.NewSource(seed))}
}

// Balance never mutates its inputs. Marketplaces outside the fixed order
// are ignored. For any prefix of even length 2k of a two-source merge, the
// per-source counts differ by at most one while both sources still have
// unemitted items.
func (b *Balancer) Balance(bySource map[models.Marketplace][]models.Product) []models.Product {
	order := models.AllMarketplaces()

	remaining := make(map[models.Marketplace][]models.Product, len(bySource))
	total := 0
	for _, m := range order {
		list := bySource[m]
		if len(list) == 0 {
			continue
		}
		shuffled := append([]models.Product(nil), list...)
		b.shuffle(shuffled)
		remaining[m] = shuffled
		total += len(shuffled)
	}

	merged := make([]models.Product, 0, total)
	for len(merged) < total {
		for _, m := range order {
			list := remaining[m]
			if len(list) == 0 {
				continue
			}
			merged = append(merged, list[0])
			remaining[m] = list[1:]
		}
	}
	return merged
}

func (b *Balancer) shuffle(items []models.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
