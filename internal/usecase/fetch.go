package usecase

import (
	"context"
	"sync"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"golang.org/x/sync/semaphore"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/markets"
)

type fetchTarget struct {
	client  markets.Client
	request markets.PageRequest
}

type fetchOutcome struct {
	marketplace models.Marketplace
	result      *markets.PageResult
	err         error
}

// fanOut runs every target fetch concurrently, capped by maxConcurrent,
// and waits for all of them to settle. A failed source yields an outcome
// with its error; it never aborts the others.
func fanOut(ctx context.Context, maxConcurrent int64, targets []fetchTarget) []fetchOutcome {
	if maxConcurrent <= 0 {
		maxConcurrent = int64(len(targets))
	}
	sem := semaphore.NewWeighted(maxConcurrent)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes = make([]fetchOutcome, 0, len(targets))
	)
	for _, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()

			marketplace := target.client.Marketplace()
			if err := sem.Acquire(ctx, 1); err != nil {
				mu.Lock()
				outcomes = append(outcomes, fetchOutcome{marketplace: marketplace, err: err})
				mu.Unlock()
				return
			}
			defer sem.Release(1)

			result, err := target.client.FetchPage(ctx, target.request)
			if err != nil {
				log.Warnw(ctx, "source fetch failed",
					"marketplace", marketplace,
					"page", target.request.PageNumber,
					"error", err,
				)
			}
			mu.Lock()
			outcomes = append(outcomes, fetchOutcome{marketplace: marketplace, result: result, err: err})
			mu.Unlock()
		}()
	}
	wg.Wait()
	return outcomes
}
