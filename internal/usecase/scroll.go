package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
)

const defaultScrollDebounce = 300 * time.Millisecond

// LoadMorer is the slice of a session the scroll driver needs.
type LoadMorer interface {
	LoadMore(ctx context.Context) (models.SessionSnapshot, error)
	Retry(ctx context.Context) (models.SessionSnapshot, error)
	HasMore() bool
	Snapshot() models.SessionSnapshot
}

// ScrollDriver turns raw "near end of content" signals into at most one
// LoadMore per debounce window. Bursts of signals collapse into a single
// call; the session's own in-flight guard covers whatever slips through.
type ScrollDriver struct {
	target  LoadMorer
	limiter *rate.Limiter
}

func NewScrollDriver(target LoadMorer, debounce time.Duration) *ScrollDriver {
	if debounce <= 0 {
		debounce = defaultScrollDebounce
	}
	return &ScrollDriver{
		target:  target,
		limiter: rate.NewLimiter(rate.Every(debounce), 1),
	}
}

// NearEnd reports whether the signal actually triggered a load. Signals
// are ignored while debounced, while a load is in flight, and once the
// session has nothing more to fetch.
func (d *ScrollDriver) NearEnd(ctx context.Context) (models.SessionSnapshot, bool, error) {
	if !d.target.HasMore() {
		return d.target.Snapshot(), false, nil
	}
	if !d.limiter.Allow() {
		return d.target.Snapshot(), false, nil
	}

	snap, err := d.target.LoadMore(ctx)
	if errors.Is(err, models.ErrLoadInFlight) || errors.Is(err, models.ErrNoMoreResults) {
		return snap, false, nil
	}
	return snap, err == nil, err
}

// Retry re-runs the failed round immediately, bypassing the debounce
// window. The session decides whether that round was the initial load or
// a follow-up page.
func (d *ScrollDriver) Retry(ctx context.Context) (models.SessionSnapshot, error) {
	snap, err := d.target.Retry(ctx)
	if errors.Is(err, models.ErrLoadInFlight) || errors.Is(err, models.ErrNoMoreResults) {
		return snap, nil
	}
	return snap, err
}
